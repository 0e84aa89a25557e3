// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package harness

import (
	"sync/atomic"

	"code.hybscloud.com/lfstack"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "lfstack"

// Metrics exports harness runs to Prometheus.
// Worker tallies are added once per run, after the join, so the measured
// loop never touches a Prometheus collector.
type Metrics struct {
	live       atomic.Pointer[lfstack.Counter]
	runOps     prometheus.GaugeFunc
	calls      *prometheus.CounterVec
	runs       *prometheus.CounterVec
	workers    prometheus.Gauge
	throughput *prometheus.GaugeVec
}

// NewMetrics creates the harness collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "harness",
			Name:      "calls_total",
			Help:      "Stack calls issued by harness workers.",
		}, []string{"kind", "op"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "harness",
			Name:      "runs_total",
			Help:      "Completed harness runs.",
		}, []string{"kind", "outcome"}),
		workers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "harness",
			Name:      "workers",
			Help:      "Worker goroutines of the current run.",
		}),
		throughput: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "harness",
			Name:      "ops_per_second",
			Help:      "Measured throughput of the last run.",
		}, []string{"kind"}),
	}
	m.runOps = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "run_operations",
		Help:      "Operation counter of the current or last run.",
	}, func() float64 {
		if c := m.live.Load(); c != nil {
			return float64(c.Snapshot())
		}
		return 0
	})

	for _, c := range []prometheus.Collector{m.runOps, m.calls, m.runs, m.workers, m.throughput} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) start(c *lfstack.Counter, workers int) {
	if m == nil {
		return
	}
	m.live.Store(c)
	m.workers.Set(float64(workers))
}

func (m *Metrics) finish(r Report, err error) {
	if m == nil {
		return
	}
	m.workers.Set(0)
	kind := string(r.Kind)
	if err != nil {
		m.runs.WithLabelValues(kind, "failed").Inc()
		return
	}
	m.runs.WithLabelValues(kind, "ok").Inc()
	m.calls.WithLabelValues(kind, "push").Add(float64(r.Seeded + r.Pushes))
	m.calls.WithLabelValues(kind, "pop").Add(float64(r.Pops))
	m.calls.WithLabelValues(kind, "hit").Add(float64(r.Hits))
	m.throughput.WithLabelValues(kind).Set(r.Throughput())
}
