// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package harness_test

import (
	"context"
	"testing"

	"code.hybscloud.com/lfstack/harness"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRecordRun(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	m, err := harness.NewMetrics(reg)
	require.NoError(t, err)

	cfg := harness.Config{Pushers: 2, Poppers: 1, Seed: 5, OpsPerWorker: 1_000}
	r, err := harness.Run(context.Background(), cfg, harness.WithMetrics(m))
	require.NoError(t, err)

	n, err := testutil.GatherAndCount(reg,
		"lfstack_harness_calls_total",
		"lfstack_harness_runs_total",
		"lfstack_run_operations",
	)
	require.NoError(t, err)
	assert.Equal(t, 5, n) // push, pop, hit, runs{ok}, run_operations

	families, err := reg.Gather()
	require.NoError(t, err)
	values := map[string]float64{}
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			switch {
			case metric.GetCounter() != nil:
				key := mf.GetName()
				for _, lp := range metric.GetLabel() {
					if lp.GetName() == "op" {
						key += "/" + lp.GetValue()
					}
				}
				values[key] = metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				values[mf.GetName()] = metric.GetGauge().GetValue()
			}
		}
	}
	assert.Equal(t, float64(5+2_000), values["lfstack_harness_calls_total/push"])
	assert.Equal(t, float64(1_000), values["lfstack_harness_calls_total/pop"])
	assert.Equal(t, float64(r.Ops), values["lfstack_run_operations"])
	assert.Equal(t, 0.0, values["lfstack_harness_workers"])
}

func TestMetricsDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := harness.NewMetrics(reg)
	require.NoError(t, err)

	_, err = harness.NewMetrics(reg)
	assert.Error(t, err)
}
