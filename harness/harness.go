// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package harness drives concurrent pushers and poppers against one
// [lfstack.Stacker] for a bounded time and reports its operation counter.
//
// Workers poll a shared stop flag before every call. When the run
// duration elapses, the context is canceled, or every worker has spent its
// budget, the flag is raised and the workers are joined. A worker that is
// still running after the grace period means the stack is stuck; Run
// reports it as [ErrJoinTimeout].
package harness

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"code.hybscloud.com/lfstack"
	"github.com/segmentio/ksuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrJoinTimeout is returned when workers do not exit within the grace
// period after cancellation. It is fatal: the stack failed to make progress.
var ErrJoinTimeout = errors.New("harness: workers did not exit within grace period")

// Option configures a run.
type Option func(*options)

type options struct {
	logger  *zap.Logger
	metrics *Metrics
	stack   lfstack.Stacker[int]
}

// WithLogger sets the run logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics exports the run through m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithStack runs against s instead of a new stack of Config.Kind.
// The report counts on s.Counter(), relative to its value at start.
func WithStack(s lfstack.Stacker[int]) Option {
	return func(o *options) {
		o.stack = s
	}
}

// Run executes one harness run described by cfg.
//
// It seeds the stack, starts cfg.Pushers pushers and cfg.Poppers poppers,
// and stops them after cfg.Duration, on ctx cancellation, or once each has
// made cfg.OpsPerWorker calls. The returned Report has been joined but not
// verified; call Report.Verify to check the counter against issued calls.
func Run(ctx context.Context, cfg Config, opts ...Option) (Report, error) {
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	s := o.stack
	if s == nil {
		var err error
		if s, err = cfg.kind().newStack(lfstack.NewCounter()); err != nil {
			return Report{}, err
		}
	}
	counter := s.Counter()

	r := Report{
		RunID:   ksuid.New().String(),
		Kind:    cfg.kind(),
		Pushers: cfg.Pushers,
		Poppers: cfg.Poppers,
		Seeded:  uint64(cfg.Seed),
	}
	log := o.logger.With(zap.String("run", r.RunID), zap.String("kind", string(r.Kind)))

	base := counter.Snapshot()
	for range cfg.Seed {
		s.Push(rand.Int())
	}
	log.Debug("seeded", zap.Int("values", cfg.Seed))

	workers := make([]*worker, 0, cfg.Pushers+cfg.Poppers)
	for range cfg.Pushers {
		workers = append(workers, newWorker(len(workers), pusher, cfg.OpsPerWorker))
	}
	for range cfg.Poppers {
		workers = append(workers, newWorker(len(workers), popper, cfg.OpsPerWorker))
	}

	var (
		stop atomic.Bool
		g    errgroup.Group
	)
	o.metrics.start(counter, len(workers))
	start := time.Now()
	for _, w := range workers {
		g.Go(func() error {
			return w.run(s, &stop)
		})
	}
	joined := make(chan error, 1)
	go func() {
		joined <- g.Wait()
	}()
	log.Info("workers started",
		zap.Int("pushers", cfg.Pushers),
		zap.Int("poppers", cfg.Poppers),
		zap.Duration("duration", cfg.Duration),
		zap.Int("opsPerWorker", cfg.OpsPerWorker),
	)

	var deadline <-chan time.Time
	if cfg.Duration > 0 {
		t := time.NewTimer(cfg.Duration)
		defer t.Stop()
		deadline = t.C
	}

	var (
		err  error
		done bool
	)
	select {
	case <-deadline:
		log.Debug("duration elapsed")
	case <-ctx.Done():
		log.Debug("context canceled", zap.Error(ctx.Err()))
	case err = <-joined:
		done = true
	}
	stop.Store(true)

	if !done {
		grace := time.NewTimer(cfg.grace())
		defer grace.Stop()
		select {
		case err = <-joined:
		case <-grace.C:
			r.Elapsed = time.Since(start)
			r.Ops = counter.Snapshot() - base
			err = fmt.Errorf("%w (%s)", ErrJoinTimeout, cfg.grace())
			log.Error("workers stuck", zap.Object("report", r), zap.Error(err))
			o.metrics.finish(r, err)
			return r, err
		}
	}
	r.Elapsed = time.Since(start)
	r.Ops = counter.Snapshot() - base

	if err == nil {
		err = r.collect(workers)
	}
	if err != nil {
		log.Error("run failed", zap.Error(err))
		o.metrics.finish(r, err)
		return r, err
	}

	log.Info("run complete", zap.Object("report", r))
	o.metrics.finish(r, nil)
	return r, nil
}

// collect sums the tallies the joined workers published.
func (r *Report) collect(workers []*worker) error {
	for _, w := range workers {
		t, err := w.collect()
		if err != nil {
			return err
		}
		r.Pushes += t.pushes
		r.Pops += t.pops
		r.Hits += t.hits
	}
	return nil
}
