// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package harness

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap/zapcore"
)

// ErrCounterMismatch is returned by Report.Verify when the stack's counter
// disagrees with the calls the harness issued.
var ErrCounterMismatch = errors.New("harness: counter mismatch")

// Report is the outcome of one run.
type Report struct {
	RunID   string
	Kind    Kind
	Pushers int
	Poppers int

	// Ops is the counter's advance over the whole run, seeding included.
	Ops uint64
	// Seeded is the number of pushes made before measurement began.
	Seeded uint64
	// Pushes and Pops are the calls issued by workers; Hits is the
	// number of pops that returned a value.
	Pushes uint64
	Pops   uint64
	Hits   uint64

	// Elapsed is the wall-clock time from worker start to join.
	Elapsed time.Duration
}

// Issued returns the number of stack calls the harness made.
func (r Report) Issued() uint64 {
	return r.Seeded + r.Pushes + r.Pops
}

// Throughput returns measured calls per second, seeding excluded.
func (r Report) Throughput() float64 {
	if r.Elapsed <= 0 || r.Ops < r.Seeded {
		return 0
	}
	return float64(r.Ops-r.Seeded) / r.Elapsed.Seconds()
}

// Verify checks that every issued call was counted exactly once.
func (r Report) Verify() error {
	if r.Ops != r.Issued() {
		return fmt.Errorf("%w: counter %d, issued %d", ErrCounterMismatch, r.Ops, r.Issued())
	}
	return nil
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (r Report) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("run", r.RunID)
	enc.AddString("kind", string(r.Kind))
	enc.AddInt("pushers", r.Pushers)
	enc.AddInt("poppers", r.Poppers)
	enc.AddUint64("ops", r.Ops)
	enc.AddUint64("seeded", r.Seeded)
	enc.AddUint64("pushes", r.Pushes)
	enc.AddUint64("pops", r.Pops)
	enc.AddUint64("hits", r.Hits)
	enc.AddDuration("elapsed", r.Elapsed)
	enc.AddFloat64("opsPerSecond", r.Throughput())
	return nil
}
