// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package harness

import (
	"errors"
	"fmt"
	"time"

	"code.hybscloud.com/lfstack"
)

// DefaultGrace is the join deadline used when Config.Grace is zero.
const DefaultGrace = 5 * time.Second

// ErrInvalidConfig is returned by Config.Validate and Run for unusable configurations.
var ErrInvalidConfig = errors.New("harness: invalid config")

// Kind selects the stack implementation a run drives.
type Kind string

const (
	// KindLockFree drives lfstack.Stack.
	KindLockFree Kind = "lockfree"
	// KindLocked drives the mutex baseline lfstack.Locked.
	KindLocked Kind = "locked"
)

func (k Kind) newStack(c *lfstack.Counter) (lfstack.Stacker[int], error) {
	switch k {
	case KindLockFree, "":
		return lfstack.New[int](c), nil
	case KindLocked:
		return lfstack.NewLocked[int](c), nil
	}
	return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidConfig, k)
}

// Config describes one harness run.
type Config struct {
	// Pushers is the number of goroutines calling Push.
	Pushers int `mapstructure:"pushers"`
	// Poppers is the number of goroutines calling Pop.
	Poppers int `mapstructure:"poppers"`
	// Seed is the number of values pushed before measurement begins.
	Seed int `mapstructure:"seed"`
	// Duration bounds the measured phase. Zero means the run ends when
	// every worker has spent OpsPerWorker.
	Duration time.Duration `mapstructure:"duration"`
	// Grace bounds the join after cancellation. Zero means DefaultGrace.
	Grace time.Duration `mapstructure:"grace"`
	// OpsPerWorker, when positive, stops each worker after that many calls.
	OpsPerWorker int `mapstructure:"ops-per-worker"`
	// Kind selects the stack implementation. Empty means KindLockFree.
	Kind Kind `mapstructure:"kind"`
}

// DefaultConfig returns two pushers and two poppers over a stack seeded
// with 100000 values for ten seconds.
func DefaultConfig() Config {
	return Config{
		Pushers:  2,
		Poppers:  2,
		Seed:     100_000,
		Duration: 10 * time.Second,
		Grace:    DefaultGrace,
		Kind:     KindLockFree,
	}
}

// Validate reports whether c can be run.
func (c Config) Validate() error {
	switch {
	case c.Pushers < 0 || c.Poppers < 0:
		return fmt.Errorf("%w: negative worker count (pushers=%d, poppers=%d)", ErrInvalidConfig, c.Pushers, c.Poppers)
	case c.Seed < 0:
		return fmt.Errorf("%w: negative seed %d", ErrInvalidConfig, c.Seed)
	case c.Duration < 0 || c.Grace < 0:
		return fmt.Errorf("%w: negative duration", ErrInvalidConfig)
	case c.OpsPerWorker < 0:
		return fmt.Errorf("%w: negative ops-per-worker %d", ErrInvalidConfig, c.OpsPerWorker)
	case c.Duration == 0 && c.OpsPerWorker == 0:
		return fmt.Errorf("%w: one of duration or ops-per-worker must be set", ErrInvalidConfig)
	case c.Kind != "" && c.Kind != KindLockFree && c.Kind != KindLocked:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidConfig, c.Kind)
	}
	return nil
}

func (c Config) grace() time.Duration {
	if c.Grace == 0 {
		return DefaultGrace
	}
	return c.Grace
}

func (c Config) kind() Kind {
	if c.Kind == "" {
		return KindLockFree
	}
	return c.Kind
}
