// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfstack

import "code.hybscloud.com/atomix"

// Counter is a monotonic count of completed stack calls.
// The zero value is ready to use and safe for concurrent use.
//
// Counter is independent of stack contents: a pop on an empty stack
// counts like any other call, so the live size cannot be derived from it.
type Counter struct {
	n atomix.Uint64
}

// NewCounter returns a Counter starting at zero.
func NewCounter() *Counter {
	return &Counter{}
}

// Increment adds one to the counter.
func (c *Counter) Increment() {
	c.n.Add(1)
}

// Snapshot returns the current value. The result reflects a state the
// counter held at or after the start of the call.
func (c *Counter) Snapshot() uint64 {
	return c.n.Load()
}
