// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfstack

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// stackHandler implements kont.Handler for stack effects.
// Waits on iox.ErrWouldBlock, turning single-attempt dispatch into
// complete push and pop calls.
type stackHandler[T, R any] struct {
	s Stacker[T]
}

// Dispatch implements kont.Handler via structural interface assertion.
func (h stackHandler[T, R]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	sop, ok := op.(stackDispatcher[T])
	if !ok {
		panic("lfstack: unhandled effect in stackHandler")
	}
	return dispatchWait(h.s, sop), true
}

// dispatchWait retries DispatchStack until it succeeds, backing off on
// iox.ErrWouldBlock with iox.Backoff.
func dispatchWait[T any](s Stacker[T], sop stackDispatcher[T]) kont.Resumed {
	var bo iox.Backoff
	for {
		v, err := sop.DispatchStack(s)
		if err == nil {
			return v
		}
		bo.Wait()
	}
}

// Exec runs a stack program against s on the calling goroutine.
// Each operation is retried with adaptive backoff until it completes,
// so every Push and Pop in the program is counted exactly once.
// Operations on an element type other than T panic.
func Exec[T, R any](s Stacker[T], program kont.Eff[R]) R {
	h := stackHandler[T, R]{s: s}
	return kont.Handle(program, h)
}
