// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfstack

import (
	"code.hybscloud.com/kont"
)

// Step evaluates a stack program until its first operation.
// Returns (result, nil) on completion, or (zero, suspension) if pending.
func Step[R any](program kont.Eff[R]) (R, *kont.Suspension[R]) {
	return kont.StepExpr(kont.Reify(program))
}

// Advance makes one attempt at the suspended operation on s.
//
// On success (nil error), the suspension is consumed and the program
// advances to its next operation or completes.
// On iox.ErrWouldBlock, the suspension is unconsumed and may be retried;
// nothing was counted.
func Advance[T, R any](s Stacker[T], susp *kont.Suspension[R]) (R, *kont.Suspension[R], error) {
	sop, ok := susp.Op().(stackDispatcher[T])
	if !ok {
		panic("lfstack: unhandled effect in Advance")
	}
	v, err := sop.DispatchStack(s)
	if err != nil {
		var zero R
		return zero, susp, err
	}
	result, next := susp.Resume(v)
	return result, next, nil
}
