// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfstack

import (
	"code.hybscloud.com/kont"
)

// Loop runs a recursive stack program.
// step returns Left(nextState) to continue or Right(result) to finish.
func Loop[S, A any](initial S, step func(S) kont.Eff[kont.Either[S, A]]) kont.Eff[A] {
	return kont.Bind(step(initial), func(e kont.Either[S, A]) kont.Eff[A] {
		if left, ok := e.GetLeft(); ok {
			return Loop(left, step)
		}
		right, _ := e.GetRight()
		return kont.Pure(right)
	})
}

// Drain pops until the stack is observed empty and returns the values
// in pop order. The final empty pop is counted like any other.
func Drain[T any]() kont.Eff[[]T] {
	return Loop([]T(nil), func(acc []T) kont.Eff[kont.Either[[]T, []T]] {
		return PopBind(func(v T, ok bool) kont.Eff[kont.Either[[]T, []T]] {
			if !ok {
				return kont.Pure(kont.Right[[]T, []T](acc))
			}
			return kont.Pure(kont.Left[[]T, []T](append(acc, v)))
		})
	})
}
