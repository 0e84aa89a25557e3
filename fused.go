// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfstack

import (
	"code.hybscloud.com/kont"
)

// PushThen pushes a value and then continues with next.
// Fuses Perform(Push[T]{Value: v}) + Then.
func PushThen[T, B any](v T, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Push[T]{Value: v}), next)
}

// PopBind pops a value and passes it to f.
// ok is false when the stack was empty.
// Fuses Perform(Pop[T]{}) + Bind.
func PopBind[T, B any](f func(v T, ok bool) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Pop[T]{}), func(e kont.Either[struct{}, T]) kont.Eff[B] {
		v, ok := e.GetRight()
		return f(v, ok)
	})
}

// Done ends a program with a.
func Done[A any](a A) kont.Eff[A] {
	return kont.Pure(a)
}
