// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfstack

import (
	"code.hybscloud.com/kont"
)

// stackDispatcher is the structural interface for stack operations.
// DispatchStack is non-blocking: it returns iox.ErrWouldBlock when the
// attempt lost the race for the head (or the lock, for [Locked]).
type stackDispatcher[T any] interface {
	DispatchStack(s Stacker[T]) (kont.Resumed, error)
}

// Push is the effect operation for pushing a value of type T.
// Perform(Push[T]{Value: v}) pushes v onto the handled stack.
type Push[T any] struct {
	kont.Phantom[struct{}]
	Value T
}

// DispatchStack handles Push with a single TryPush attempt.
func (p Push[T]) DispatchStack(s Stacker[T]) (kont.Resumed, error) {
	if err := s.TryPush(p.Value); err != nil {
		return nil, err
	}
	return struct{}{}, nil
}

// Pop is the effect operation for popping a value of type T.
// It resumes with Right(v) when a value was taken and Left when the
// stack was empty.
type Pop[T any] struct {
	kont.Phantom[kont.Either[struct{}, T]]
}

// DispatchStack handles Pop with a single TryPop attempt.
func (Pop[T]) DispatchStack(s Stacker[T]) (kont.Resumed, error) {
	v, ok, err := s.TryPop()
	if err != nil {
		return nil, err
	}
	if !ok {
		return kont.Left[struct{}, T](struct{}{}), nil
	}
	return kont.Right[struct{}, T](v), nil
}
