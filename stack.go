// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfstack

import (
	"sync/atomic"

	"code.hybscloud.com/iox"
)

// Stacker is the contract shared by [Stack] and [Locked].
//
// Push and Pop always complete. TryPush and TryPop make a single attempt
// and return [iox.ErrWouldBlock] when another goroutine got in first;
// an attempt that returns ErrWouldBlock has no effect and is not counted.
type Stacker[T any] interface {
	Push(v T)
	Pop() (T, bool)
	TryPush(v T) error
	TryPop() (T, bool, error)
	Counter() *Counter
}

// Stack is a lock-free LIFO stack.
//
// The head is a single atomic pointer; every successful push or pop is
// exactly one successful compare-and-swap on it, and the order of those
// swaps is the linearization order of the stack. A lost swap is retried
// after an adaptive pause ([iox.Backoff]).
//
// Popped nodes are left to the garbage collector and are never reused,
// so a goroutine holding a stale head snapshot can never see its swap
// succeed against a recycled node.
type Stack[T any] struct {
	head    atomic.Pointer[node[T]]
	counter *Counter
}

// New creates an empty stack that records its calls on c.
// A nil c gives the stack a private counter.
func New[T any](c *Counter) *Stack[T] {
	if c == nil {
		c = NewCounter()
	}
	return &Stack[T]{counter: c}
}

// Counter returns the counter the stack records its calls on.
func (s *Stack[T]) Counter() *Counter {
	return s.counter
}

// Empty reports whether the stack had no elements at the moment of the call.
func (s *Stack[T]) Empty() bool {
	return s.head.Load() == nil
}

// Push adds v on top of the stack. It retries until it wins the head
// and counts exactly once.
func (s *Stack[T]) Push(v T) {
	n := &node[T]{value: v}
	var bo iox.Backoff
	for s.link(n) != nil {
		bo.Wait()
	}
	s.counter.Increment()
}

// TryPush makes one attempt to add v on top of the stack.
func (s *Stack[T]) TryPush(v T) error {
	if err := s.link(&node[T]{value: v}); err != nil {
		return err
	}
	s.counter.Increment()
	return nil
}

// Pop removes and returns the top value. It returns false when the stack
// is empty. Every call is counted, including calls that find it empty.
func (s *Stack[T]) Pop() (T, bool) {
	var bo iox.Backoff
	for {
		n, err := s.unlink()
		if err != nil {
			bo.Wait()
			continue
		}
		s.counter.Increment()
		if n == nil {
			var zero T
			return zero, false
		}
		return n.value, true
	}
}

// TryPop makes one attempt to remove the top value.
func (s *Stack[T]) TryPop() (T, bool, error) {
	var zero T
	n, err := s.unlink()
	if err != nil {
		return zero, false, err
	}
	s.counter.Increment()
	if n == nil {
		return zero, false, nil
	}
	return n.value, true, nil
}

// link links n above the observed head and tries to swing head to n.
// n is not yet visible to other goroutines, so rewriting n.next on each
// attempt is safe.
func (s *Stack[T]) link(n *node[T]) error {
	top := s.head.Load()
	n.next = top
	if !s.head.CompareAndSwap(top, n) {
		return iox.ErrWouldBlock
	}
	return nil
}

// unlink tries to swing head past the observed top node and returns it.
// A nil node with a nil error means the stack was empty.
func (s *Stack[T]) unlink() (*node[T], error) {
	top := s.head.Load()
	if top == nil {
		return nil, nil
	}
	if !s.head.CompareAndSwap(top, top.next) {
		return nil, iox.ErrWouldBlock
	}
	return top, nil
}
