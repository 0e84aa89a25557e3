// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfstack

import (
	"sync"

	"code.hybscloud.com/iox"
)

// Locked is a mutex-guarded LIFO stack with the same contract as [Stack].
// It is the baseline the lock-free stack is measured against.
type Locked[T any] struct {
	mu      sync.Mutex
	head    *node[T]
	counter *Counter
}

// NewLocked creates an empty locked stack that records its calls on c.
// A nil c gives the stack a private counter.
func NewLocked[T any](c *Counter) *Locked[T] {
	if c == nil {
		c = NewCounter()
	}
	return &Locked[T]{counter: c}
}

// Counter returns the counter the stack records its calls on.
func (s *Locked[T]) Counter() *Counter {
	return s.counter
}

// Empty reports whether the stack had no elements at the moment of the call.
func (s *Locked[T]) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.head == nil
}

// Push adds v on top of the stack and counts once.
func (s *Locked[T]) Push(v T) {
	s.mu.Lock()
	s.head = &node[T]{value: v, next: s.head}
	s.mu.Unlock()
	s.counter.Increment()
}

// TryPush returns iox.ErrWouldBlock if the lock is held.
func (s *Locked[T]) TryPush(v T) error {
	if !s.mu.TryLock() {
		return iox.ErrWouldBlock
	}
	s.head = &node[T]{value: v, next: s.head}
	s.mu.Unlock()
	s.counter.Increment()
	return nil
}

// Pop removes and returns the top value, or false when the stack is empty.
// Every call is counted.
func (s *Locked[T]) Pop() (T, bool) {
	s.mu.Lock()
	v, ok := s.take()
	s.mu.Unlock()
	s.counter.Increment()
	return v, ok
}

// TryPop returns iox.ErrWouldBlock if the lock is held.
func (s *Locked[T]) TryPop() (T, bool, error) {
	if !s.mu.TryLock() {
		var zero T
		return zero, false, iox.ErrWouldBlock
	}
	v, ok := s.take()
	s.mu.Unlock()
	s.counter.Increment()
	return v, ok, nil
}

// take pops under s.mu.
func (s *Locked[T]) take() (T, bool) {
	if s.head == nil {
		var zero T
		return zero, false
	}
	n := s.head
	s.head = n.next
	return n.value, true
}
