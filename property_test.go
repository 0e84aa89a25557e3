// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfstack_test

import (
	"slices"
	"testing"
	"testing/quick"

	"code.hybscloud.com/lfstack"
	"pgregory.net/rapid"
)

// TestPropertyRoundTrip proves that for any prior contents and any value v,
// Push(v) immediately followed by Pop returns v and leaves the prior
// contents unchanged.
func TestPropertyRoundTrip(t *testing.T) {
	roundTrip := func(prior []int, v int) bool {
		s := lfstack.New[int](nil)
		for _, p := range prior {
			s.Push(p)
		}
		s.Push(v)
		got, ok := s.Pop()
		if !ok || got != v {
			return false
		}
		rest := drain[int](s)
		slices.Reverse(rest)
		if len(prior) == 0 && len(rest) == 0 {
			return true
		}
		return slices.Equal(prior, rest)
	}

	if err := quick.Check(roundTrip, nil); err != nil {
		t.Error(err)
	}
}

// TestPropertyReverseOrder proves that any sequence pushed by a single
// goroutine drains in exactly reverse order.
func TestPropertyReverseOrder(t *testing.T) {
	reverse := func(payload []int) bool {
		s := lfstack.New[int](nil)
		for _, v := range payload {
			s.Push(v)
		}
		got := drain[int](s)
		slices.Reverse(got)
		if len(payload) == 0 && len(got) == 0 {
			return true
		}
		return slices.Equal(payload, got)
	}

	if err := quick.Check(reverse, nil); err != nil {
		t.Error(err)
	}
}

// TestStackMatchesModel checks random push/pop sequences against a slice
// model, for both the lock-free and the locked stack.
func TestStackMatchesModel(t *testing.T) {
	impls := map[string]func(*lfstack.Counter) lfstack.Stacker[int]{
		"lockfree": func(c *lfstack.Counter) lfstack.Stacker[int] { return lfstack.New[int](c) },
		"locked":   func(c *lfstack.Counter) lfstack.Stacker[int] { return lfstack.NewLocked[int](c) },
	}

	for name, newStack := range impls {
		t.Run(name, func(t *testing.T) {
			rapid.Check(t, func(t *rapid.T) {
				var (
					counter lfstack.Counter
					s       = newStack(&counter)
					model   []int
					calls   uint64
				)

				t.Repeat(map[string]func(*rapid.T){
					"push": func(t *rapid.T) {
						v := rapid.Int().Draw(t, "value")
						s.Push(v)
						model = append(model, v)
						calls++
					},
					"pop": func(t *rapid.T) {
						v, ok := s.Pop()
						calls++
						if len(model) == 0 {
							if ok {
								t.Fatalf("pop on empty model returned %d", v)
							}
							return
						}
						want := model[len(model)-1]
						model = model[:len(model)-1]
						if !ok || v != want {
							t.Fatalf("pop got (%d, %v), want (%d, true)", v, ok, want)
						}
					},
					"": func(t *rapid.T) {
						if got := counter.Snapshot(); got != calls {
							t.Fatalf("counter got %d, want %d", got, calls)
						}
					},
				})
			})
		})
	}
}
