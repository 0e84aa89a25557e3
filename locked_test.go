// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfstack_test

import (
	"slices"
	"sync"
	"testing"

	"code.hybscloud.com/lfstack"
	"github.com/google/go-cmp/cmp"
)

var (
	_ lfstack.Stacker[int] = (*lfstack.Stack[int])(nil)
	_ lfstack.Stacker[int] = (*lfstack.Locked[int])(nil)
)

func TestLockedLIFO(t *testing.T) {
	s := lfstack.NewLocked[int](nil)
	s.Push(1)
	s.Push(2)
	s.Push(3)

	if diff := cmp.Diff([]int{3, 2, 1}, drain[int](s)); diff != "" {
		t.Fatalf("pop order mismatch (-want +got):\n%s", diff)
	}
	if !s.Empty() {
		t.Fatal("locked stack not empty after drain")
	}
	// 3 pushes, 3 hits, 1 empty pop.
	if got := s.Counter().Snapshot(); got != 7 {
		t.Fatalf("counter got %d, want 7", got)
	}
}

func TestLockedTryOps(t *testing.T) {
	s := lfstack.NewLocked[int](nil)
	if err := s.TryPush(5); err != nil {
		t.Fatalf("uncontended TryPush error: %v", err)
	}
	v, ok, err := s.TryPop()
	if err != nil || !ok || v != 5 {
		t.Fatalf("TryPop got (%d, %v, %v), want (5, true, nil)", v, ok, err)
	}
}

func TestLockedNoLossNoDuplication(t *testing.T) {
	const pushers, perPusher = 4, 10_000
	s := lfstack.NewLocked[int](nil)

	var wg sync.WaitGroup
	for w := range pushers {
		wg.Go(func() {
			for i := range perPusher {
				s.Push(w*perPusher + i)
			}
		})
	}
	wg.Wait()

	got := drain[int](s)
	slices.Sort(got)
	if len(got) != pushers*perPusher {
		t.Fatalf("drained %d values, want %d", len(got), pushers*perPusher)
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("drained[%d] = %d, want %d", i, v, i)
		}
	}
}
