// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package harness

import (
	"fmt"
	"math/rand/v2"
	"sync/atomic"

	"code.hybscloud.com/lfq"
	"code.hybscloud.com/lfstack"
)

// mailboxCapacity is the bounded capacity of a worker's tally mailbox.
// A worker publishes exactly once, on exit.
const mailboxCapacity = 4

type role uint8

const (
	pusher role = iota
	popper
)

func (r role) String() string {
	if r == pusher {
		return "pusher"
	}
	return "popper"
}

// tally is a worker's private count of the calls it issued.
type tally struct {
	pushes uint64
	pops   uint64
	hits   uint64
}

// worker drives one goroutine's share of the load. Its tally is kept
// local while running and handed to the harness through a
// single-producer single-consumer mailbox, so counting calls adds no
// shared writes next to the stack's own.
type worker struct {
	id      int
	role    role
	budget  int
	mailbox lfq.SPSC[tally]
	slot    tally
}

func newWorker(id int, r role, budget int) *worker {
	w := &worker{id: id, role: r, budget: budget}
	w.mailbox.Init(mailboxCapacity)
	return w
}

// run loops until stop is raised or the budget is spent. stop is checked
// before every call.
func (w *worker) run(s lfstack.Stacker[int], stop *atomic.Bool) (err error) {
	var t tally
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("harness: %s %d panicked: %v", w.role, w.id, r)
		}
		w.slot = t
		if perr := w.mailbox.Enqueue(&w.slot); perr != nil && err == nil {
			err = fmt.Errorf("harness: %s %d publish tally: %w", w.role, w.id, perr)
		}
	}()

	for n := 0; w.budget == 0 || n < w.budget; n++ {
		if stop.Load() {
			return nil
		}
		switch w.role {
		case pusher:
			s.Push(rand.Int())
			t.pushes++
		case popper:
			if _, ok := s.Pop(); ok {
				t.hits++
			}
			t.pops++
		}
	}
	return nil
}

// collect takes the tally the worker published on exit.
func (w *worker) collect() (tally, error) {
	t, err := w.mailbox.Dequeue()
	if err != nil {
		return tally{}, fmt.Errorf("harness: %s %d published no tally: %w", w.role, w.id, err)
	}
	return t, nil
}
