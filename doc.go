// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package lfstack provides a lock-free LIFO stack (Treiber stack) built on a
// single atomic head pointer and a compare-and-swap retry loop.
//
// # Architecture
//
//   - Core: [Stack] links heap-allocated nodes under one atomic head. Each successful
//     push or pop is exactly one successful CAS; lost races retry after [code.hybscloud.com/iox.Backoff].
//   - Counting: [Counter] records every push call and every pop call, including pops that
//     find the stack empty. It is injected at construction so several stacks may share one.
//   - Baseline: [Locked] has the same contract behind a mutex.
//   - Non-blocking: [Stack.TryPush] and [Stack.TryPop] make one attempt and return
//     [code.hybscloud.com/iox.ErrWouldBlock] when contended.
//
// # Programs
//
// Stack operations are also available as effects on [code.hybscloud.com/kont]:
// [PushThen], [PopBind], [Done], [Loop] and [Drain] build programs; [Exec] runs one
// to completion, while [Step] and [Advance] run it one attempt at a time, which fits
// a proactor loop.
//
// # Memory reclamation
//
// A Treiber stack is exposed to the ABA problem when a popped node's memory is reused
// while another goroutine still holds it as a stale head snapshot: that goroutine's CAS
// would succeed against the recycled node and corrupt the chain. Nodes here are never
// pooled or recycled; the garbage collector frees a node only once no goroutine can
// reach it, so a stale snapshot can never compare equal to a different live node.
// Do not add a node free list without adding tagged pointers or hazard pointers.
//
// # Example
//
//	s := lfstack.New[int](nil)
//	s.Push(1)
//	s.Push(2)
//	v, ok := s.Pop() // 2, true
//	_ = s.Counter().Snapshot() // 3
package lfstack
