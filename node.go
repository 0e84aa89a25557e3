// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfstack

// node is one element of the stack's singly linked chain.
// value is immutable after construction. next is written only by the
// pushing goroutine before the node is published by a successful CAS,
// and never again afterwards.
type node[T any] struct {
	value T
	next  *node[T]
}
