// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfstack_test

import (
	"code.hybscloud.com/lfstack"
)

// drain pops s until it reports empty and returns values in pop order.
// The final empty pop is counted by s.
func drain[T any](s lfstack.Stacker[T]) []T {
	var out []T
	for {
		v, ok := s.Pop()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

// tagged is a stress payload whose fields are checked against each
// other to detect a torn read of a node.
type tagged struct {
	worker int
	seq    int
	sum    int
}

func newTagged(worker, seq int) tagged {
	return tagged{worker: worker, seq: seq, sum: worker*1_000_003 + seq}
}

func (v tagged) intact() bool {
	return v.sum == v.worker*1_000_003+v.seq
}
