// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kkt

import (
	"testing"

	"github.com/aescande/proxsuite/csc"
)

func sampleProblem() *Problem {
	h := csc.NewCompressed(2, 2, []int{0, 1, 2}, []int{0, 1}, []float64{2, 2})
	at := csc.NewCompressed(2, 1, []int{0, 2}, []int{0, 1}, []float64{1, 1})
	ct := csc.NewCompressed(2, 1, []int{0, 1}, []int{0}, []float64{1})
	return &Problem{
		N: 2, NEq: 1, NIn: 1,
		H: h, At: at, Ct: ct,
		G: []float64{1, 1}, B: []float64{1},
		L: []float64{-1}, U: []float64{1},
	}
}

func TestActiveSetBookkeeping(t *testing.T) {
	a := NewActiveSet(3)
	if a.IsActive(0) {
		t.Fatalf("new active set should start empty")
	}
	if !a.Activate(0) {
		t.Fatalf("activate should report a change")
	}
	if a.Activate(0) {
		t.Fatalf("re-activating should report no change")
	}
	if a.Count() != 1 {
		t.Fatalf("count = %d, want 1", a.Count())
	}
	a.Deactivate(0)
	if a.Count() != 0 || a.IsActive(0) {
		t.Fatalf("deactivate did not clear state")
	}
}

func TestAssembleInactiveColumnIsIdentity(t *testing.T) {
	p := sampleProblem()
	active := []bool{false}
	k := Assemble(p, active, 1e-6, 1e-3, 1e-1)
	col := p.N + p.NEq
	rows := k.RowIndices(col)
	vals := k.ColValues(col)
	if len(rows) != 1 || rows[0] != col || vals[0] != 1 {
		t.Fatalf("inactive column not an identity row: rows=%v vals=%v", rows, vals)
	}
}

func TestAssembleActiveColumnCarriesCoupling(t *testing.T) {
	p := sampleProblem()
	active := []bool{true}
	k := Assemble(p, active, 1e-6, 1e-3, 1e-1)
	col := p.N + p.NEq
	rows := k.RowIndices(col)
	if len(rows) != len(p.Ct.RowIndices(0))+1 {
		t.Fatalf("active column missing coupling: rows=%v", rows)
	}
}

func TestDualResidualEqualsGradientAtOrigin(t *testing.T) {
	p := sampleProblem()
	x := []float64{0, 0}
	y := []float64{0}
	z := []float64{0}
	rd := DualResidual(p, x, y, z)
	for i, v := range rd {
		if v != p.G[i] {
			t.Fatalf("r_d[%d] = %g, want g[%d] = %g at x=0", i, v, i, p.G[i])
		}
	}
}
