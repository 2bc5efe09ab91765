// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package csc

import "testing"

// buildSample builds the 3x2 matrix
//
//	[1 0]
//	[2 4]
//	[0 5]
func buildSample() *Matrix {
	colPtr := []int{0, 2, 4}
	rowIdx := []int{0, 1, 1, 2}
	values := []float64{1, 2, 4, 5}
	return NewCompressed(3, 2, colPtr, rowIdx, values)
}

func TestColAccessors(t *testing.T) {
	m := buildSample()
	if m.ColNNZ(0) != 2 || m.ColNNZ(1) != 2 {
		t.Fatalf("unexpected col nnz")
	}
	if m.NNZ() != 4 {
		t.Fatalf("nnz = %d, want 4", m.NNZ())
	}
	if !m.SortedInvariant(0) || !m.SortedInvariant(1) {
		t.Fatalf("row indices not sorted")
	}
}

func TestUncompressedGrow(t *testing.T) {
	colPtr := []int{0, 3, 6}
	nnz := []int{1, 1}
	rowIdx := []int{0, 0, 0, 1, 0, 0}
	values := make([]float64, 6)
	values[0] = 1
	values[3] = 4
	m := NewUncompressed(3, 2, colPtr, nnz, rowIdx, values)
	if m.ColNNZ(0) != 1 {
		t.Fatalf("initial nnz wrong")
	}
	m.SetNNZ(0, 3)
	if m.ColNNZ(0) != 3 {
		t.Fatalf("nnz not updated")
	}
	func() {
		defer func() {
			if recover() == nil {
				t.Fatalf("expected panic on capacity overflow")
			}
		}()
		m.SetNNZ(0, 4)
	}()
}

func TestTranspose(t *testing.T) {
	m := buildSample()
	tr := Transpose(m)
	if tr.Nrows != 2 || tr.Ncols != 3 {
		t.Fatalf("transpose shape wrong: %d x %d", tr.Nrows, tr.Ncols)
	}
	// row 1 of m = [2 4] -> column 1 of transpose
	got := tr.ColValues(1)
	want := []float64{2, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("transpose col 1 = %v, want %v", got, want)
		}
	}
}

func TestMulAddGatherMulAdd(t *testing.T) {
	m := buildSample()
	x := []float64{1, 2}
	out := make([]float64, 3)
	m.MulAdd(x, out)
	want := []float64{1, 10, 10}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("MulAdd = %v, want %v", out, want)
		}
	}

	y := []float64{1, 1, 1}
	outT := make([]float64, 2)
	m.GatherMulAdd(y, outT)
	wantT := []float64{3, 9}
	for i := range wantT {
		if outT[i] != wantT[i] {
			t.Fatalf("GatherMulAdd = %v, want %v", outT, wantT)
		}
	}
}

func TestSymUpperMulAdd(t *testing.T) {
	// Upper triangle of [[2,1],[1,3]]
	colPtr := []int{0, 1, 3}
	rowIdx := []int{0, 0, 1}
	values := []float64{2, 1, 3}
	h := NewCompressed(2, 2, colPtr, rowIdx, values)
	x := []float64{1, 1}
	out := make([]float64, 2)
	h.SymUpperMulAdd(x, out)
	want := []float64{3, 4}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("SymUpperMulAdd = %v, want %v", out, want)
		}
	}
}

func TestFindRow(t *testing.T) {
	m := buildSample()
	if idx := m.FindRow(1, 2); idx != 3 {
		t.Fatalf("FindRow(1,2) = %d, want 3", idx)
	}
	if idx := m.FindRow(0, 2); idx != -1 {
		t.Fatalf("FindRow(0,2) = %d, want -1", idx)
	}
}
