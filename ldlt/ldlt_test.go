// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ldlt

import (
	"math"
	"testing"

	"github.com/aescande/proxsuite/csc"
	"github.com/aescande/proxsuite/symbolic"
)

// denseSample builds a small symmetric positive-definite 4x4 matrix's
// upper triangle in CSC form, used across the factorization tests.
func denseSample() (*csc.Matrix, [][]float64) {
	dense := [][]float64{
		{4, 1, 0, 0},
		{1, 3, 1, 0},
		{0, 1, 5, 2},
		{0, 0, 2, 6},
	}
	colPtr := []int{0}
	var rowIdx []int
	var values []float64
	for j := 0; j < 4; j++ {
		for i := 0; i <= j; i++ {
			if dense[i][j] != 0 {
				rowIdx = append(rowIdx, i)
				values = append(values, dense[i][j])
			}
		}
		colPtr = append(colPtr, len(rowIdx))
	}
	return csc.NewCompressed(4, 4, colPtr, rowIdx, values), dense
}

func setupFactors(m *csc.Matrix) (*Factors, *symbolic.WeightedGraph) {
	g := symbolic.BuildGraph(m)
	perm, permInv := symbolic.MinimumDegree(g)
	parent := symbolic.EliminationTree(g, perm, permInv)
	counts := symbolic.ColumnCounts(g, perm, permInv, parent)
	wg := symbolic.BuildWeightedGraph(m)
	return New(counts, parent, perm, permInv), wg
}

func maxAbsDiff(a, b [][]float64) float64 {
	worst := 0.0
	for i := range a {
		for j := range a[i] {
			d := math.Abs(a[i][j] - b[i][j])
			if d > worst {
				worst = d
			}
		}
	}
	return worst
}

func permuteDense(dense [][]float64, perm []int) [][]float64 {
	n := len(dense)
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, n)
		for j := range out[i] {
			out[i][j] = dense[perm[i]][perm[j]]
		}
	}
	return out
}

func TestFactorizeReconstructsMatrix(t *testing.T) {
	m, dense := denseSample()
	f, wg := setupFactors(m)
	if err := Factorize(f, wg, nil); err != nil {
		t.Fatalf("Factorize failed: %v", err)
	}
	got := f.Reconstruct()
	want := permuteDense(dense, f.Perm)
	if d := maxAbsDiff(got, want); d > 1e-9 {
		t.Fatalf("reconstruction differs by %g\ngot  %v\nwant %v", d, got, want)
	}
}

func TestSolveInPlaceMatchesDirectSolve(t *testing.T) {
	m, dense := denseSample()
	f, wg := setupFactors(m)
	if err := Factorize(f, wg, nil); err != nil {
		t.Fatalf("Factorize failed: %v", err)
	}
	rhs := []float64{1, 2, 3, 4}
	x := append([]float64(nil), rhs...)
	f.SolveInPlace(x)

	// verify A*x == rhs by direct dense multiplication.
	got := make([]float64, 4)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			got[i] += dense[i][j] * x[j]
		}
	}
	for i := range got {
		if math.Abs(got[i]-rhs[i]) > 1e-8 {
			t.Fatalf("A*x[%d] = %g, want %g", i, got[i], rhs[i])
		}
	}
}

func TestSolveWithRefinementConverges(t *testing.T) {
	m, dense := denseSample()
	f, wg := setupFactors(m)
	if err := Factorize(f, wg, nil); err != nil {
		t.Fatalf("Factorize failed: %v", err)
	}
	matvec := func(x, out []float64) {
		for i := 0; i < 4; i++ {
			for j := 0; j < 4; j++ {
				out[i] += dense[i][j] * x[j]
			}
		}
	}
	rhs := []float64{1, 2, 3, 4}
	x := Solve(f, rhs, matvec, 5, 1e-13)
	res := make([]float64, 4)
	matvec(x, res)
	for i := range res {
		if math.Abs(res[i]-rhs[i]) > 1e-8 {
			t.Fatalf("residual[%d] = %g too large", i, res[i]-rhs[i])
		}
	}
}

func TestRank1UpdateMatchesDirectPerturbation(t *testing.T) {
	m, dense := denseSample()
	f, wg := setupFactors(m)
	if err := Factorize(f, wg, nil); err != nil {
		t.Fatalf("Factorize failed: %v", err)
	}
	w := []float64{1, 0, 1, 0} // in permuted order this is dense but that's fine for the check below
	alpha := 0.5

	Rank1Update(f, w, alpha)
	got := f.Reconstruct()

	wantBase := permuteDense(dense, f.Perm)
	for i := range wantBase {
		for j := range wantBase[i] {
			wantBase[i][j] += alpha * w[i] * w[j]
		}
	}
	if d := maxAbsDiff(got, wantBase); d > 1e-8 {
		t.Fatalf("rank-1 update differs by %g", d)
	}
}

func TestAddRowThenDeleteRowRoundTrips(t *testing.T) {
	m, _ := denseSample()
	f, wg := setupFactors(m)
	if err := Factorize(f, wg, nil); err != nil {
		t.Fatalf("Factorize failed: %v", err)
	}
	before := f.Reconstruct()

	k := 1
	coupling := make([]float64, f.N())
	coupling[0] = 0.25
	coupling[2] = -0.1
	coupling[k] = 0

	AddRow(f, k, coupling, 7.0)
	DeleteRow(f, k, coupling, 7.0)

	after := f.Reconstruct()
	if d := maxAbsDiff(before, after); d > 1e-7 {
		t.Fatalf("add/delete round trip differs by %g", d)
	}
}
