// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proxqp

import (
	"context"
	"math"
	"testing"

	"github.com/aescande/proxsuite/csc"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func identityH(n int) *csc.Matrix {
	colPtr := make([]int, n+1)
	var rowIdx []int
	var values []float64
	for j := 0; j < n; j++ {
		colPtr[j] = len(rowIdx)
		rowIdx = append(rowIdx, j)
		values = append(values, 1)
	}
	colPtr[n] = len(rowIdx)
	return csc.NewCompressed(n, n, colPtr, rowIdx, values)
}

func TestNewRejectsMismatchedDimensions(t *testing.T) {
	p := Problem{N: 2, H: identityH(2), G: []float64{1}}
	_, err := New(p, DefaultSettings())
	require.Error(t, err)
	var pe *Error
	require.ErrorAs(t, err, &pe)
	require.Equal(t, InvalidDimensions, pe.Kind)
}

func TestNewRejectsInvertedBounds(t *testing.T) {
	p := Problem{
		N: 1, NIn: 1, H: identityH(1),
		C: csc.NewCompressed(1, 1, []int{0, 1}, []int{0}, []float64{1}),
		G: []float64{0}, L: []float64{1}, U: []float64{-1},
	}
	_, err := New(p, DefaultSettings())
	require.Error(t, err)
	var pe *Error
	require.ErrorAs(t, err, &pe)
	require.Equal(t, InvalidBounds, pe.Kind)
}

func TestSolveUnconstrainedQuadratic(t *testing.T) {
	p := Problem{N: 2, H: identityH(2), G: []float64{4, -6}}
	s, err := New(p, DefaultSettings())
	require.NoError(t, err)

	res, err := s.Solve(context.Background())
	require.NoError(t, err)
	require.Equal(t, Solved, res.Info.Status)
	require.InDelta(t, -4, res.X[0], 1e-3)
	require.InDelta(t, 6, res.X[1], 1e-3)
}

// TestSolveMatchesDenseCholeskyReference checks the sparse solver's
// unconstrained optimum against a dense Cholesky solve of Hx=-g, using
// gonum's mat package as an independent reference. H is SPD here (no
// active inequalities ever perturb its diagonal), so Cholesky applies
// even though the solver's own KKT system is indefinite by construction.
func TestSolveMatchesDenseCholeskyReference(t *testing.T) {
	colPtr := []int{0, 1, 3, 4}
	rowIdx := []int{0, 0, 1, 2}
	values := []float64{4, 1, 3, 2}
	h := csc.NewCompressed(3, 3, colPtr, rowIdx, values)
	g := []float64{1, 2, 3}

	p := Problem{N: 3, H: h, G: g}
	s, err := New(p, DefaultSettings())
	require.NoError(t, err)
	res, err := s.Solve(context.Background())
	require.NoError(t, err)
	require.Equal(t, Solved, res.Info.Status)

	dense := mat.NewSymDense(3, []float64{
		4, 1, 0,
		1, 3, 0,
		0, 0, 2,
	})
	var chol mat.Cholesky
	require.True(t, chol.Factorize(dense))
	rhs := mat.NewVecDense(3, []float64{-g[0], -g[1], -g[2]})
	var want mat.VecDense
	require.NoError(t, chol.SolveVecTo(&want, rhs))

	for i := 0; i < 3; i++ {
		require.InDelta(t, want.AtVec(i), res.X[i], 1e-3)
	}
}

// TestSolveEqualityConstrained minimizes ½(x1²+x2²) subject to x1+x2=1.
// Stationarity gives x = -Aᵀy, and substituting into the constraint
// yields the closed form x1=x2=0.5, y=-0.5.
func TestSolveEqualityConstrained(t *testing.T) {
	p := Problem{
		N: 2, NEq: 1, H: identityH(2),
		A: csc.NewCompressed(1, 2, []int{0, 1, 2}, []int{0, 0}, []float64{1, 1}),
		G: []float64{0, 0}, B: []float64{1},
	}
	s, err := New(p, DefaultSettings())
	require.NoError(t, err)

	res, err := s.Solve(context.Background())
	require.NoError(t, err)
	require.Equal(t, Solved, res.Info.Status)
	require.InDelta(t, 0.5, res.X[0], 1e-3)
	require.InDelta(t, 0.5, res.X[1], 1e-3)
	require.InDelta(t, -0.5, res.Y[0], 1e-3)
}

// TestSolveUpperBoundActive minimizes ½x²-2x subject to x≤1. The
// unconstrained minimizer x=2 violates the upper bound, so the solution
// sits exactly at x=1 with the stationarity condition x-2+z=0 fixing the
// multiplier at z=1.
func TestSolveUpperBoundActive(t *testing.T) {
	p := Problem{
		N: 1, NIn: 1, H: identityH(1),
		C: csc.NewCompressed(1, 1, []int{0, 1}, []int{0}, []float64{1}),
		G: []float64{-2}, L: []float64{math.Inf(-1)}, U: []float64{1},
	}
	s, err := New(p, DefaultSettings())
	require.NoError(t, err)

	res, err := s.Solve(context.Background())
	require.NoError(t, err)
	require.Equal(t, Solved, res.Info.Status)
	require.InDelta(t, 1, res.X[0], 1e-3)
	require.InDelta(t, 1, res.Z[0], 1e-3)
}

// TestSolveEqualityCollapsedBound minimizes ½x² subject to l=u=3, an
// inequality constraint whose bounds coincide and so behaves as an
// equality Cx=3. Stationarity gives x+z=0 with x pinned to 3 by the
// collapsed bound, so z=-3.
func TestSolveEqualityCollapsedBound(t *testing.T) {
	p := Problem{
		N: 1, NIn: 1, H: identityH(1),
		C: csc.NewCompressed(1, 1, []int{0, 1}, []int{0}, []float64{1}),
		G: []float64{0}, L: []float64{3}, U: []float64{3},
	}
	s, err := New(p, DefaultSettings())
	require.NoError(t, err)

	res, err := s.Solve(context.Background())
	require.NoError(t, err)
	require.Equal(t, Solved, res.Info.Status)
	require.InDelta(t, 3, res.X[0], 1e-3)
	require.InDelta(t, -3, res.Z[0], 1e-3)
}

// TestSolveDegenerateBoundary minimizes ½x² subject to x≤0: the
// unconstrained minimizer x=0 already sits exactly on the bound, so the
// constraint is active with a multiplier that is itself zero —
// complementarity holds degenerately rather than strictly.
func TestSolveDegenerateBoundary(t *testing.T) {
	p := Problem{
		N: 1, NIn: 1, H: identityH(1),
		C: csc.NewCompressed(1, 1, []int{0, 1}, []int{0}, []float64{1}),
		G: []float64{0}, L: []float64{math.Inf(-1)}, U: []float64{0},
	}
	s, err := New(p, DefaultSettings())
	require.NoError(t, err)

	res, err := s.Solve(context.Background())
	require.NoError(t, err)
	require.Equal(t, Solved, res.Info.Status)
	require.InDelta(t, 0, res.X[0], 1e-3)
	require.InDelta(t, 0, res.Z[0], 1e-3)
}

// TestSolveInfeasibleBounds sets up two inequality rows on the same
// variable, x≤-1 and x≥1, that together admit no feasible point. The
// solver must report PrimalInfeasible rather than silently returning a
// best-effort iterate or exhausting MaxIterOuter unlabeled.
func TestSolveInfeasibleBounds(t *testing.T) {
	p := Problem{
		N: 1, NIn: 2, H: identityH(1),
		C: csc.NewCompressed(2, 1, []int{0, 2}, []int{0, 1}, []float64{1, 1}),
		G: []float64{0},
		L: []float64{math.Inf(-1), 1},
		U: []float64{-1, math.Inf(1)},
	}
	s, err := New(p, DefaultSettings())
	require.NoError(t, err)

	res, err := s.Solve(context.Background())
	require.NoError(t, err)
	require.Equal(t, PrimalInfeasible, res.Info.Status)
}

func TestResultsThreeTierReset(t *testing.T) {
	r := NewResults(1, 0, 0)
	r.X[0] = 5
	r.Info.Iter = 3
	r.Info.Rho = 0.5

	r.CleanupStatistics()
	require.Equal(t, 5.0, r.X[0], "CleanupStatistics must not touch the solution")
	require.Equal(t, 0, r.Info.Iter)
	require.Equal(t, 0.5, r.Info.Rho, "CleanupStatistics must not touch penalties")

	r.ColdStart(0, 0, 0)
	require.NotEqual(t, 0.5, r.Info.Rho, "ColdStart with all-zero args resets to defaults")

	r.Cleanup()
	require.Equal(t, 0.0, r.X[0])
	require.Equal(t, Info{}, r.Info)
}
