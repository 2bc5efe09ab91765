// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proxqp

import (
	"context"

	"github.com/aescande/proxsuite/bcl"
	"github.com/aescande/proxsuite/csc"
	"github.com/aescande/proxsuite/kkt"
	"github.com/aescande/proxsuite/precond"
)

// Problem is the caller-facing convex QP:
//
//	minimize   ½xᵀHx + gᵀx
//	subject to Ax = b,  l ≤ Cx ≤ u
//
// H is given upper-triangular; A and C are given in their natural
// (non-transposed) row-major-constraint orientation and transposed once,
// at New, into the column layout package kkt needs.
type Problem struct {
	N, NEq, NIn int
	H           *csc.Matrix
	A, C        *csc.Matrix
	G, B, L, U  []float64
}

// New validates dims and bounds and builds a Solver.
func New(p Problem, settings Settings) (*Solver, error) {
	if p.H == nil || p.H.Nrows != p.N || p.H.Ncols != p.N {
		return nil, newError(InvalidDimensions, "H must be %d x %d", p.N, p.N)
	}
	if p.A != nil && (p.A.Nrows != p.NEq || p.A.Ncols != p.N) {
		return nil, newError(InvalidDimensions, "A must be %d x %d", p.NEq, p.N)
	}
	if p.C != nil && (p.C.Nrows != p.NIn || p.C.Ncols != p.N) {
		return nil, newError(InvalidDimensions, "C must be %d x %d", p.NIn, p.N)
	}
	if len(p.G) != p.N || len(p.B) != p.NEq || len(p.L) != p.NIn || len(p.U) != p.NIn {
		return nil, newError(InvalidDimensions, "g, b, l, u must have lengths %d, %d, %d, %d", p.N, p.NEq, p.NIn, p.NIn)
	}
	for i := 0; i < p.NIn; i++ {
		if p.L[i] > p.U[i] {
			return nil, newError(InvalidBounds, "l[%d]=%g > u[%d]=%g", i, p.L[i], i, p.U[i])
		}
	}

	var at *csc.Matrix
	if p.A != nil {
		at = csc.Transpose(p.A)
	} else {
		at = csc.NewCompressed(p.N, p.NEq, make([]int, p.NEq+1), nil, nil)
	}
	var ct *csc.Matrix
	if p.C != nil {
		ct = csc.Transpose(p.C)
	} else {
		ct = csc.NewCompressed(p.N, p.NIn, make([]int, p.NIn+1), nil, nil)
	}

	s := &Solver{
		problem: &kkt.Problem{
			N: p.N, NEq: p.NEq, NIn: p.NIn,
			H: p.H, At: at, Ct: ct,
			G: append([]float64(nil), p.G...),
			B: append([]float64(nil), p.B...),
			L: append([]float64(nil), p.L...),
			U: append([]float64(nil), p.U...),
		},
		settings: settings,
		results:  NewResults(p.N, p.NEq, p.NIn),
	}
	return s, nil
}

// Solver holds a problem, its settings and the last Results.
type Solver struct {
	problem  *kkt.Problem
	settings Settings
	scaling  *precond.Scaling
	results  *Results
}

// Update replaces g, b, l or u in place (nil leaves the corresponding
// field untouched), for the warm-started resolve-with-new-data path. H, A
// and C's sparsity pattern cannot change after New.
func (s *Solver) Update(g, b, l, u []float64) error {
	if g != nil {
		if len(g) != s.problem.N {
			return newError(InvalidDimensions, "g must have length %d", s.problem.N)
		}
		copy(s.problem.G, g)
	}
	if b != nil {
		if len(b) != s.problem.NEq {
			return newError(InvalidDimensions, "b must have length %d", s.problem.NEq)
		}
		copy(s.problem.B, b)
	}
	if l != nil {
		copy(s.problem.L, l)
	}
	if u != nil {
		copy(s.problem.U, u)
	}
	for i := 0; i < s.problem.NIn; i++ {
		if s.problem.L[i] > s.problem.U[i] {
			return newError(InvalidBounds, "l[%d]=%g > u[%d]=%g", i, s.problem.L[i], i, s.problem.U[i])
		}
	}
	return nil
}

// Solve runs Ruiz equilibration (if enabled) and the BCL outer loop, and
// returns the unscaled Results. ctx is accepted for cancellation
// consistency with the rest of the ecosystem's blocking operations, but
// the current outer loop does not yet poll it mid-iteration.
func (s *Solver) Solve(ctx context.Context) (*Results, error) {
	select {
	case <-ctx.Done():
		return nil, wrapError(FactorizationBreakdown, ctx.Err(), "solve canceled before starting")
	default:
	}

	working := *s.problem
	working.H = cloneMatrix(s.problem.H)
	working.At = cloneMatrix(s.problem.At)
	working.Ct = cloneMatrix(s.problem.Ct)
	working.G = append([]float64(nil), s.problem.G...)
	working.B = append([]float64(nil), s.problem.B...)
	working.L = append([]float64(nil), s.problem.L...)
	working.U = append([]float64(nil), s.problem.U...)

	var scaling precond.Scaling
	if s.settings.Equilibrate {
		scaling = precond.Equilibrate(working.H, working.At, working.Ct, working.G, precond.DefaultSettings())
	} else {
		scaling = identityScaling(s.problem.N, s.problem.NEq, s.problem.NIn)
	}
	s.scaling = &scaling
	for i := range working.B {
		working.B[i] *= scaling.DeltaEq[i]
	}
	for i := range working.L {
		working.L[i] *= scaling.DeltaIn[i]
		working.U[i] *= scaling.DeltaIn[i]
	}

	settings := bcl.Settings{
		EpsAbs: s.settings.EpsAbs, EpsRel: s.settings.EpsRel,
		MaxIterOuter: s.settings.MaxIterOuter, MaxIterInner: s.settings.MaxIterInner,
		MaxRefine: s.settings.MaxRefine, RefineTol: s.settings.RefineTol,
		MuUpdateFactor: s.settings.MuUpdateFactor, MuMin: s.settings.MuMin,
		Polish:       s.settings.Polish,
		EpsPrimalInf: s.settings.EpsPrimalInf, EpsDualInf: s.settings.EpsDualInf,
		EtaExtInit: s.settings.EtaExtInit, EtaInInit: s.settings.EtaInInit,
		AlphaBcl: s.settings.AlphaBcl, BetaBcl: s.settings.BetaBcl,
		MaxConsecutiveBadSteps: s.settings.MaxConsecutiveBadSteps,
		Verbose:                s.settings.Verbose,
		Logger:                 s.settings.Logger,
	}
	x, y, z, info := bcl.Solve(&working, settings)
	scaling.Unscale(x, y, z)
	info.ObjValue /= scaling.C

	if s.settings.Verbose && s.settings.Logger != nil {
		s.settings.Logger.Debug("proxqp solve finished",
			"status", info.Status.String(), "iter", info.Iter, "iter_ext", info.IterExt,
			"pri_res", info.PriRes, "dua_res", info.DuaRes)
	}

	s.results.X, s.results.Y, s.results.Z = x, y, z
	s.results.Info = info
	return s.results, nil
}

// Cleanup resets the last Results, wired to the Solver's own Results
// instance.
func (s *Solver) Cleanup() { s.results.Cleanup() }

func identityScaling(n, neq, nin int) precond.Scaling {
	one := func(k int) []float64 {
		v := make([]float64, k)
		for i := range v {
			v[i] = 1
		}
		return v
	}
	return precond.Scaling{DeltaX: one(n), DeltaEq: one(neq), DeltaIn: one(nin), C: 1}
}

func cloneMatrix(m *csc.Matrix) *csc.Matrix {
	if m == nil {
		return nil
	}
	values := append([]float64(nil), m.Values...)
	rowIdx := append([]int(nil), m.RowIdx...)
	colPtr := append([]int(nil), m.ColPtr...)
	if m.IsCompressed() {
		return csc.NewCompressed(m.Nrows, m.Ncols, colPtr, rowIdx, values)
	}
	nnz := append([]int(nil), m.NnzPerCol...)
	return csc.NewUncompressed(m.Nrows, m.Ncols, colPtr, nnz, rowIdx, values)
}
