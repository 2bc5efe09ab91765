// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package precond implements Ruiz equilibration, the diagonal
// row/column-scaling preconditioner applied to H, A, C and g before the
// outer BCL loop runs, using gonum's floats package for the norm
// reductions the iteration needs.
package precond

import (
	"math"

	"github.com/aescande/proxsuite/csc"
	"gonum.org/v1/gonum/floats"
)

// Settings controls the equilibration iteration.
type Settings struct {
	MaxIter   int
	MinScale  float64
	Tolerance float64
}

// DefaultSettings mirrors ProxSuite's own defaults for Ruiz equilibration.
func DefaultSettings() Settings {
	return Settings{MaxIter: 10, MinScale: 1e-4, Tolerance: 1e-3}
}

// Scaling holds the diagonal scale factors and the cost scale computed by
// Equilibrate: DeltaX rescales the primal variables, DeltaEq/DeltaIn rescale
// the equality/inequality dual spaces, and C rescales the objective.
type Scaling struct {
	DeltaX  []float64
	DeltaEq []float64
	DeltaIn []float64
	C       float64
}

// Equilibrate runs the iterative infinity-norm row/column scaling over
// the stacked [H Aᵀ Cᵀ] problem data (H and g given directly; A and C
// given already transposed, matching how package kkt stores them) and
// returns the scaling that flattens their dynamic range.
// H, A, C and g are rescaled in place, one sweep's factors at a time; the
// returned Scaling is the product of all sweeps, for use with Unscale.
func Equilibrate(h, at, ct *csc.Matrix, g []float64, s Settings) Scaling {
	n := h.Nrows
	neq := at.Ncols
	nin := ct.Ncols

	deltaX := onesVec(n)
	deltaEq := onesVec(neq)
	deltaIn := onesVec(nin)
	c := 1.0

	for iter := 0; iter < s.MaxIter; iter++ {
		colNorm := make([]float64, n)
		symUpperColInfNormInto(h, colNorm)
		gatherColInfNormInto(at, colNorm)
		gatherColInfNormInto(ct, colNorm)

		rowEq := make([]float64, neq)
		colInfNormInto(at, rowEq)
		rowIn := make([]float64, nin)
		colInfNormInto(ct, rowIn)

		stepX := make([]float64, n)
		stepEq := make([]float64, neq)
		stepIn := make([]float64, nin)
		maxDrift := 0.0
		for i := 0; i < n; i++ {
			scale := clampScale(colNorm[i], s.MinScale)
			stepX[i] = 1 / scale
			deltaX[i] /= scale
			maxDrift = math.Max(maxDrift, math.Abs(1-scale))
		}
		for i := 0; i < neq; i++ {
			scale := clampScale(rowEq[i], s.MinScale)
			stepEq[i] = 1 / scale
			deltaEq[i] /= scale
			maxDrift = math.Max(maxDrift, math.Abs(1-scale))
		}
		for i := 0; i < nin; i++ {
			scale := clampScale(rowIn[i], s.MinScale)
			stepIn[i] = 1 / scale
			deltaIn[i] /= scale
			maxDrift = math.Max(maxDrift, math.Abs(1-scale))
		}

		applyScaling(h, at, ct, g, stepX, stepEq, stepIn, &c)

		if maxDrift < s.Tolerance {
			break
		}
	}

	return Scaling{DeltaX: deltaX, DeltaEq: deltaEq, DeltaIn: deltaIn, C: c}
}

func clampScale(v, minScale float64) float64 {
	s := math.Sqrt(v)
	if s < minScale {
		return 1
	}
	return s
}

func onesVec(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = 1
	}
	return v
}

// symUpperColInfNormInto accumulates H's column infinity norms (H stored
// upper-triangular with an implied symmetric mirror) into dst.
func symUpperColInfNormInto(h *csc.Matrix, dst []float64) {
	for j := 0; j < h.Ncols; j++ {
		rows := h.RowIndices(j)
		vals := h.ColValues(j)
		for k, i := range rows {
			v := math.Abs(vals[k])
			dst[j] = math.Max(dst[j], v)
			dst[i] = math.Max(dst[i], v)
		}
	}
}

// gatherColInfNormInto accumulates m's ROW infinity norms into dst, indexed
// by m's row (i.e. the primal variable each stacked block column touches);
// since A/C are stored transposed, this is m's column-wise max scattered
// into row positions.
func gatherColInfNormInto(m *csc.Matrix, dst []float64) {
	for j := 0; j < m.Ncols; j++ {
		rows := m.RowIndices(j)
		vals := m.ColValues(j)
		for k, i := range rows {
			dst[i] = math.Max(dst[i], math.Abs(vals[k]))
		}
	}
}

// colInfNormInto computes m's own column infinity norms (one per stored
// constraint row, since m is Aᵀ or Cᵀ).
func colInfNormInto(m *csc.Matrix, dst []float64) {
	for j := 0; j < m.Ncols; j++ {
		vals := m.ColValues(j)
		best := 0.0
		for _, v := range vals {
			best = math.Max(best, math.Abs(v))
		}
		dst[j] = best
	}
}

func applyScaling(h, at, ct *csc.Matrix, g, deltaX, deltaEq, deltaIn []float64, c *float64) {
	for j := 0; j < h.Ncols; j++ {
		rows := h.RowIndices(j)
		vals := h.ColValues(j)
		for k, i := range rows {
			vals[k] *= deltaX[i] * deltaX[j]
		}
	}
	for j := 0; j < at.Ncols; j++ {
		rows := at.RowIndices(j)
		vals := at.ColValues(j)
		for k, i := range rows {
			vals[k] *= deltaX[i] * deltaEq[j]
		}
	}
	for j := 0; j < ct.Ncols; j++ {
		rows := ct.RowIndices(j)
		vals := ct.ColValues(j)
		for k, i := range rows {
			vals[k] *= deltaX[i] * deltaIn[j]
		}
	}
	// The cost scale factor must be applied uniformly to H and g together
	// (minimize factor*(½xᵀHx+gᵀx)) so it never shifts the minimizer x —
	// only the reported objective value and the dual variables, which
	// Scaling.Unscale divides back out via C.
	gNorm := floats.Norm(g, math.Inf(1))
	factor := 1 / clampScale(math.Max(gNorm, 1), 1e-6)
	*c *= factor
	for i := range g {
		g[i] *= deltaX[i] * factor
	}
	for j := 0; j < h.Ncols; j++ {
		vals := h.ColValues(j)
		for k := range vals {
			vals[k] *= factor
		}
	}
}

// Unscale rewrites x, y, z (primal, equality dual, inequality dual) from
// scaled to original units.
func (s Scaling) Unscale(x, y, z []float64) {
	for i := range x {
		x[i] *= s.DeltaX[i]
	}
	for i := range y {
		y[i] *= s.DeltaEq[i] / s.C
	}
	for i := range z {
		z[i] *= s.DeltaIn[i] / s.C
	}
}

// Scale rewrites x, y, z from original to scaled units (the inverse of
// Unscale), used when a caller supplies a warm start in original units.
func (s Scaling) Scale(x, y, z []float64) {
	for i := range x {
		x[i] /= s.DeltaX[i]
	}
	for i := range y {
		y[i] *= s.C / s.DeltaEq[i]
	}
	for i := range z {
		z[i] *= s.C / s.DeltaIn[i]
	}
}
