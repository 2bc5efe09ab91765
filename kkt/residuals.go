// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kkt

import (
	"github.com/aescande/proxsuite/csc"
	"github.com/aescande/proxsuite/vecmath"
)

// DualResidual returns r_d = Hx + g + Aᵀy + Cᵀz. At and Ct are stored
// transposed, so Aᵀy and Cᵀz are ordinary scatter multiplies
// (csc.Matrix.MulAdd) off the same stored data Ax/Cx reads with
// GatherMulAdd — no second, explicitly-transposed copy of A or C is ever
// materialized.
func DualResidual(p *Problem, x, y, z []float64) []float64 {
	rd := make([]float64, p.N)
	vecmath.Copy(rd, p.G)
	p.H.SymUpperMulAdd(x, rd)
	p.At.MulAdd(y, rd)
	p.Ct.MulAdd(z, rd)
	return rd
}

// EqResidual returns r_eq = Ax - b.
func EqResidual(p *Problem, x []float64) []float64 {
	ax := make([]float64, p.NEq)
	p.At.GatherMulAdd(x, ax)
	for i := range ax {
		ax[i] -= p.B[i]
	}
	return ax
}

// InValue returns Cx, the raw inequality constraint values (unclipped).
func InValue(p *Problem, x []float64) []float64 {
	cx := make([]float64, p.NIn)
	p.Ct.GatherMulAdd(x, cx)
	return cx
}

// MatVec returns the K·x operator (out accumulated, not overwritten) for
// an assembled K, for package ldlt's iterative-refinement solve. K is
// stored upper-triangular with an implied symmetric mirror, exactly the
// layout csc.Matrix.SymUpperMulAdd already handles for H.
func MatVec(k *csc.Matrix) func(x, out []float64) {
	return func(x, out []float64) { k.SymUpperMulAdd(x, out) }
}
