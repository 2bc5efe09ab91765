// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bcl

import (
	"math"

	"github.com/aescande/proxsuite/kkt"
	"github.com/aescande/proxsuite/vecmath"
)

// primalInfeasible tests whether dy, dz (the change in the equality/
// inequality duals over an outer iteration that failed to improve the
// primal residual) is a Farkas certificate of primal infeasibility: a
// direction with Aᵀdy + Cᵀdz ≈ 0 whose implied constraint drift
// b·dy + boundary·dz is strictly negative means no x can satisfy Ax=b,
// l≤Cx≤u, since the dual can be pushed along this direction without bound
// while the drift keeps falling.
func primalInfeasible(p *kkt.Problem, dy, dz []float64, eps float64) bool {
	dirNorm := math.Max(vecmath.NormInf(dy), vecmath.NormInf(dz))
	if dirNorm < eps {
		return false
	}

	stationarity := make([]float64, p.N)
	p.At.MulAdd(dy, stationarity)
	p.Ct.MulAdd(dz, stationarity)
	if vecmath.NormInf(stationarity) > eps*dirNorm {
		return false
	}

	drift := vecmath.Dot(p.B, dy)
	for i, d := range dz {
		switch {
		case d > 0:
			if math.IsInf(p.U[i], 1) {
				return false
			}
			drift += p.U[i] * d
		case d < 0:
			if math.IsInf(p.L[i], -1) {
				return false
			}
			drift += p.L[i] * d
		}
	}
	return drift < -eps*dirNorm
}

// dualInfeasible tests whether dx (the change in the primal iterate over
// an outer iteration that failed to improve the dual residual) is a
// certificate of dual infeasibility: an unbounded direction that leaves H
// and the equality constraints unmoved, never crosses a finite
// inequality bound, and strictly decreases the objective.
func dualInfeasible(p *kkt.Problem, dx []float64, eps float64) bool {
	dirNorm := vecmath.NormInf(dx)
	if dirNorm < eps {
		return false
	}

	hdx := make([]float64, p.N)
	p.H.SymUpperMulAdd(dx, hdx)
	if vecmath.NormInf(hdx) > eps*dirNorm {
		return false
	}

	adx := make([]float64, p.NEq)
	p.At.GatherMulAdd(dx, adx)
	if vecmath.NormInf(adx) > eps*dirNorm {
		return false
	}

	cx := make([]float64, p.NIn)
	p.Ct.GatherMulAdd(dx, cx)
	for i, v := range cx {
		if v > eps*dirNorm && !math.IsInf(p.U[i], 1) {
			return false
		}
		if v < -eps*dirNorm && !math.IsInf(p.L[i], -1) {
			return false
		}
	}

	return vecmath.Dot(p.G, dx) < -eps*dirNorm
}
