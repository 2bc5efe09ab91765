// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package newton implements the primal-dual semismooth Newton method that
// solves one proximal augmented-Lagrangian subproblem for a fixed (rho,
// mu_eq, mu_in): residual evaluation, active-set proposal against the
// one-sided box residuals r_up/r_lo, the resulting KKT system solve (via
// package ldlt, kept synchronized to the proposed active set through
// AddRow/DeleteRow), and an exact piecewise line search along the Newton
// direction.
package newton

import "github.com/aescande/proxsuite/kkt"

// ProxParams carries the proximal center and penalty parameters the BCL
// outer loop holds fixed while the inner Newton iteration runs.
type ProxParams struct {
	Rho, MuEq, MuIn     float64
	XPrev, YPrev, ZPrev []float64
}

// Residuals computes the proximal semismooth KKT residuals at (x, y, z):
//
//	r_d  = Hx + g + Aᵀy + Cᵀz + ρ(x − xPrev)
//	r_eq = Ax − b − (y − yPrev)/μ_eq
//	r_up = Cx − u + z/μ_in
//	r_lo = Cx − l + z/μ_in
//
// r_up and r_lo are returned for every constraint regardless of side: the
// active-set test (Propose) is exactly r_up[i] > 0 / r_lo[i] < 0, and the
// RHS assembly and line search both need whichever one the active side
// picks out.
func Residuals(p *kkt.Problem, x, y, z []float64, prox ProxParams) (rd, req, rup, rlo []float64) {
	rd = kkt.DualResidual(p, x, y, z)
	for i := range rd {
		rd[i] += prox.Rho * (x[i] - prox.XPrev[i])
	}

	req = kkt.EqResidual(p, x)
	for i := range req {
		req[i] += (prox.YPrev[i] - y[i]) / prox.MuEq
	}

	rup, rlo = boxResiduals(p, x, z, prox.MuIn)
	return rd, req, rup, rlo
}

// boxResiduals computes r_up = Cx − u + z/μ_in and r_lo = Cx − l + z/μ_in
// on their own, for callers (the line search's breakpoint pass) that don't
// need the dual/equality residuals alongside them.
func boxResiduals(p *kkt.Problem, x, z []float64, muIn float64) (rup, rlo []float64) {
	cx := kkt.InValue(p, x)
	rup = make([]float64, len(cx))
	rlo = make([]float64, len(cx))
	for i := range cx {
		rup[i] = cx[i] - p.U[i] + z[i]/muIn
		rlo[i] = cx[i] - p.L[i] + z[i]/muIn
	}
	return rup, rlo
}

// CombinedIn folds r_up/r_lo into the single per-constraint term the inner
// loop's exit test and the outer loop's box-aware primal residual both
// share: neg(r_lo) + pos(r_up) − z/μ_in. On an active-up row this collapses
// to Cx − u, on an active-lo row to Cx − l, and on an inactive row to
// −z/μ_in (driving the leftover multiplier to zero).
func CombinedIn(rup, rlo, z []float64, muIn float64) []float64 {
	out := make([]float64, len(rup))
	for i := range out {
		v := 0.0
		if rlo[i] < 0 {
			v += rlo[i]
		}
		if rup[i] > 0 {
			v += rup[i]
		}
		out[i] = v - z[i]/muIn
	}
	return out
}
