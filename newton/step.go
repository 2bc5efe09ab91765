// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package newton

import (
	"github.com/aescande/proxsuite/kkt"
	"github.com/aescande/proxsuite/ldlt"
)

// Direction is one semismooth Newton step's result: the primal-dual
// direction and the active-set proposal it was computed against.
type Direction struct {
	Dx, Dy, Dz []float64
	Status     []Status
}

// Step proposes a new active set, synchronizes the factorization to it via
// AddRow/DeleteRow, assembles the residual as a right-hand side, and
// solves the resulting KKT system with iterative refinement. factors and
// activeSet are updated in place to track the proposal this step made.
func Step(p *kkt.Problem, factors *ldlt.Factors, activeSet *kkt.ActiveSet, x, y, z []float64, prox ProxParams, maxRefine int, tol float64) Direction {
	rd, req, rup, rlo := Residuals(p, x, y, z, prox)
	status := Propose(rup, rlo)

	for i, s := range status {
		wantActive := s != Inactive
		switch {
		case wantActive && !activeSet.IsActive(i):
			coupling := kkt.Coupling(p, i)
			ldlt.AddRow(factors, kkt.Index(p, i), coupling, -1/prox.MuIn)
			activeSet.Activate(i)
		case !wantActive && activeSet.IsActive(i):
			coupling := kkt.Coupling(p, i)
			ldlt.DeleteRow(factors, kkt.Index(p, i), coupling, -1/prox.MuIn)
			activeSet.Deactivate(i)
		}
	}

	ntot := p.N + p.NEq + p.NIn
	rhs := make([]float64, ntot)
	for i := 0; i < p.N; i++ {
		rhs[i] = -rd[i]
	}
	for i := 0; i < p.NEq; i++ {
		rhs[p.N+i] = -req[i]
	}
	// Active-up/active-lo rows target the multiplier update that would
	// null out the corresponding one-sided residual; an inactive row is a
	// bare identity whose target is simply to null out the z the
	// constraint is still carrying, but the identity forces dz_i = -z_i
	// exactly, so the Cᵀz term rd already carries must be corrected by
	// z_i·C_row_i on the primal rows or the direction leaves that
	// constraint's contribution to r_d stranded.
	for i := 0; i < p.NIn; i++ {
		switch status[i] {
		case AtUpper:
			rhs[p.N+p.NEq+i] = z[i]/prox.MuIn - rup[i]
		case AtLower:
			rhs[p.N+p.NEq+i] = z[i]/prox.MuIn - rlo[i]
		default:
			rhs[p.N+p.NEq+i] = -z[i]
			if z[i] != 0 {
				rows := p.Ct.RowIndices(i)
				vals := p.Ct.ColValues(i)
				for k, r := range rows {
					rhs[r] += z[i] * vals[k]
				}
			}
		}
	}

	kMat := kkt.Assemble(p, activeSet.Snapshot(), prox.Rho, prox.MuEq, prox.MuIn)
	delta := ldlt.Solve(factors, rhs, kkt.MatVec(kMat), maxRefine, tol)

	return Direction{
		Dx:     delta[:p.N],
		Dy:     delta[p.N : p.N+p.NEq],
		Dz:     delta[p.N+p.NEq:],
		Status: status,
	}
}
