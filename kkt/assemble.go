// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kkt

import "github.com/aescande/proxsuite/csc"

// AssembleFull builds K with every inequality constraint marked active,
// the worst-case structural pattern package symbolic orders once at setup
// and package ldlt sizes its column capacities from: capacities fixed
// here are never exceeded later, since deactivating a constraint only
// removes coupling, never adds it.
func AssembleFull(p *Problem, rho, muEq, muIn float64) *csc.Matrix {
	all := make([]bool, p.NIn)
	for i := range all {
		all[i] = true
	}
	return Assemble(p, all, rho, muEq, muIn)
}

// Assemble builds K reflecting the given active set: the primal block
// carries H plus rho on every diagonal entry (the proximal shift that
// keeps a PSD-but-singular H's pivots away from zero, matching the
// −1/μ convention below); for i inactive, its column carries no coupling
// and a +1 diagonal (an inert identity row); for i active, its column
// carries Ct's column i and a −1/μ_in diagonal. The extra (j, rho) entry
// appended to each primal column sums with whatever diagonal H already
// stores there (symbolic.BuildWeightedGraph accumulates repeated (i,i)
// entries within a column rather than overwriting), so this is safe
// whether or not H itself carries an explicit diagonal.
func Assemble(p *Problem, active []bool, rho, muEq, muIn float64) *csc.Matrix {
	n, neq, nin := p.N, p.NEq, p.NIn
	ntot := n + neq + nin

	colPtr := make([]int, ntot+1)
	var rowIdx []int
	var values []float64

	for j := 0; j < n; j++ {
		colPtr[j] = len(rowIdx)
		rowIdx = append(rowIdx, p.H.RowIndices(j)...)
		values = append(values, p.H.ColValues(j)...)
		rowIdx = append(rowIdx, j)
		values = append(values, rho)
	}
	for j := 0; j < neq; j++ {
		colPtr[n+j] = len(rowIdx)
		rowIdx = append(rowIdx, p.At.RowIndices(j)...)
		values = append(values, p.At.ColValues(j)...)
		rowIdx = append(rowIdx, n+j)
		values = append(values, -1/muEq)
	}
	for i := 0; i < nin; i++ {
		col := n + neq + i
		colPtr[col] = len(rowIdx)
		if active[i] {
			rowIdx = append(rowIdx, p.Ct.RowIndices(i)...)
			values = append(values, p.Ct.ColValues(i)...)
			rowIdx = append(rowIdx, col)
			values = append(values, -1/muIn)
		} else {
			rowIdx = append(rowIdx, col)
			values = append(values, 1)
		}
	}
	colPtr[ntot] = len(rowIdx)

	return csc.NewCompressed(ntot, ntot, colPtr, rowIdx, values)
}

// Coupling builds constraint i's off-diagonal column of K, in the full
// [0,ntot) row space, from column i of p.Ct — the deltaCoupling
// vector ldlt.AddRow/DeleteRow need when a constraint flips state.
func Coupling(p *Problem, i int) []float64 {
	ntot := p.N + p.NEq + p.NIn
	v := make([]float64, ntot)
	rows := p.Ct.RowIndices(i)
	vals := p.Ct.ColValues(i)
	for k, r := range rows {
		v[r] = vals[k]
	}
	return v
}

// Index returns constraint i's fixed row/column position in K.
func Index(p *Problem, i int) int { return p.N + p.NEq + i }
