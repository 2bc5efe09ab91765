// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proxqp

import "github.com/aescande/proxsuite/bcl"

// Status is the outer-loop termination status, re-exported from package
// bcl so callers never need to import it directly.
type Status = bcl.Status

const (
	Running          = bcl.Running
	Solved           = bcl.Solved
	MaxIterReached   = bcl.MaxIterReached
	PrimalInfeasible = bcl.PrimalInfeasible
	DualInfeasible   = bcl.DualInfeasible
)

// Info is the solver's diagnostic snapshot, re-exported from package bcl.
type Info = bcl.Info

// Results holds the primal-dual solution and the Info describing how the
// solve reached it, including a three-tier reset:
//
//   - Cleanup zeros x, y, z and the whole Info.
//   - ColdStart resets only the penalty parameters (to the given values,
//     or the defaults if none given) and the statistics.
//   - CleanupStatistics resets only the iteration counters, the objective
//     and residual readouts, and the status; no timings are recorded.
type Results struct {
	X    []float64
	Y    []float64
	Z    []float64
	Info Info
}

// NewResults allocates a zeroed Results for a problem of the given size.
func NewResults(n, neq, nin int) *Results {
	return &Results{X: make([]float64, n), Y: make([]float64, neq), Z: make([]float64, nin)}
}

// Cleanup zeros the solution vectors and the entire Info.
func (r *Results) Cleanup() {
	zero(r.X)
	zero(r.Y)
	zero(r.Z)
	r.Info = Info{}
}

// CleanupStatistics resets the iteration counters and residual/objective
// readouts, leaving the penalty parameters and the solution untouched.
func (r *Results) CleanupStatistics() {
	r.Info.Iter = 0
	r.Info.IterExt = 0
	r.Info.MuUpdates = 0
	r.Info.RhoUpdates = 0
	r.Info.ObjValue = 0
	r.Info.PriRes = 0
	r.Info.DuaRes = 0
	r.Info.Status = Running
}

// ColdStart resets the penalty parameters to the given values (or
// bcl.DefaultParams' values, if rho/muEq/muIn are all zero) and clears the
// statistics, but leaves the current solution in place as a warm start.
func (r *Results) ColdStart(rho, muEq, muIn float64) {
	if rho == 0 && muEq == 0 && muIn == 0 {
		d := bcl.DefaultParams()
		rho, muEq, muIn = d.Rho, d.MuEq, d.MuIn
	}
	r.Info.Rho = rho
	r.Info.MuEq = muEq
	r.Info.MuEqInv = 1 / muEq
	r.Info.MuIn = muIn
	r.Info.MuInInv = 1 / muIn
	r.CleanupStatistics()
}

func zero(v []float64) {
	for i := range v {
		v[i] = 0
	}
}
