// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bcl

// Status reports why the outer loop stopped.
type Status int

const (
	Running Status = iota
	Solved
	MaxIterReached
	PrimalInfeasible
	DualInfeasible
)

func (s Status) String() string {
	switch s {
	case Solved:
		return "solved"
	case MaxIterReached:
		return "max iterations reached"
	case PrimalInfeasible:
		return "primal infeasible"
	case DualInfeasible:
		return "dual infeasible"
	default:
		return "running"
	}
}

// Info reports the solver's diagnostic snapshot: the penalty parameters
// and their cached inverses, iteration counters split between inner and
// outer loops, the number of penalty adaptations, and the residual norms
// at the solution.
type Info struct {
	Rho        float64
	MuEq       float64
	MuEqInv    float64
	MuIn       float64
	MuInInv    float64
	Nu         float64
	Iter       int
	IterExt    int
	MuUpdates  int
	RhoUpdates int
	Status     Status
	ObjValue   float64
	PriRes     float64
	DuaRes     float64
}
