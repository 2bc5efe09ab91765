// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package proxqp is the public entry point: it wires package csc's storage,
// package symbolic's ordering, package ldlt's incremental factorization,
// package precond's equilibration, package newton's inner solver and
// package bcl's outer loop into a Problem/Settings/Solver/Results
// composition.
package proxqp

import "log/slog"

// Settings configures a Solver. There is no file or environment-variable
// configuration surface — callers construct Settings directly, typically
// starting from DefaultSettings.
type Settings struct {
	EpsAbs         float64
	EpsRel         float64
	MaxIterOuter   int
	MaxIterInner   int
	MaxRefine      int
	RefineTol      float64
	MuUpdateFactor float64
	MuMin          float64
	Polish         bool

	// EpsPrimalInf and EpsDualInf gate the direction-norm infeasibility
	// certificates the outer loop tests on every iteration that fails to
	// make progress: a candidate primal-infeasibility direction dy (dual
	// certificate) or dual-infeasibility direction dx (primal certificate)
	// whose implied residual shrinks below these thresholds while its own
	// norm stays bounded away from zero reports the problem infeasible
	// rather than exhausting MaxIterOuter.
	EpsPrimalInf float64
	EpsDualInf   float64

	// EtaExtInit and EtaInInit seed the outer/inner convergence tolerance
	// schedule; AlphaBcl and BetaBcl are the exponents that tighten it as
	// mu_in shrinks. MaxConsecutiveBadSteps bounds how many outer
	// iterations may fail to improve the primal residual before the loop
	// cold-restarts its penalty schedule.
	EtaExtInit             float64
	EtaInInit              float64
	AlphaBcl               float64
	BetaBcl                float64
	MaxConsecutiveBadSteps int

	Equilibrate bool

	// Verbose, when true and Logger is non-nil, emits one slog.Debug
	// record per outer iteration and one per inner iteration. When false,
	// no logging call is made at all — not even at a disabled level.
	Verbose bool
	Logger  *slog.Logger
}

// DefaultSettings returns the same tolerances and penalty schedule package
// bcl defaults to, with equilibration and polishing on and logging off.
func DefaultSettings() Settings {
	return Settings{
		EpsAbs:                 1e-9,
		EpsRel:                 1e-9,
		MaxIterOuter:           100,
		MaxIterInner:           50,
		MaxRefine:              5,
		RefineTol:              1e-12,
		MuUpdateFactor:         10,
		MuMin:                  1e-9,
		Polish:                 true,
		EpsPrimalInf:           1e-4,
		EpsDualInf:             1e-4,
		EtaExtInit:             1e-1,
		EtaInInit:              1e-1,
		AlphaBcl:               0.1,
		BetaBcl:                0.9,
		MaxConsecutiveBadSteps: 5,
		Equilibrate:            true,
		Verbose:                false,
	}
}
