// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bcl implements the Bertsekas-style constrained-Lagrangian outer
// loop: it holds the proximal penalty parameters (rho, mu_eq, mu_in) fixed
// while package newton drives one subproblem to convergence, then judges
// the step, updates the proximal center and penalties, and repeats — with
// a final polishing pass once the outer loop has converged.
package bcl

import "log/slog"

// Params holds the proximal penalty parameters the outer loop adapts.
type Params struct {
	Rho     float64
	MuEq    float64
	MuEqInv float64
	MuIn    float64
	MuInInv float64
	Nu      float64
}

// DefaultParams returns ProxSuite's own initial penalty values.
func DefaultParams() Params {
	return Params{
		Rho:     1e-6,
		MuEq:    1e-3,
		MuEqInv: 1e3,
		MuIn:    1e-1,
		MuInInv: 1e1,
		Nu:      1.0,
	}
}

// Settings controls the outer loop's stopping criteria and adaptation
// schedule.
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
	// certificates the outer loop checks whenever a step fails to reduce
	// the primal or dual residual.
	EpsPrimalInf float64
	EpsDualInf   float64

	// EtaExtInit and EtaInInit seed the outer and inner convergence
	// tolerances the loop tightens as mu_in shrinks; AlphaBcl and BetaBcl
	// are the exponents that schedule that tightening
	// (eta_in ← eta_in·mu_in^AlphaBcl on every good or bad step, eta_ext ←
	// eta_ext·mu_in^BetaBcl on a good one). Both eta values are floored at
	// EpsAbs.
	EtaExtInit float64
	EtaInInit  float64
	AlphaBcl   float64
	BetaBcl    float64

	// MaxConsecutiveBadSteps bounds how many outer iterations in a row may
	// fail to improve the primal residual before the loop cold-restarts:
	// the proximal center resets to the current iterate and rho/mu return
	// to their defaults, escaping a penalty schedule that has wandered too
	// far to make progress.
	MaxConsecutiveBadSteps int

	// Verbose, when true and Logger is non-nil, emits one slog.Debug
	// record per outer iteration and one per inner iteration. When false,
	// no logging call is made at all — not even at a disabled level.
	Verbose bool
	Logger  *slog.Logger
}

// DefaultSettings returns the outer loop's own struct-of-knobs defaults.
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
	}
}
