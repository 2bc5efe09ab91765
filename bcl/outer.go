// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bcl

import (
	"math"

	"github.com/aescande/proxsuite/kkt"
	"github.com/aescande/proxsuite/ldlt"
	"github.com/aescande/proxsuite/newton"
	"github.com/aescande/proxsuite/symbolic"
	"github.com/aescande/proxsuite/vecmath"
)

// Solve drives the full BCL outer loop to convergence: symbolic setup
// once, then repeated inner Newton subproblems (package newton) at a fixed
// penalty, each followed by a good/bad step decision that either advances
// the proximal center or tightens the penalties. It returns the
// primal-dual solution and a filled-in Info.
func Solve(p *kkt.Problem, settings Settings) (x, y, z []float64, info Info) {
	n, neq, nin := p.N, p.NEq, p.NIn
	params := DefaultParams()

	full := kkt.AssembleFull(p, params.Rho, params.MuEq, params.MuIn)
	g := symbolic.BuildGraph(full)
	perm, permInv := symbolic.MinimumDegree(g)
	parent := symbolic.EliminationTree(g, perm, permInv)
	counts := symbolic.ColumnCounts(g, perm, permInv, parent)

	// A template factorization of the all-active KKT matrix fixes the
	// worst-case fill pattern once, up front. Every real factorization
	// below is pinned to that same pattern, so a constraint activating
	// from the all-inactive baseline only ever changes values in slots
	// AddRow's rank-2 update already finds reserved — it never needs to
	// grow a column's stored row set.
	template := ldlt.New(counts, parent, perm, permInv)
	fullWg := symbolic.BuildWeightedGraph(full)
	if err := ldlt.Factorize(template, fullWg, nil); err != nil {
		info.Status = PrimalInfeasible
		return make([]float64, n), make([]float64, neq), make([]float64, nin), info
	}
	maxPattern := template.Pattern()

	activeSet := kkt.NewActiveSet(nin)
	factors := ldlt.New(counts, parent, perm, permInv)
	if err := refactorize(factors, p, activeSet, params, maxPattern); err != nil {
		info.Status = PrimalInfeasible
		return make([]float64, n), make([]float64, neq), make([]float64, nin), info
	}

	x = make([]float64, n)
	y = make([]float64, neq)
	z = make([]float64, nin)
	xPrev := make([]float64, n)
	yPrev := make([]float64, neq)
	zPrev := make([]float64, nin)

	etaExt := settings.EtaExtInit
	etaIn := settings.EtaInInit
	consecutiveBad := 0
	info.Status = MaxIterReached

	for outer := 0; outer < settings.MaxIterOuter; outer++ {
		info.IterExt++
		prox := newton.ProxParams{Rho: params.Rho, MuEq: params.MuEq, MuIn: params.MuIn, XPrev: xPrev, YPrev: yPrev, ZPrev: zPrev}

		xBefore := append([]float64(nil), x...)
		yBefore := append([]float64(nil), y...)
		zBefore := append([]float64(nil), z...)

		var rd, req, rup, rlo, rin []float64
		innerTol := math.Max(etaIn, settings.EpsAbs)
		for inner := 0; inner < settings.MaxIterInner; inner++ {
			info.Iter++
			dir := newton.Step(p, factors, activeSet, x, y, z, prox, settings.MaxRefine, settings.RefineTol)
			alpha := newton.LineSearch(p, x, y, z, dir.Dx, dir.Dy, dir.Dz, dir.Status, prox, 1.0)
			vecmath.Axpy(alpha, dir.Dx, x)
			vecmath.Axpy(alpha, dir.Dy, y)
			vecmath.Axpy(alpha, dir.Dz, z)

			rd, req, rup, rlo = newton.Residuals(p, x, y, z, prox)
			rin = newton.CombinedIn(rup, rlo, z, prox.MuIn)
			innerNorm := math.Max(vecmath.NormInf(rd), math.Max(vecmath.NormInf(req), vecmath.NormInf(rin)))

			logInner(settings, outer, inner, innerNorm)
			dwNorm := math.Max(vecmath.NormInf(dir.Dx), math.Max(vecmath.NormInf(dir.Dy), vecmath.NormInf(dir.Dz)))
			if innerNorm < innerTol || (inner > 0 && alpha*dwNorm < 1e-11) {
				break
			}
		}

		priRes := math.Max(vecmath.NormInf(req), vecmath.NormInf(rin))
		duaRes := vecmath.NormInf(rd)
		info.PriRes, info.DuaRes = priRes, duaRes

		if priRes < settings.EpsAbs && duaRes < settings.EpsAbs {
			info.Status = Solved
			logOuter(settings, outer, priRes, duaRes, params, "solved")
			break
		}

		if priRes <= etaExt {
			copy(xPrev, x)
			copy(yPrev, y)
			copy(zPrev, z)
			consecutiveBad = 0

			newRho := math.Max(params.Rho/settings.MuUpdateFactor, settings.MuMin)
			if newRho != params.Rho {
				params.Rho = newRho
				info.RhoUpdates++
				if err := refactorize(factors, p, activeSet, params, maxPattern); err != nil {
					info.Status = PrimalInfeasible
					return x, y, z, info
				}
			}
			etaExt = math.Max(etaExt*math.Pow(params.MuIn, settings.BetaBcl), settings.EpsAbs)
			etaIn = math.Max(etaIn*math.Pow(params.MuIn, settings.AlphaBcl), settings.EpsAbs)
			logOuter(settings, outer, priRes, duaRes, params, "good")
			continue
		}

		logOuter(settings, outer, priRes, duaRes, params, "bad")

		dx := make([]float64, n)
		dy := make([]float64, neq)
		dz := make([]float64, nin)
		vecmath.AddScaled(dx, x, xBefore, -1)
		vecmath.AddScaled(dy, y, yBefore, -1)
		vecmath.AddScaled(dz, z, zBefore, -1)
		if dualInfeasible(p, dx, settings.EpsDualInf) {
			info.Status = DualInfeasible
			break
		}
		if primalInfeasible(p, dy, dz, settings.EpsPrimalInf) {
			info.Status = PrimalInfeasible
			break
		}

		tightenPenalties(factors, activeSet, &params, settings.MuUpdateFactor, settings.MuMin, n, neq, nin)
		info.MuUpdates++
		etaIn = math.Max(etaIn*math.Pow(params.MuIn, settings.AlphaBcl), settings.EpsAbs)

		consecutiveBad++
		if consecutiveBad >= settings.MaxConsecutiveBadSteps {
			coldRestart(&params, xPrev, yPrev, zPrev, x, y, z)
			if err := refactorize(factors, p, activeSet, params, maxPattern); err != nil {
				info.Status = PrimalInfeasible
				return x, y, z, info
			}
			etaExt, etaIn = settings.EtaExtInit, settings.EtaInInit
			consecutiveBad = 0
		}
	}

	if settings.Polish && info.Status == Solved {
		polish(p, factors, activeSet, x, y, z, params, settings)
	}

	info.Rho, info.MuEq, info.MuEqInv = params.Rho, params.MuEq, params.MuEqInv
	info.MuIn, info.MuInInv, info.Nu = params.MuIn, params.MuInInv, params.Nu
	info.ObjValue = objective(p, x)
	return x, y, z, info
}

// refactorize rebuilds factors from scratch against the given rho/mu and
// the current active set, pinned to maxPattern. A rho change touches the
// diagonal of every primal row at once, so a full refactorize is cheaper
// and simpler than n individual rank-1 updates; mu changes are instead
// patched incrementally by setPenalties since they touch only the rows
// already singled out by the active set.
func refactorize(factors *ldlt.Factors, p *kkt.Problem, activeSet *kkt.ActiveSet, params Params, maxPattern [][]int) error {
	wg := symbolic.BuildWeightedGraph(kkt.Assemble(p, activeSet.Snapshot(), params.Rho, params.MuEq, params.MuIn))
	return ldlt.Factorize(factors, wg, maxPattern)
}

func logOuter(settings Settings, outer int, priRes, duaRes float64, params Params, decision string) {
	if !settings.Verbose || settings.Logger == nil {
		return
	}
	settings.Logger.Debug("bcl outer iteration",
		"iter", outer, "pri_res", priRes, "dua_res", duaRes,
		"rho", params.Rho, "mu_eq", params.MuEq, "mu_in", params.MuIn, "decision", decision)
}

func logInner(settings Settings, outer, inner int, innerNorm float64) {
	if !settings.Verbose || settings.Logger == nil {
		return
	}
	settings.Logger.Debug("newton inner iteration", "outer", outer, "iter", inner, "inner_norm", innerNorm)
}

func objective(p *kkt.Problem, x []float64) float64 {
	hx := make([]float64, p.N)
	p.H.SymUpperMulAdd(x, hx)
	return 0.5*vecmath.Dot(x, hx) + vecmath.Dot(p.G, x)
}

// tightenPenalties shrinks mu_eq and mu_in by factor (raising precision
// after a bad step) and refits the factorization's diagonal via Rank1Update
// rather than a full refactorize, one call per affected row: alpha is the
// row's new diagonal contribution minus its old one.
func tightenPenalties(factors *ldlt.Factors, activeSet *kkt.ActiveSet, params *Params, factor, muMin float64, n, neq, nin int) {
	setPenalties(factors, activeSet, params, math.Max(params.MuEq/factor, muMin), math.Max(params.MuIn/factor, muMin), n, neq, nin)
}

// setPenalties refits the factorization's diagonal to move mu_eq/mu_in to
// the given target values (K's diagonal convention is −1/mu) and records
// them on params.
func setPenalties(factors *ldlt.Factors, activeSet *kkt.ActiveSet, params *Params, newMuEq, newMuIn float64, n, neq, nin int) {
	for i := 0; i < neq; i++ {
		k := n + i
		delta := (-1 / newMuEq) - (-1 / params.MuEq)
		applyDiagDelta(factors, k, delta)
	}
	for i := 0; i < nin; i++ {
		if !activeSet.IsActive(i) {
			continue
		}
		k := n + neq + i
		delta := (-1 / newMuIn) - (-1 / params.MuIn)
		applyDiagDelta(factors, k, delta)
	}

	params.MuEq, params.MuEqInv = newMuEq, 1/newMuEq
	params.MuIn, params.MuInInv = newMuIn, 1/newMuIn
}

func applyDiagDelta(factors *ldlt.Factors, k int, delta float64) {
	n := factors.N()
	w := make([]float64, n)
	w[factors.PermInv[k]] = 1
	ldlt.Rank1Update(factors, w, delta)
}

// coldRestart resets the proximal center to the current iterate and the
// penalty parameters back to their defaults. Rho and mu both move here, so
// the caller refactorizes from scratch afterward rather than patching the
// factorization's diagonal incrementally. Used when repeated bad steps
// suggest the penalty schedule has wandered somewhere it cannot recover
// from on its own.
func coldRestart(params *Params, xPrev, yPrev, zPrev, x, y, z []float64) {
	copy(xPrev, x)
	copy(yPrev, y)
	copy(zPrev, z)
	defaults := DefaultParams()
	params.Rho = defaults.Rho
	params.MuEq, params.MuEqInv = defaults.MuEq, defaults.MuEqInv
	params.MuIn, params.MuInInv = defaults.MuIn, defaults.MuInInv
}

// polish takes three further Newton steps (each with its line search) on
// the final active set, with rho reduced by a factor of 1e-3 and the
// proximal center pinned at the converged point. It applies no
// convergence test of its own.
func polish(p *kkt.Problem, factors *ldlt.Factors, activeSet *kkt.ActiveSet, x, y, z []float64, params Params, settings Settings) {
	prox := newton.ProxParams{Rho: params.Rho * 1e-3, MuEq: params.MuEq, MuIn: params.MuIn, XPrev: x, YPrev: y, ZPrev: z}
	for i := 0; i < 3; i++ {
		dir := newton.Step(p, factors, activeSet, x, y, z, prox, settings.MaxRefine, settings.RefineTol)
		alpha := newton.LineSearch(p, x, y, z, dir.Dx, dir.Dy, dir.Dz, dir.Status, prox, 1.0)
		vecmath.Axpy(alpha, dir.Dx, x)
		vecmath.Axpy(alpha, dir.Dy, y)
		vecmath.Axpy(alpha, dir.Dz, z)
	}
}
