// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package newton

import (
	"slices"
	"sort"

	"github.com/aescande/proxsuite/kkt"
	"github.com/aescande/proxsuite/vecmath"
)

// LineSearch finds the step length in [0, maxAlpha] minimizing the merit
// function phi(alpha) = ||r_eq||^2 + ||r_d||^2 + sum over active
// constraints of their one-sided residual squared, along (dx, dy, dz).
// status is the active-set proposal Step computed alongside this
// direction and is held fixed for every alpha: no constraint changes side
// or activity as alpha varies, so phi is a single quadratic in alpha. The
// points where a constraint's upper or lower residual crosses zero only
// split [0, maxAlpha] into intervals; r_d, r_eq and the active box terms
// are affine in alpha, and on each interval phi's minimizer is found
// analytically rather than by sampling only the breakpoints themselves.
func LineSearch(p *kkt.Problem, x, y, z, dx, dy, dz []float64, status []Status, prox ProxParams, maxAlpha float64) float64 {
	if p.NIn == 0 {
		return maxAlpha
	}

	rup0, rlo0 := boxResiduals(p, x, z, prox.MuIn)
	cdx := kkt.InValue(p, dx)

	breakpoints := []float64{0, maxAlpha}
	for i := 0; i < p.NIn; i++ {
		if cdx[i] == 0 {
			continue
		}
		for _, r := range [2]float64{rup0[i], rlo0[i]} {
			a := -r / cdx[i]
			if a > 0 && a < maxAlpha {
				breakpoints = append(breakpoints, a)
			}
		}
	}
	sort.Float64s(breakpoints)
	breakpoints = slices.Compact(breakpoints)

	merit := func(alpha float64) float64 { return meritAt(p, x, y, z, dx, dy, dz, status, alpha, prox) }

	bestAlpha, bestVal := 0.0, merit(0)
	consider := func(a float64) {
		v := merit(a)
		if v < bestVal {
			bestVal, bestAlpha = v, a
		}
	}
	for i, a := range breakpoints {
		consider(a)
		if i+1 == len(breakpoints) {
			break
		}
		a0, a1 := a, breakpoints[i+1]
		if a1 <= a0 {
			continue
		}
		if vertex, ok := quadraticVertex(a0, a1, merit); ok {
			consider(vertex)
		}
	}
	return bestAlpha
}

// quadraticVertex fits the exact quadratic through f at a0, the midpoint,
// and a1, and returns its vertex if that vertex is a minimum and falls
// strictly inside (a0, a1).
func quadraticVertex(a0, a1 float64, f func(float64) float64) (float64, bool) {
	mid := 0.5 * (a0 + a1)
	f0, fm, f1 := f(a0), f(mid), f(a1)

	// Quadratic through (a0,f0), (mid,fm), (a1,f1) via finite differences
	// on a symmetric stencil of half-width h = (a1-a0)/2.
	h := 0.5 * (a1 - a0)
	a := (f0 - 2*fm + f1) / (2 * h * h)
	if a <= 0 {
		return 0, false
	}
	b := (f1 - f0) / (2 * h)
	vertex := mid - b/(2*a)
	if vertex <= a0 || vertex >= a1 {
		return 0, false
	}
	return vertex, true
}

// meritAt evaluates phi at (x,y,z)+alpha*(dx,dy,dz): the dual and equality
// residuals contribute in full, but the inequality side contributes only
// through the residual its status names — an active-up row through r_up,
// an active-lo row through r_lo, and an inactive row not at all, per the
// "active-primal-in" wording the merit function is built from.
func meritAt(p *kkt.Problem, x, y, z, dx, dy, dz []float64, status []Status, alpha float64, prox ProxParams) float64 {
	xa := pointAt(x, dx, alpha)
	ya := pointAt(y, dy, alpha)
	za := pointAt(z, dz, alpha)
	rd, req, rup, rlo := Residuals(p, xa, ya, za, prox)

	sum := vecmath.Dot(rd, rd) + vecmath.Dot(req, req)
	for i, s := range status {
		switch s {
		case AtUpper:
			sum += rup[i] * rup[i]
		case AtLower:
			sum += rlo[i] * rlo[i]
		}
	}
	return sum
}

func pointAt(base, dir []float64, alpha float64) []float64 {
	out := make([]float64, len(base))
	for i := range out {
		out[i] = base[i] + alpha*dir[i]
	}
	return out
}
