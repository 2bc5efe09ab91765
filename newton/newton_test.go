// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package newton

import (
	"testing"

	"github.com/aescande/proxsuite/csc"
	"github.com/aescande/proxsuite/kkt"
	"github.com/stretchr/testify/require"
)

func boxProblem() *kkt.Problem {
	// minimize x^2 (H = 2), no equalities, -1 <= x <= 1.
	h := csc.NewCompressed(1, 1, []int{0, 1}, []int{0}, []float64{2})
	at := csc.NewCompressed(1, 0, []int{0}, nil, nil)
	ct := csc.NewCompressed(1, 1, []int{0, 1}, []int{0}, []float64{1})
	return &kkt.Problem{
		N: 1, NEq: 0, NIn: 1,
		H: h, At: at, Ct: ct,
		G: []float64{0}, B: []float64{},
		L: []float64{-1}, U: []float64{1},
	}
}

func TestProposeInactiveWhenInsideBox(t *testing.T) {
	p := boxProblem()
	rup, rlo := boxResiduals(p, []float64{0.5}, []float64{0}, 0.1)
	status := Propose(rup, rlo)
	require.Equal(t, Inactive, status[0])
}

func TestProposeAtUpperWhenOutsideBox(t *testing.T) {
	p := boxProblem()
	rup, rlo := boxResiduals(p, []float64{5}, []float64{0}, 0.1)
	status := Propose(rup, rlo)
	require.Equal(t, AtUpper, status[0])
}

func TestLineSearchStaysWithinBounds(t *testing.T) {
	p := boxProblem()
	prox := ProxParams{Rho: 1e-6, MuEq: 1e-3, MuIn: 1e-1, XPrev: []float64{0}, YPrev: []float64{}, ZPrev: []float64{0}}
	status := []Status{Inactive}
	alpha := LineSearch(p, []float64{0}, []float64{}, []float64{0}, []float64{2}, []float64{}, []float64{0}, status, prox, 1.0)
	require.GreaterOrEqual(t, alpha, 0.0)
	require.LessOrEqual(t, alpha, 1.0)
}
