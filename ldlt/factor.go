// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ldlt

import (
	"fmt"
	"sort"

	"github.com/aescande/proxsuite/symbolic"
)

// Factorize runs a left-looking numeric LDLᵀ factorization of the currently
// active K (its full symmetric structure carried in g, in the ORIGINAL,
// unpermuted node numbering) into the pre-allocated f.
//
// The permutation and elimination tree carried in f are fixed at setup and
// are not recomputed here — Factorize only ever refits values against them.
//
// fixedRows, when non-nil, pins each column's stored row set to
// fixedRows[j] instead of deriving it from which rows this pass actually
// touched. A row absent from the current active set still ends up with a
// stored value of exactly zero (w is only ever added to, never assumed
// nonzero), so pinning the maximal pattern up front costs nothing
// numerically — it only reserves the slots AddRow/DeleteRow need later to
// turn those zero entries into real coupling without changing structure.
func Factorize(f *Factors, g *symbolic.WeightedGraph, fixedRows [][]int) error {
	n := f.N()
	rowToCols := make([][]int, n)
	w := make([]float64, n)
	inW := make([]bool, n)
	touched := make([]int, 0, n)

	reset := func() {
		for _, i := range touched {
			w[i] = 0
			inW[i] = false
		}
		touched = touched[:0]
	}
	touch := func(i int, v float64) {
		if !inW[i] {
			inW[i] = true
			touched = append(touched, i)
		}
		w[i] += v
	}

	for j := 0; j < n; j++ {
		reset()
		orig := f.Perm[j]
		touch(j, g.Diag[orig])
		for k, nb := range g.Adj[orig] {
			i := f.PermInv[nb]
			if i > j {
				touch(i, g.Val[orig][k])
			}
		}

		for _, k := range rowToCols[j] {
			rows := f.OffDiagRows(k)
			vals := f.OffDiagValues(k)
			var ljk, dk float64
			for idx, i := range rows {
				if i == j {
					ljk = vals[idx]
					break
				}
			}
			dk = f.D(k)
			factor := ljk * dk
			if factor == 0 {
				continue
			}
			for idx, i := range rows {
				if i < j {
					continue
				}
				touch(i, -vals[idx]*factor)
			}
		}

		d := w[j]
		if d == 0 {
			return &FactorizationError{Column: j, Reason: "zero pivot"}
		}
		f.SetD(j, d)

		var rows []int
		if fixedRows != nil {
			rows = fixedRows[j]
		} else {
			rows = make([]int, 0, len(touched))
			for _, i := range touched {
				if i > j {
					rows = append(rows, i)
				}
			}
			sort.Ints(rows)
		}
		f.LD.SetNNZ(j, 1+len(rows))
		start := f.LD.ColStart(j)
		for idx, i := range rows {
			f.LD.RowIdx[start+1+idx] = i
			f.LD.Values[start+1+idx] = w[i] / d
			rowToCols[i] = append(rowToCols[i], j)
		}
	}
	return nil
}

// FactorizationError reports a breakdown of the numeric factorization: a
// structurally expected pivot came out exactly zero.
type FactorizationError struct {
	Column int
	Reason string
}

func (e *FactorizationError) Error() string {
	return fmt.Sprintf("ldlt: factorization breakdown at column %d: %s", e.Column, e.Reason)
}
