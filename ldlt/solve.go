// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ldlt

import "github.com/aescande/proxsuite/vecmath"

// SolveInPlace overwrites x (in the original, unpermuted ordering) with the
// solution of K x = b for b = x on entry: permute into factorization order,
// unit-lower forward solve, diagonal solve, unit-lower transpose backward
// solve, permute back.
func (f *Factors) SolveInPlace(x []float64) {
	n := f.N()
	bp := make([]float64, n)
	for k := 0; k < n; k++ {
		bp[k] = x[f.Perm[k]]
	}

	for j := 0; j < n; j++ {
		zj := bp[j]
		if zj == 0 {
			continue
		}
		rows := f.OffDiagRows(j)
		vals := f.OffDiagValues(j)
		for idx, i := range rows {
			bp[i] -= vals[idx] * zj
		}
	}

	for j := 0; j < n; j++ {
		bp[j] /= f.D(j)
	}

	for j := n - 1; j >= 0; j-- {
		rows := f.OffDiagRows(j)
		vals := f.OffDiagValues(j)
		sum := 0.0
		for idx, i := range rows {
			sum += vals[idx] * bp[i]
		}
		bp[j] -= sum
	}

	for k := 0; k < n; k++ {
		x[f.Perm[k]] = bp[k]
	}
}

// MatVec accumulates out += K*x for the full (unpermuted) matrix the
// factorization approximates. Solve callers supply this from the current
// KKT assembly so refinement measures the true residual, not the
// factorization's own (possibly stale) view of K.
type MatVec func(x, out []float64)

// Solve solves K x = rhs by triangular substitution followed by a bounded
// number of iterative-refinement passes, each computing the true residual
// via matvec and correcting only while the residual's infinity norm keeps
// shrinking.
func Solve(f *Factors, rhs []float64, matvec MatVec, maxRefine int, tol float64) []float64 {
	n := len(rhs)
	x := make([]float64, n)
	vecmath.Copy(x, rhs)
	f.SolveInPlace(x)

	res := make([]float64, n)
	prevNorm := -1.0
	for it := 0; it < maxRefine; it++ {
		vecmath.Zero(res)
		matvec(x, res)
		for i := 0; i < n; i++ {
			res[i] = rhs[i] - res[i]
		}
		norm := vecmath.NormInf(res)
		if norm <= tol {
			break
		}
		if prevNorm >= 0 && norm >= prevNorm {
			break
		}
		prevNorm = norm
		f.SolveInPlace(res)
		vecmath.Axpy(1, res, x)
	}
	return x
}
