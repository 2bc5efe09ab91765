// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ldlt

// RowUpdate refits f in place for a change confined to a single row/column
// permK of the matrix it factors, all indices already given in permuted
// factorization order: the coupling entries K(i,permK)=K(permK,i) change by
// deltaCoupling[i] (i != permK, deltaCoupling[permK] ignored) and the
// diagonal K(permK,permK) moves from dOld to dNew. This is the operation
// AddRow and DeleteRow both reduce to, reformulated as an exact rank-2
// decomposition of the perturbation: writing s = deltaCoupling+eₖ and
// t = deltaCoupling−eₖ,
//
//	ΔK = deltaCoupling·eₖᵀ + eₖ·deltaCouplingᵀ + (dNew−dOld)·eₖeₖᵀ
//	   = ½ s sᵀ − ½ t tᵀ + (dNew−dOld) eₖeₖᵀ
//
// which three Rank1Update calls apply exactly, in the same way whichever
// direction the row is moving. Rank1Update never introduces a stored slot
// that doesn't already exist in f's pattern, so this only produces a
// correct L·D·Lᵀ when every row a coupling change might touch already has
// a reserved slot — callers must factorize against the maximal active-set
// pattern (see bcl's setup) before the first AddRow, not just the current
// one. Both wrappers below assume the KKT assembly invariant that an
// inactive constraint's row/column is the identity row: K(k,k)=1 and no
// off-diagonal coupling.
func RowUpdate(f *Factors, permK int, deltaCoupling []float64, dOld, dNew float64) {
	n := f.N()
	s := make([]float64, n)
	t := make([]float64, n)
	copy(s, deltaCoupling)
	copy(t, deltaCoupling)
	s[permK] = 1
	t[permK] = -1

	Rank1Update(f, s, 0.5)
	Rank1Update(f, t, -0.5)

	ek := make([]float64, n)
	ek[permK] = 1
	Rank1Update(f, ek, dNew-dOld)
}

// permuteVec scatters src, given in the matrix's natural (unpermuted)
// index space, into factorization order via f.PermInv (PermInv[natural] =
// permuted position — the same convention package symbolic hands back and
// bcl's own diagonal-only updates already rely on).
func permuteVec(f *Factors, src []float64) []float64 {
	dst := make([]float64, f.N())
	for i, v := range src {
		if v != 0 {
			dst[f.PermInv[i]] = v
		}
	}
	return dst
}

// AddRow activates row/column k (given in natural, unpermuted index space,
// matching kkt.Index/kkt.Coupling): coupling grows from the inert identity
// row to newCoupling, and the diagonal moves from 1 to dNew (e.g. −1/μ_in
// for a newly active inequality constraint).
func AddRow(f *Factors, k int, newCoupling []float64, dNew float64) {
	RowUpdate(f, f.PermInv[k], permuteVec(f, newCoupling), 1, dNew)
}

// DeleteRow deactivates row/column k (natural index space): coupling
// collapses to zero and the diagonal moves from dOld back to the inert
// value 1. oldCoupling is the coupling row/column being removed, read
// before this call.
func DeleteRow(f *Factors, k int, oldCoupling []float64, dOld float64) {
	permK := f.PermInv[k]
	delta := permuteVec(f, oldCoupling)
	for i := range delta {
		delta[i] = -delta[i]
	}
	RowUpdate(f, permK, delta, dOld, 1)

	// The rank-2 correction above already drives every stored entry
	// touching row/column permK to (numerically) zero and its diagonal to
	// 1; pin the diagonal exactly so roundoff cannot accumulate across
	// repeated activate/deactivate cycles. The pattern itself — which rows
	// have a reserved slot at all — is never touched here: shrinking it
	// would defeat the maximal pattern AddRow depends on to reactivate the
	// same constraint later without introducing new fill.
	f.SetD(permK, 1)
}
