// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ldlt

// Rank1Update refits f in place to K' = K + alpha·w·wᵀ, where w is given
// densely in permuted-factorization order. It is the classical
// Gill-Golub-Murray-Saunders sequential update adapted to LDLᵀ: no square
// root is needed since D carries the diagonal directly, so the same
// recurrence handles both signs of alpha (an indefinite update or downdate)
// without branching — a property the BCL outer loop's mu-parameter changes
// (one call per changed diagonal with w a unit basis vector) and the
// internal calls from AddRow/DeleteRow both rely on.
//
// Rank1Update never introduces new fill: it only ever touches rows already
// present in the affected columns' stored pattern. Callers must establish
// that pattern beforehand — see RowUpdate's doc comment.
func Rank1Update(f *Factors, w []float64, alpha float64) {
	n := f.N()
	start := -1
	for i := 0; i < n; i++ {
		if w[i] != 0 {
			start = i
			break
		}
	}
	if start == -1 {
		return
	}

	v := make([]float64, n)
	copy(v, w)
	p := alpha

	for j := start; j < n; j++ {
		wj := v[j]
		if wj == 0 && p == 0 {
			continue
		}
		d := f.D(j)
		dNew := d + p*wj*wj
		gamma := p * wj / dNew
		pNext := d * p / dNew
		f.SetD(j, dNew)

		rows := f.OffDiagRows(j)
		vals := f.OffDiagValues(j)
		for idx, i := range rows {
			v[i] -= wj * vals[idx]
			vals[idx] += gamma * v[i]
		}
		p = pNext
	}
}
