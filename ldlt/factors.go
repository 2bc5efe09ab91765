// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ldlt implements the incremental sparse LDLᵀ factorization of the
// KKT saddle-point matrix: left-looking numeric factorization, rank-1
// update, add-row/delete-row edits keyed to active-set transitions, and a
// triangular solve with iterative refinement.
package ldlt

import "github.com/aescande/proxsuite/csc"

// Factors holds the LDLᵀ factorization of a permuted symmetric matrix. The
// diagonal D and the unit-lower-triangular L are packed into a single
// uncompressed matrix LD: column j's first stored row (row j itself) holds
// D[j]; the remaining rows i>j hold L[i,j]. Etree gives each column's
// parent in the elimination tree (-1 for a root); Perm/PermInv map the
// natural KKT ordering to the factorization ordering and back.
type Factors struct {
	LD      *csc.Matrix
	Etree   []int
	Perm    []int
	PermInv []int
}

// New allocates a factorization with the given per-column capacities, sized
// once at setup and never reallocated. Every column starts with nnz 1 (only
// the diagonal slot reserved for D).
func New(colCap []int, etree, perm, permInv []int) *Factors {
	n := len(colCap)
	colPtr := csc_prefixSum(colCap)
	nnzPerCol := make([]int, n)
	for j := range nnzPerCol {
		nnzPerCol[j] = 1
	}
	rowIdx := make([]int, colPtr[n])
	values := make([]float64, colPtr[n])
	for j := 0; j < n; j++ {
		rowIdx[colPtr[j]] = j
	}
	ld := csc.NewUncompressed(n, n, colPtr, nnzPerCol, rowIdx, values)
	return &Factors{LD: ld, Etree: append([]int(nil), etree...), Perm: perm, PermInv: permInv}
}

func csc_prefixSum(counts []int) []int {
	ptr := make([]int, len(counts)+1)
	for j, c := range counts {
		ptr[j+1] = ptr[j] + c
	}
	return ptr
}

// N returns the factorization order.
func (f *Factors) N() int { return f.LD.Nrows }

// D returns the diagonal entry of permuted column j.
func (f *Factors) D(j int) float64 { return f.LD.Values[f.LD.ColStart(j)] }

// SetD sets the diagonal entry of permuted column j.
func (f *Factors) SetD(j int, v float64) { f.LD.Values[f.LD.ColStart(j)] = v }

// OffDiagRows returns the row indices below the diagonal currently stored
// in permuted column j (i.e. the support of L[:,j]).
func (f *Factors) OffDiagRows(j int) []int {
	start := f.LD.ColStart(j)
	end := f.LD.ColEnd(j)
	return f.LD.RowIdx[start+1 : end]
}

// OffDiagValues returns L[:,j]'s stored values, parallel to OffDiagRows.
func (f *Factors) OffDiagValues(j int) []float64 {
	start := f.LD.ColStart(j)
	end := f.LD.ColEnd(j)
	return f.LD.Values[start+1 : end]
}

// Pattern snapshots every column's currently stored row indices (permuted
// order). Used to carry a maximal fill pattern from a template
// factorization into later factorizations that must not change structure.
func (f *Factors) Pattern() [][]int {
	n := f.N()
	out := make([][]int, n)
	for j := 0; j < n; j++ {
		out[j] = append([]int(nil), f.OffDiagRows(j)...)
	}
	return out
}

// Reconstruct multiplies out L*D*Lᵀ explicitly (permuted order), for tests
// verifying the factorization identity. Expensive: intended for small test
// matrices only.
func (f *Factors) Reconstruct() [][]float64 {
	n := f.N()
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, n)
	}
	for j := 0; j < n; j++ {
		d := f.D(j)
		out[j][j] += d
		rows := f.OffDiagRows(j)
		vals := f.OffDiagValues(j)
		for k, i := range rows {
			lij := vals[k]
			out[i][j] += lij * d
			out[j][i] += lij * d
			for k2, i2 := range rows {
				if i2 < i {
					continue
				}
				out[i][i2] += lij * d * vals[k2]
				if i2 != i {
					out[i2][i] += lij * d * vals[k2]
				}
			}
		}
	}
	return out
}
