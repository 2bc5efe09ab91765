// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package csc implements the compressed-sparse-column storage this solver
// builds every other component on: problem matrices, the KKT matrix and its
// LDLᵀ factors. Columns carry a fixed allocated capacity and a variable
// current non-zero count, so a column can grow (an inequality becoming
// active, a fill-in entry appearing during factorization) without
// reallocating the backing arrays. The slack between the current count and
// the capacity is reserved and left untouched.
package csc

import "sort"

// Matrix is a compressed-sparse-column matrix. Column j occupies row
// indices and values at [ColPtr[j], ColPtr[j]+NnzPerCol[j]); the remaining
// slack up to ColPtr[j+1] is unused capacity. When NnzPerCol is nil the
// matrix is "compressed": every column's current count equals its capacity,
// derived from ColPtr deltas.
type Matrix struct {
	Nrows, Ncols int
	ColPtr       []int // length Ncols+1
	NnzPerCol    []int // length Ncols, or nil if compressed
	RowIdx       []int // length ColPtr[Ncols] (capacity)
	Values       []float64
}

// NewCompressed builds a matrix whose current nnz equals its capacity in
// every column.
func NewCompressed(nrows, ncols int, colPtr, rowIdx []int, values []float64) *Matrix {
	if len(colPtr) != ncols+1 {
		panic("csc: bad col_ptr length")
	}
	return &Matrix{Nrows: nrows, Ncols: ncols, ColPtr: colPtr, RowIdx: rowIdx, Values: values}
}

// NewUncompressed builds a matrix with reserved per-column capacity larger
// than its current nnz, so that columns can later grow in place.
func NewUncompressed(nrows, ncols int, colPtr, nnzPerCol, rowIdx []int, values []float64) *Matrix {
	if len(colPtr) != ncols+1 || len(nnzPerCol) != ncols {
		panic("csc: bad col_ptr/nnz_per_col length")
	}
	return &Matrix{Nrows: nrows, Ncols: ncols, ColPtr: colPtr, NnzPerCol: nnzPerCol, RowIdx: rowIdx, Values: values}
}

// IsCompressed reports whether every column's current nnz equals its
// allocated capacity.
func (m *Matrix) IsCompressed() bool { return m.NnzPerCol == nil }

// ColStart returns the first storage index of column j.
func (m *Matrix) ColStart(j int) int { return m.ColPtr[j] }

// ColCap returns the allocated capacity of column j.
func (m *Matrix) ColCap(j int) int { return m.ColPtr[j+1] - m.ColPtr[j] }

// ColEnd returns one past the last storage index currently in use in
// column j.
func (m *Matrix) ColEnd(j int) int {
	if m.IsCompressed() {
		return m.ColPtr[j+1]
	}
	return m.ColPtr[j] + m.NnzPerCol[j]
}

// ColNNZ returns the current number of non-zeros in column j.
func (m *Matrix) ColNNZ(j int) int { return m.ColEnd(j) - m.ColStart(j) }

// SetNNZ sets the current nnz count of column j. Panics if the matrix is
// compressed or the requested count exceeds the column's capacity.
func (m *Matrix) SetNNZ(j, n int) {
	if m.IsCompressed() {
		panic("csc: cannot set nnz of a compressed matrix")
	}
	if n < 0 || n > m.ColCap(j) {
		panic("csc: nnz exceeds column capacity")
	}
	m.NnzPerCol[j] = n
}

// RowIndices returns the active row indices of column j.
func (m *Matrix) RowIndices(j int) []int {
	return m.RowIdx[m.ColStart(j):m.ColEnd(j)]
}

// ColValues returns the active values of column j.
func (m *Matrix) ColValues(j int) []float64 {
	return m.Values[m.ColStart(j):m.ColEnd(j)]
}

// NNZ returns the total current non-zero count across all columns.
func (m *Matrix) NNZ() int {
	if m.IsCompressed() {
		return m.ColPtr[m.Ncols]
	}
	total := 0
	for j := 0; j < m.Ncols; j++ {
		total += m.NnzPerCol[j]
	}
	return total
}

// SortedInvariant reports whether RowIndices(j) is strictly increasing; this is
// checked in tests, not on the hot path, and documents the invariant every
// mutator (ldlt.AddRow/DeleteRow, active-set edits) must preserve.
func (m *Matrix) SortedInvariant(j int) bool {
	idx := m.RowIndices(j)
	for k := 1; k < len(idx); k++ {
		if idx[k] <= idx[k-1] {
			return false
		}
	}
	return true
}

// TransposeStruct computes the structural transpose of m: an Ncols×Nrows
// compressed matrix whose column i holds the column indices j of m that
// carry a non-zero in row i, sorted ascending. Values are not populated.
func TransposeStruct(m *Matrix) *Matrix {
	nrows, ncols := m.Nrows, m.Ncols
	rowCount := make([]int, nrows)
	for j := 0; j < ncols; j++ {
		for _, i := range m.RowIndices(j) {
			rowCount[i]++
		}
	}
	colPtr := make([]int, nrows+1)
	for i := 0; i < nrows; i++ {
		colPtr[i+1] = colPtr[i] + rowCount[i]
	}
	rowIdx := make([]int, colPtr[nrows])
	next := append([]int(nil), colPtr[:nrows]...)
	for j := 0; j < ncols; j++ {
		for _, i := range m.RowIndices(j) {
			rowIdx[next[i]] = j
			next[i]++
		}
	}
	return NewCompressed(ncols, nrows, colPtr, rowIdx, nil)
}

// Transpose computes the structural and numeric transpose of m.
func Transpose(m *Matrix) *Matrix {
	t := TransposeStruct(m)
	if m.Values == nil {
		return t
	}
	nrows, ncols := m.Nrows, m.Ncols
	values := make([]float64, len(t.RowIdx))
	next := append([]int(nil), t.ColPtr[:nrows]...)
	for j := 0; j < ncols; j++ {
		vals := m.ColValues(j)
		for k, i := range m.RowIndices(j) {
			values[next[i]] = vals[k]
			next[i]++
		}
	}
	t.Values = values
	return t
}

// MulAdd computes out += m*x, treating m as a plain (possibly rectangular)
// column-major sparse matrix: out has length m.Nrows, x has length m.Ncols.
func (m *Matrix) MulAdd(x, out []float64) {
	if len(x) != m.Ncols || len(out) != m.Nrows {
		panic("csc: dimension mismatch in MulAdd")
	}
	for j := 0; j < m.Ncols; j++ {
		xj := x[j]
		if xj == 0 {
			continue
		}
		rows := m.RowIndices(j)
		vals := m.ColValues(j)
		for k, i := range rows {
			out[i] += vals[k] * xj
		}
	}
}

// GatherMulAdd computes out += mᵀ*x without materializing the transpose:
// out has length m.Ncols, x has length m.Nrows.
func (m *Matrix) GatherMulAdd(x, out []float64) {
	if len(x) != m.Nrows || len(out) != m.Ncols {
		panic("csc: dimension mismatch in GatherMulAdd")
	}
	for j := 0; j < m.Ncols; j++ {
		rows := m.RowIndices(j)
		vals := m.ColValues(j)
		sum := 0.0
		for k, i := range rows {
			sum += vals[k] * x[i]
		}
		out[j] += sum
	}
}

// SymUpperMulAdd computes out += (M + Mᵀ - diag(M))*x where m stores only
// the upper triangle of the symmetric matrix M (m.Nrows == m.Ncols).
func (m *Matrix) SymUpperMulAdd(x, out []float64) {
	if m.Nrows != m.Ncols || len(x) != m.Nrows || len(out) != m.Nrows {
		panic("csc: dimension mismatch in SymUpperMulAdd")
	}
	for j := 0; j < m.Ncols; j++ {
		xj := x[j]
		rows := m.RowIndices(j)
		vals := m.ColValues(j)
		for k, i := range rows {
			v := vals[k]
			out[i] += v * xj
			if i != j {
				out[j] += v * x[i]
			}
		}
	}
}

// ColInfNorm returns, for each column j, the infinity norm of the stored
// entries in that column.
func ColInfNorm(m *Matrix) []float64 {
	norms := make([]float64, m.Ncols)
	for j := 0; j < m.Ncols; j++ {
		best := 0.0
		for _, v := range m.ColValues(j) {
			if a := absf(v); a > best {
				best = a
			}
		}
		norms[j] = best
	}
	return norms
}

// RowInfNorm returns, for each row i of a rectangular matrix, the infinity
// norm of the stored entries in that row.
func RowInfNorm(m *Matrix) []float64 {
	norms := make([]float64, m.Nrows)
	for j := 0; j < m.Ncols; j++ {
		for k, i := range m.RowIndices(j) {
			if a := absf(m.ColValues(j)[k]); a > norms[i] {
				norms[i] = a
			}
		}
	}
	return norms
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// FindRow returns the storage index within column j at which row i is
// stored, or -1 if row i is not present. Column j must be sorted ascending.
func (m *Matrix) FindRow(j, i int) int {
	start, end := m.ColStart(j), m.ColEnd(j)
	idx := m.RowIdx[start:end]
	pos := sort.SearchInts(idx, i)
	if pos < len(idx) && idx[pos] == i {
		return start + pos
	}
	return -1
}
