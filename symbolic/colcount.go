// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package symbolic

// ColumnCounts derives, for each column j of L (in permuted order), the
// number of non-zeros L will hold (including the diagonal), by sweeping
// columns in increasing order and propagating each column's below-diagonal
// pattern into its elimination-tree parent — since parent[j] > j always,
// a child's pattern is fully known before it is absorbed into its parent.
func ColumnCounts(g *Graph, perm, permInv []int, parent []int) []int {
	n := g.N
	pattern := make([]map[int]struct{}, n)
	for j := range pattern {
		pattern[j] = make(map[int]struct{})
	}
	counts := make([]int, n)
	for j := 0; j < n; j++ {
		orig := perm[j]
		for _, nb := range g.Adj[orig] {
			i := permInv[nb]
			if i > j {
				pattern[j][i] = struct{}{}
			}
		}
		counts[j] = len(pattern[j]) + 1 // +1 for the diagonal entry
		if p := parent[j]; p != -1 {
			for i := range pattern[j] {
				if i != p {
					pattern[p][i] = struct{}{}
				}
			}
		}
	}
	return counts
}

// ColPointers turns column counts into L's column-pointer prefix sum.
func ColPointers(counts []int) []int {
	colPtr := make([]int, len(counts)+1)
	for j, c := range counts {
		colPtr[j+1] = colPtr[j] + c
	}
	return colPtr
}
