// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package symbolic computes the fill-reducing permutation, elimination
// tree and column counts that drive the numeric LDLᵀ factorization in
// package ldlt.
package symbolic

import (
	"sort"

	"github.com/aescande/proxsuite/csc"
)

// Graph is the undirected adjacency-list view of a symmetric sparse
// pattern, built once from K's stored upper triangle plus its mirror.
type Graph struct {
	N   int
	Adj [][]int // sorted ascending, no self-loops, no duplicates
}

// BuildGraph constructs the undirected graph of a symmetric n×n matrix
// stored in upper-triangular form.
func BuildGraph(m *csc.Matrix) *Graph {
	if m.Nrows != m.Ncols {
		panic("symbolic: matrix must be square")
	}
	n := m.Nrows
	sets := make([]map[int]struct{}, n)
	for i := range sets {
		sets[i] = make(map[int]struct{})
	}
	for j := 0; j < n; j++ {
		for _, i := range m.RowIndices(j) {
			if i == j {
				continue
			}
			sets[i][j] = struct{}{}
			sets[j][i] = struct{}{}
		}
	}
	adj := make([][]int, n)
	for i := 0; i < n; i++ {
		list := make([]int, 0, len(sets[i]))
		for k := range sets[i] {
			list = append(list, k)
		}
		sort.Ints(list)
		adj[i] = list
	}
	return &Graph{N: n, Adj: adj}
}
