// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package symbolic

import "github.com/aescande/proxsuite/csc"

// WeightedGraph pairs a Graph with the numeric values of the symmetric
// matrix it was built from: Diag holds each node's diagonal entry, Val[i]
// runs parallel to Adj[i] and holds the value of edge (i, Adj[i][k]). It is
// the numeric counterpart package ldlt gathers columns from during
// left-looking factorization, built once per factorize/refactorize call
// from whichever K is currently active.
type WeightedGraph struct {
	*Graph
	Diag []float64
	Val  [][]float64
}

// BuildWeightedGraph mirrors BuildGraph but also carries K's numeric
// entries, recovering the lower triangle by symmetry from K's stored upper
// triangle.
func BuildWeightedGraph(m *csc.Matrix) *WeightedGraph {
	n := m.Nrows
	diag := make([]float64, n)
	edgeVal := make([]map[int]float64, n)
	for i := range edgeVal {
		edgeVal[i] = make(map[int]float64)
	}
	for j := 0; j < n; j++ {
		rows := m.RowIndices(j)
		vals := m.ColValues(j)
		for k, i := range rows {
			v := vals[k]
			if i == j {
				diag[i] += v
				continue
			}
			edgeVal[i][j] = v
			edgeVal[j][i] = v
		}
	}
	g := BuildGraph(m)
	val := make([][]float64, n)
	for i := 0; i < n; i++ {
		val[i] = make([]float64, len(g.Adj[i]))
		for k, j := range g.Adj[i] {
			val[i][k] = edgeVal[i][j]
		}
	}
	return &WeightedGraph{Graph: g, Diag: diag, Val: val}
}
