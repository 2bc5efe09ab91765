// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package symbolic

// EliminationTree computes the elimination tree of the permuted matrix
// P·K·Pᵀ, given the undirected graph of K and the permutation from
// MinimumDegree. parent[j] is the smallest ancestor of column j (in
// permuted order) among the fill-in edges, or -1 if j is a root — this is
// the classical Liu/Davis path-compressed algorithm.
func EliminationTree(g *Graph, perm, permInv []int) []int {
	n := g.N
	parent := make([]int, n)
	ancestor := make([]int, n)
	for i := range parent {
		parent[i] = -1
		ancestor[i] = -1
	}
	for k := 0; k < n; k++ {
		orig := perm[k]
		for _, nb := range g.Adj[orig] {
			i := permInv[nb]
			if i >= k {
				continue
			}
			r := i
			for ancestor[r] != -1 && ancestor[r] != k {
				next := ancestor[r]
				ancestor[r] = k
				r = next
			}
			if ancestor[r] == -1 {
				ancestor[r] = k
				parent[r] = k
			}
		}
	}
	return parent
}

// Children builds, from a parent array, the list of children of each node
// (nodes r with parent[r]==j), sorted ascending. Convenient for the
// symbolic and numeric factorization sweeps that must visit a node after
// all of its children.
func Children(parent []int) [][]int {
	n := len(parent)
	children := make([][]int, n)
	for j := 0; j < n; j++ {
		p := parent[j]
		if p != -1 {
			children[p] = append(children[p], j)
		}
	}
	return children
}
