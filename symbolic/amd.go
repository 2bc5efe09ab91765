// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package symbolic

// MinimumDegree computes an AMD-style fill-reducing permutation by greedy
// minimum-degree elimination on the elimination graph, breaking ties by
// natural (ascending) index. It returns perm, where perm[k] is the
// original node placed at factorization position k, and permInv, its
// inverse.
//
// This is the textbook quadratic minimum-degree algorithm (explicit
// adjacency-set clique fill-in per elimination step) rather than the
// quotient-graph / approximate-degree machinery of production AMD codes;
// it produces the same style of ordering at a complexity acceptable for
// the problem sizes this solver targets.
func MinimumDegree(g *Graph) (perm, permInv []int) {
	n := g.N
	adj := make([]map[int]struct{}, n)
	for i := 0; i < n; i++ {
		adj[i] = make(map[int]struct{}, len(g.Adj[i]))
		for _, j := range g.Adj[i] {
			adj[i][j] = struct{}{}
		}
	}
	eliminated := make([]bool, n)
	perm = make([]int, 0, n)

	for step := 0; step < n; step++ {
		best, bestDeg := -1, -1
		for i := 0; i < n; i++ {
			if eliminated[i] {
				continue
			}
			d := len(adj[i])
			if best == -1 || d < bestDeg {
				best, bestDeg = i, d
			}
		}
		perm = append(perm, best)
		eliminated[best] = true

		neighbors := make([]int, 0, len(adj[best]))
		for j := range adj[best] {
			if !eliminated[j] {
				neighbors = append(neighbors, j)
			}
		}
		for _, u := range neighbors {
			delete(adj[u], best)
			for _, v := range neighbors {
				if u != v {
					adj[u][v] = struct{}{}
				}
			}
		}
		adj[best] = nil
	}

	permInv = make([]int, n)
	for k, orig := range perm {
		permInv[orig] = k
	}
	return perm, permInv
}
