// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package kkt assembles the augmented-Lagrangian KKT saddle-point matrix
// the inner Newton solver factors, and tracks which inequality constraints
// are currently active, using a fixed-size bitset rather than a dynamic
// active/inactive index remapping: since an inactive constraint's
// row/column always occupies the same slot in K (as an inert identity
// row), no bijection between "constraint index" and "position among
// active constraints" is needed at all — package ldlt's AddRow/DeleteRow
// already operate directly at that fixed slot.
package kkt

import "github.com/aescande/proxsuite/csc"

// Problem holds the immutable data of a convex QP:
//
//	minimize   ½xᵀHx + gᵀx
//	subject to Ax = b,  l ≤ Cx ≤ u
//
// H is stored upper-triangular; At and Ct are A and C already stored
// transposed (n×neq and n×nin), matching the column layout the KKT matrix
// needs and letting package csc compute both A·x and Aᵀ·y off the same
// stored data (csc.Matrix.MulAdd / GatherMulAdd).
type Problem struct {
	N, NEq, NIn int
	H           *csc.Matrix
	At          *csc.Matrix
	Ct          *csc.Matrix
	G           []float64
	B           []float64
	L, U        []float64
}

// ActiveSet tracks which inequality constraints currently participate in
// the KKT matrix, as a plain bitset plus a running count.
type ActiveSet struct {
	active []bool
	count  int
}

// NewActiveSet returns an ActiveSet with every constraint inactive.
func NewActiveSet(nin int) *ActiveSet {
	return &ActiveSet{active: make([]bool, nin)}
}

// IsActive reports whether constraint i currently participates.
func (a *ActiveSet) IsActive(i int) bool { return a.active[i] }

// Count returns the number of currently active constraints.
func (a *ActiveSet) Count() int { return a.count }

// Activate marks constraint i active, returning false if it already was.
func (a *ActiveSet) Activate(i int) bool {
	if a.active[i] {
		return false
	}
	a.active[i] = true
	a.count++
	return true
}

// Deactivate marks constraint i inactive, returning false if it already was.
func (a *ActiveSet) Deactivate(i int) bool {
	if !a.active[i] {
		return false
	}
	a.active[i] = false
	a.count--
	return true
}

// Clone returns an independent copy.
func (a *ActiveSet) Clone() *ActiveSet {
	cp := make([]bool, len(a.active))
	copy(cp, a.active)
	return &ActiveSet{active: cp, count: a.count}
}

// Snapshot returns the active flags as a plain []bool, for callers that
// need to hand the current state to Assemble.
func (a *ActiveSet) Snapshot() []bool {
	return append([]bool(nil), a.active...)
}
