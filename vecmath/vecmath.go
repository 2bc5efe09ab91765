// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vecmath provides the dense-vector kernels shared by the sparse
// LDLᵀ factorization, the Ruiz preconditioner, the semismooth Newton inner
// solver and the BCL outer loop. It plays the role a private blas.go plays
// inside a single-package solver, exported because several packages here
// need the same handful of reductions.
package vecmath

import "math"

// Axpy computes y ← y + alpha*x. Both slices must have equal length.
func Axpy(alpha float64, x, y []float64) {
	if alpha == 0 {
		return
	}
	n := len(x)
	if len(y) != n {
		panic("vecmath: length mismatch")
	}
	m := n % 4
	for i := 0; i < m; i++ {
		y[i] += alpha * x[i]
	}
	for i := m; i < n; i += 4 {
		xi := x[i : i+4 : i+4]
		yi := y[i : i+4 : i+4]
		yi[0] += alpha * xi[0]
		yi[1] += alpha * xi[1]
		yi[2] += alpha * xi[2]
		yi[3] += alpha * xi[3]
	}
}

// Dot computes the inner product of x and y.
func Dot(x, y []float64) (sum float64) {
	n := len(x)
	if len(y) != n {
		panic("vecmath: length mismatch")
	}
	for i := 0; i < n; i++ {
		sum += x[i] * y[i]
	}
	return sum
}

// Scal scales x in place by alpha.
func Scal(alpha float64, x []float64) {
	for i := range x {
		x[i] *= alpha
	}
}

// Copy copies src into dst; both must have equal length.
func Copy(dst, src []float64) {
	if len(dst) != len(src) {
		panic("vecmath: length mismatch")
	}
	copy(dst, src)
}

// Zero fills x with zero.
func Zero(x []float64) {
	for i := range x {
		x[i] = 0
	}
}

// NormInf returns the infinity norm (max absolute value) of x, 0 for an
// empty slice.
func NormInf(x []float64) float64 {
	m := 0.0
	for _, v := range x {
		if a := math.Abs(v); a > m {
			m = a
		}
	}
	return m
}

// Norm2 computes the Euclidean norm of x using the scaled-sum-of-squares
// recurrence to avoid overflow, in the style of BLAS's dnrm2.
func Norm2(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	if len(x) == 1 {
		return math.Abs(x[0])
	}
	scale, ssq := 0.0, 1.0
	for _, v := range x {
		if absxi := math.Abs(v); absxi > 0 {
			if scale < absxi {
				sxi := scale / absxi
				ssq = 1 + ssq*sxi*sxi
				scale = absxi
			} else {
				sxi := absxi / scale
				ssq += sxi * sxi
			}
		}
	}
	return scale * math.Sqrt(ssq)
}

// AddScaled sets dst[i] = a[i] + alpha*b[i] elementwise.
func AddScaled(dst, a, b []float64, alpha float64) {
	n := len(dst)
	if len(a) != n || len(b) != n {
		panic("vecmath: length mismatch")
	}
	for i := 0; i < n; i++ {
		dst[i] = a[i] + alpha*b[i]
	}
}

// PosNeg returns the elementwise positive and negative parts of x:
// pos[i] = max(x[i],0), neg[i] = max(-x[i],0).
func PosNeg(x []float64) (pos, neg []float64) {
	pos = make([]float64, len(x))
	neg = make([]float64, len(x))
	for i, v := range x {
		if v > 0 {
			pos[i] = v
		} else {
			neg[i] = -v
		}
	}
	return
}
