// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vecmath

import (
	"math"
	"testing"
)

func closeEnough(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestAxpyDot(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{5, 4, 3, 2, 1}
	Axpy(2, x, y)
	want := []float64{7, 8, 9, 10, 11}
	for i := range want {
		if y[i] != want[i] {
			t.Fatalf("axpy[%d] = %v, want %v", i, y[i], want[i])
		}
	}
	if got := Dot(x, x); !closeEnough(got, 55, 1e-12) {
		t.Fatalf("dot = %v, want 55", got)
	}
}

func TestNorms(t *testing.T) {
	x := []float64{3, -4, 0, 1}
	if got := NormInf(x); got != 4 {
		t.Fatalf("norm-inf = %v, want 4", got)
	}
	if got := Norm2([]float64{3, 4}); !closeEnough(got, 5, 1e-12) {
		t.Fatalf("norm-2 = %v, want 5", got)
	}
	if got := Norm2(nil); got != 0 {
		t.Fatalf("norm-2 of empty = %v, want 0", got)
	}
}

func TestPosNeg(t *testing.T) {
	pos, neg := PosNeg([]float64{2, -3, 0})
	if pos[0] != 2 || pos[1] != 0 || pos[2] != 0 {
		t.Fatalf("pos = %v", pos)
	}
	if neg[0] != 0 || neg[1] != 3 || neg[2] != 0 {
		t.Fatalf("neg = %v", neg)
	}
}

func TestScalCopyZero(t *testing.T) {
	x := []float64{1, 2, 3}
	Scal(2, x)
	if x[0] != 2 || x[1] != 4 || x[2] != 6 {
		t.Fatalf("scal = %v", x)
	}
	y := make([]float64, 3)
	Copy(y, x)
	if y[1] != 4 {
		t.Fatalf("copy = %v", y)
	}
	Zero(y)
	for _, v := range y {
		if v != 0 {
			t.Fatalf("zero = %v", y)
		}
	}
}
