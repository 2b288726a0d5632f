package vec

import (
	"math"
	"testing"
)

func TestArithmetic(t *testing.T) {
	a := New(1, 2, 3)
	b := New(4, -5, 6)

	sum := a.Add(b)
	if sum != (Vec{5, -3, 9}) {
		t.Errorf("Add: got %+v", sum)
	}

	diff := a.Sub(b)
	if diff != (Vec{-3, 7, -3}) {
		t.Errorf("Sub: got %+v", diff)
	}

	scaled := a.Scale(2)
	if scaled != (Vec{2, 4, 6}) {
		t.Errorf("Scale: got %+v", scaled)
	}
}

func TestDotAndNorm(t *testing.T) {
	a := New(3, 4, 0)

	if got := a.Dot(a); got != 25 {
		t.Errorf("Dot: expected 25, got %f", got)
	}
	if got := a.Norm(); math.Abs(got-5) > 1e-15 {
		t.Errorf("Norm: expected 5, got %f", got)
	}
	if got := a.NormSq(); got != 25 {
		t.Errorf("NormSq: expected 25, got %f", got)
	}
}

func TestCross(t *testing.T) {
	x := New(1, 0, 0)
	y := New(0, 1, 0)

	z := x.Cross(y)
	if z != (Vec{0, 0, 1}) {
		t.Errorf("x cross y: got %+v", z)
	}

	// Anti-commutativity
	if y.Cross(x) != (Vec{0, 0, -1}) {
		t.Errorf("y cross x: got %+v", y.Cross(x))
	}

	// Parallel vectors
	if !x.Cross(x).IsZero() {
		t.Errorf("x cross x should be zero")
	}
}
