package gwas

import (
	"math"
	"testing"
)

func matNear(a, b Mat4, eps float64) bool {
	for r := range 4 {
		for c := range 4 {
			if math.Abs(a[r][c]-b[r][c]) > eps {
				return false
			}
		}
	}
	return true
}

func TestMultiplyOrder(t *testing.T) {
	// Scale after translate: x' = 2*(x-10).
	m := Scale(2, 1, 1).Multiply(Translate(-10, 0, 0))
	tests := []struct{ in, want float64 }{
		{10, 0},
		{11, 2},
		{0, -20},
	}
	for _, tt := range tests {
		if got := m.ApplyX(tt.in); got != tt.want {
			t.Errorf("ApplyX(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestApply(t *testing.T) {
	m := Translate(3, -4, 0).Multiply(Scale(2, 0.5, 1))
	x, y := m.Apply(10, 10)
	if x != 23 || y != 1 {
		t.Errorf("Apply(10, 10) = (%v, %v), want (23, 1)", x, y)
	}
}

func TestIdentityIsNeutral(t *testing.T) {
	m := Scale(1e-6, 1, 1).Multiply(Translate(-1.5e9, 0, 1))
	if got := Identity().Multiply(m); !matNear(got, m, 1e-12) {
		t.Errorf("Identity() * m = %v, want %v", got, m)
	}
	if got := m.Multiply(Identity()); !matNear(got, m, 1e-12) {
		t.Errorf("m * Identity() = %v, want %v", got, m)
	}
}

func TestColumnMajor(t *testing.T) {
	m := Translate(7, 8, 9)
	got := m.ColumnMajor()
	// Translation lives in the last column, i.e. elements 12..14.
	if got[12] != 7 || got[13] != 8 || got[14] != 9 || got[15] != 1 {
		t.Errorf("ColumnMajor() translation = %v, want [7 8 9 1]", got[12:16])
	}
	if got[0] != 1 || got[5] != 1 || got[10] != 1 {
		t.Errorf("ColumnMajor() diagonal = %v %v %v, want 1 1 1", got[0], got[5], got[10])
	}
}
