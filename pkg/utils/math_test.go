package utils

import (
	"math"
	"testing"
)

func TestNormalizeL2(t *testing.T) {
	x := []float64{3, 4}
	norm := NormalizeL2(x)
	if norm != 5 {
		t.Errorf("norm = %v, want 5", norm)
	}
	if math.Abs(x[0]-0.6) > 1e-12 || math.Abs(x[1]-0.8) > 1e-12 {
		t.Errorf("normalized = %v", x)
	}

	zero := []float64{0, 0}
	if NormalizeL2(zero) != 0 || zero[0] != 0 || zero[1] != 0 {
		t.Errorf("zero vector should be unchanged, got %v", zero)
	}
}

func TestClamp01(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-0.1, 0},
		{0.5, 0.5},
		{1.0000000002, 1},
	}
	for _, tt := range tests {
		if got := Clamp01(tt.in); got != tt.want {
			t.Errorf("Clamp01(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
