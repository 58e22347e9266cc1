package math

import "testing"

func TestFloorMod(t *testing.T) {
	tests := []struct {
		v, n, want int
	}{
		{0, 64, 0},
		{63, 64, 63},
		{64, 64, 0},
		{65, 64, 1},
		{-1, 64, 63},
		{-64, 64, 0},
		{-65, 64, 63},
		{-129, 64, 63},
	}

	for _, tt := range tests {
		if got := FloorMod(tt.v, tt.n); got != tt.want {
			t.Errorf("FloorMod(%d, %d) = %d, want %d", tt.v, tt.n, got, tt.want)
		}
	}
}

func TestSmootherstep(t *testing.T) {
	tests := []struct {
		v    float64
		want float64
	}{
		{-1, 0},
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{2, 1},
	}

	for _, tt := range tests {
		if got := Smootherstep(0, 1, tt.v); got != tt.want {
			t.Errorf("Smootherstep(0, 1, %v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(2, 6, 0.25); got != 3 {
		t.Errorf("Lerp(2, 6, 0.25) = %v, want 3", got)
	}
}

func TestFract(t *testing.T) {
	if got := Fract(-0.25); got != 0.75 {
		t.Errorf("Fract(-0.25) = %v, want 0.75", got)
	}
	if got := Fract(3); got != 0 {
		t.Errorf("Fract(3) = %v, want 0", got)
	}
}

func TestIsInteger(t *testing.T) {
	if !IsInteger(-3) {
		t.Error("expected -3 to be an integer")
	}
	if IsInteger(2.5) {
		t.Error("expected 2.5 not to be an integer")
	}
}
