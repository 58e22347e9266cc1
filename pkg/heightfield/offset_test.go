package heightfield

import (
	"errors"
	gomath "math"
	"testing"
)

func TestLinearOffset_KnownValues(t *testing.T) {
	o := linearOffset{tileSize: 64}

	tests := []struct {
		x, z  int
		scale float64
		want  float64
	}{
		{32, 0, 32, -1.664},  // seed 2048, unit 0.448
		{0, 32, 32, 4.224},   // seed 32, unit 0.632
		{32, 32, 32, -13.44}, // seed 2080, unit 0.080
		{0, 0, 8, -4},        // seed 0, unit 0
	}

	for _, tt := range tests {
		got := o.Offset(tt.x, tt.z, tt.scale)
		if gomath.Abs(got-tt.want) > epsilon {
			t.Errorf("Offset(%d, %d, %v) = %v, want %v", tt.x, tt.z, tt.scale, got, tt.want)
		}
	}
}

func TestOffsets_Bounded(t *testing.T) {
	for _, kind := range []OffsetKind{LinearOffset, MixedOffset} {
		t.Run(kind.String(), func(t *testing.T) {
			o, err := NewOffsetSource(kind, 64)
			if err != nil {
				t.Fatalf("NewOffsetSource failed: %v", err)
			}
			for x := 0; x < 64; x++ {
				for z := 0; z < 64; z++ {
					v := o.Offset(x, z, 16)
					if v < -8 || v >= 8 {
						t.Fatalf("Offset(%d, %d, 16) = %v, outside [-8, 8)", x, z, v)
					}
				}
			}
		})
	}
}

func TestMixedOffset_PeriodicAndDistinct(t *testing.T) {
	mixed := mixedOffset{tileSize: 64}
	linear := linearOffset{tileSize: 64}

	if mixed.Offset(5, 9, 4) != mixed.Offset(5+64, 9-128, 4) {
		t.Error("mixed offset should only depend on the wrapped point")
	}

	differs := false
	for x := 0; x < 64 && !differs; x++ {
		if mixed.Offset(x, 3, 4) != linear.Offset(x, 3, 4) {
			differs = true
		}
	}
	if !differs {
		t.Error("mixed offset should differ from the linear hash")
	}
}

func TestParseOffsetKind(t *testing.T) {
	tests := []struct {
		in   string
		want OffsetKind
	}{
		{"", LinearOffset},
		{"linear", LinearOffset},
		{"mixed", MixedOffset},
	}
	for _, tt := range tests {
		got, err := ParseOffsetKind(tt.in)
		if err != nil {
			t.Fatalf("ParseOffsetKind(%q) failed: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseOffsetKind(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseOffsetKind("xorshift"); !errors.Is(err, ErrUnknownOffset) {
		t.Errorf("expected ErrUnknownOffset, got %v", err)
	}
}
