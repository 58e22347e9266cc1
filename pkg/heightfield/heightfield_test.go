package heightfield

import (
	"errors"
	gomath "math"
	"testing"
)

func newDefault(t *testing.T) *HeightField {
	t.Helper()
	hf, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return hf
}

func TestNew_RejectsTileSize(t *testing.T) {
	for _, n := range []int{48, 0, 1, -64, 96, MaxTileSize * 2} {
		cfg := DefaultConfig()
		cfg.TileSize = n
		_, err := New(cfg)
		if !errors.Is(err, ErrInvalidTileSize) {
			t.Errorf("New(TileSize=%d): expected ErrInvalidTileSize, got %v", n, err)
		}
	}
}

func TestNew_AcceptsPowersOfTwo(t *testing.T) {
	for n := MinTileSize; n <= 256; n *= 2 {
		cfg := DefaultConfig()
		cfg.TileSize = n
		hf, err := New(cfg)
		if err != nil {
			t.Fatalf("New(TileSize=%d) failed: %v", n, err)
		}
		if hf.TileSize() != n {
			t.Errorf("TileSize() = %d, want %d", hf.TileSize(), n)
		}
	}
}

func TestNew_SelectsStrategy(t *testing.T) {
	cfg := DefaultConfig()
	hf, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, ok := hf.lattice.(*Fractal); !ok {
		t.Errorf("%s strategy built %T, want *Fractal", StrategyFractal, hf.lattice)
	}

	cfg.Strategy = StrategyGradientNoise
	hf, err = New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, ok := hf.lattice.(*GradientNoise); !ok {
		t.Errorf("%s strategy built %T, want *GradientNoise", StrategyGradientNoise, hf.lattice)
	}
}

func TestNew_MemoTableSize(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TileSize = MaxTileSize
	hf, err := New(cfg)
	if err != nil {
		t.Fatalf("New(TileSize=%d) failed: %v", MaxTileSize, err)
	}
	m := hf.lattice.(*Fractal).memo
	if m == nil {
		t.Fatal("cached fractal has no memo table")
	}
	if got, want := len(m.bits), MaxTileSize*MaxTileSize; got != want || len(m.filled) != want {
		t.Errorf("memo holds %d/%d slots, want %d", got, len(m.filled), want)
	}

	cfg.Cache = false
	hf, err = New(cfg)
	if err != nil {
		t.Fatalf("New(Cache=false) failed: %v", err)
	}
	if m := hf.lattice.(*Fractal).memo; m != nil {
		t.Errorf("uncached fractal allocated a memo of %d slots", len(m.bits))
	}
}

func TestNew_UnknownVariants(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"strategy", func(c *Config) { c.Strategy = Strategy(5) }, ErrUnknownStrategy},
		{"offset", func(c *Config) { c.Offset = OffsetKind(5) }, ErrUnknownOffset},
		{"sampler", func(c *Config) {
			c.Strategy = StrategyGradientNoise
			c.Sampler = SamplerKind(5)
		}, ErrUnknownSampler},
		{"octaves", func(c *Config) {
			c.Strategy = StrategyGradientNoise
			c.Octaves = []Octave{}
		}, ErrInvalidOctave},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if _, err := New(cfg); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestHeightField_Scenario(t *testing.T) {
	hf := newDefault(t)

	if got := hf.LatticeHeightAt(0, 0); got != 0 {
		t.Errorf("LatticeHeightAt(0, 0) = %v, want 0", got)
	}
	if got := hf.LatticeHeightAt(32, 0); gomath.Abs(got-(-1.664)) > epsilon {
		t.Errorf("LatticeHeightAt(32, 0) = %v, want -1.664", got)
	}
}

func TestHeightField_InterpolationExactAtLattice(t *testing.T) {
	for _, strategy := range []Strategy{StrategyFractal, StrategyGradientNoise} {
		t.Run(strategy.String(), func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Strategy = strategy
			hf, err := New(cfg)
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			for x := -20; x <= 80; x += 3 {
				for z := -20; z <= 80; z += 7 {
					got := hf.HeightAt(float64(x), float64(z))
					want := hf.LatticeHeightAt(x, z)
					if got != want {
						t.Fatalf("HeightAt(%d, %d) = %v, want %v", x, z, got, want)
					}
				}
			}
		})
	}
}

func TestHeightField_InterpolatesBetweenLatticePoints(t *testing.T) {
	hf := newDefault(t)

	// Halfway along x between two lattice points on an integer z row.
	want := (hf.LatticeHeightAt(10, 3) + hf.LatticeHeightAt(11, 3)) / 2
	if got := hf.HeightAt(10.5, 3); gomath.Abs(got-want) > epsilon {
		t.Errorf("HeightAt(10.5, 3) = %v, want %v", got, want)
	}

	// Cell center is the mean of the four corners.
	want = (hf.LatticeHeightAt(4, 4) + hf.LatticeHeightAt(4, 5) +
		hf.LatticeHeightAt(5, 4) + hf.LatticeHeightAt(5, 5)) / 4
	if got := hf.HeightAt(4.5, 4.5); gomath.Abs(got-want) > epsilon {
		t.Errorf("HeightAt(4.5, 4.5) = %v, want %v", got, want)
	}
}

func TestHeightField_RealQueriesPeriodic(t *testing.T) {
	hf := newDefault(t)

	for i := 0; i < 200; i++ {
		x := float64(i)*0.61 - 30
		z := float64(i)*0.37 + 5
		want := hf.HeightAt(x, z)
		got := hf.HeightAt(x+128, z-64)
		if gomath.Abs(got-want) > 1e-6 {
			t.Fatalf("HeightAt(%v, %v) = %v, shifted copy %v", x, z, want, got)
		}
	}
}

func TestHeightField_GradientScenario(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Strategy = StrategyGradientNoise
	hf, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if got := hf.LatticeHeightAt(0, 0); got != 0 {
		t.Errorf("LatticeHeightAt(0, 0) = %v, want 0", got)
	}
	if _, ok := hf.Trace(3, 3); ok {
		t.Error("gradient noise should not report a fractal trace")
	}
}

func TestHeightField_MixedOffsetVariant(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Offset = MixedOffset
	mixed, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	linear := newDefault(t)

	if got := mixed.LatticeHeightAt(0, 0); got != 0 {
		t.Errorf("anchor = %v, want 0", got)
	}
	if mixed.LatticeHeightAt(32, 0) == linear.LatticeHeightAt(32, 0) {
		t.Error("mixed offset should produce different terrain than the linear hash")
	}
	if mixed.LatticeHeightAt(13, 7) != mixed.LatticeHeightAt(13-64, 7+192) {
		t.Error("mixed offset terrain should stay periodic")
	}
}

func TestHeightField_Trace(t *testing.T) {
	hf := newDefault(t)
	tr, ok := hf.Trace(32, 0)
	if !ok {
		t.Fatal("expected fractal trace")
	}
	if tr.Height != hf.LatticeHeightAt(32, 0) {
		t.Errorf("Trace height = %v, want %v", tr.Height, hf.LatticeHeightAt(32, 0))
	}
}

func TestHeightField_ConfigIsCopied(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Strategy = StrategyGradientNoise
	hf, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	cfg.Octaves[0].Amplitude = 1000
	got := hf.Config()
	if got.Octaves[0].Amplitude != 4 {
		t.Errorf("stored octave amplitude = %v, want 4", got.Octaves[0].Amplitude)
	}
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in   string
		want Strategy
	}{
		{"", StrategyFractal},
		{"fractal", StrategyFractal},
		{"gradient", StrategyGradientNoise},
	}
	for _, tt := range tests {
		got, err := ParseStrategy(tt.in)
		if err != nil {
			t.Fatalf("ParseStrategy(%q) failed: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseStrategy(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if _, err := ParseStrategy("erosion"); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("expected ErrUnknownStrategy, got %v", err)
	}
}
