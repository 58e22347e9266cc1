// Package heightfield answers "what is the elevation at (x, z)?" for terrain
// meshes. Heights come from one of two lattice strategies, a periodic
// midpoint-displacement fractal or layered gradient noise, and are extended to
// real coordinates by bilinear interpolation.
//
// All queries are pure and safe for concurrent use.
package heightfield

import (
	"errors"
	"fmt"
)

// Configuration errors.
var (
	ErrInvalidTileSize = errors.New("tile size must be a power of two between 2 and 1024")
	ErrUnknownStrategy = errors.New("unknown height strategy")
	ErrUnknownOffset   = errors.New("unknown offset variant")
	ErrUnknownSampler  = errors.New("unknown noise sampler")
	ErrInvalidOctave   = errors.New("invalid noise octave")
)

// Tile size limits.
//
// A cached Fractal allocates its memo table in New, before any query runs:
// TileSize² slots of 12 bytes each, about 12 MB at MaxTileSize. Set
// Config.Cache to false to skip the table.
const (
	MinTileSize     = 2
	MaxTileSize     = 1 << 10
	DefaultTileSize = 64
)

// Strategy selects the lattice height generator.
type Strategy int

// Height strategies.
const (
	StrategyFractal       Strategy = iota // Periodic midpoint displacement
	StrategyGradientNoise                 // Layered gradient noise
)

// String returns the configuration name of the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyFractal:
		return "fractal"
	case StrategyGradientNoise:
		return "gradient"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy converts a configuration name to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "fractal", "":
		return StrategyFractal, nil
	case "gradient", "gradient-noise":
		return StrategyGradientNoise, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
}

// Config fixes every choice a HeightField makes. It is read once at
// construction.
type Config struct {
	TileSize int
	Strategy Strategy

	// Fractal settings.
	Offset OffsetKind
	Cache  bool

	// Gradient noise settings.
	Sampler SamplerKind
	Seed    int64
	Octaves []Octave
}

// DefaultConfig returns the reference terrain: a cached 64-unit fractal with
// the linear offset hash.
func DefaultConfig() Config {
	return Config{
		TileSize: DefaultTileSize,
		Strategy: StrategyFractal,
		Offset:   LinearOffset,
		Cache:    true,
		Sampler:  ClassicSampler,
		Octaves:  DefaultOctaves(),
	}
}

// ValidateTileSize checks that n is a power of two in [MinTileSize, MaxTileSize].
func ValidateTileSize(n int) error {
	if n < MinTileSize || n > MaxTileSize || n&(n-1) != 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidTileSize, n)
	}
	return nil
}

// HeightField is the query facade over the configured strategy.
type HeightField struct {
	cfg     Config
	lattice LatticeSource
	interp  Interpolator
}

// New validates cfg and builds the selected strategy.
func New(cfg Config) (*HeightField, error) {
	if err := ValidateTileSize(cfg.TileSize); err != nil {
		return nil, err
	}
	if cfg.Octaves == nil {
		cfg.Octaves = DefaultOctaves()
	}

	var lattice LatticeSource
	switch cfg.Strategy {
	case StrategyFractal:
		offset, err := NewOffsetSource(cfg.Offset, cfg.TileSize)
		if err != nil {
			return nil, err
		}
		f, err := NewFractal(cfg.TileSize, offset, cfg.Cache)
		if err != nil {
			return nil, err
		}
		lattice = f
	case StrategyGradientNoise:
		sampler, err := NewSampler(cfg.Sampler, cfg.Seed)
		if err != nil {
			return nil, err
		}
		g, err := NewGradientNoise(sampler, cfg.Octaves)
		if err != nil {
			return nil, err
		}
		lattice = g
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownStrategy, cfg.Strategy)
	}

	cfg.Octaves = append([]Octave(nil), cfg.Octaves...)
	return &HeightField{
		cfg:     cfg,
		lattice: lattice,
		interp:  Interpolator{Lattice: lattice},
	}, nil
}

// HeightAt returns the elevation at real coordinates.
func (h *HeightField) HeightAt(x, z float64) float64 {
	return h.interp.HeightAt(x, z)
}

// LatticeHeightAt returns the elevation at integer coordinates.
func (h *HeightField) LatticeHeightAt(x, z int) float64 {
	return h.lattice.LatticeHeightAt(x, z)
}

// Config returns the configuration the field was built with.
func (h *HeightField) Config() Config {
	cfg := h.cfg
	cfg.Octaves = append([]Octave(nil), h.cfg.Octaves...)
	return cfg
}

// TileSize returns the lattice period of the fractal strategy.
func (h *HeightField) TileSize() int {
	return h.cfg.TileSize
}

// Strategy returns the selected lattice strategy.
func (h *HeightField) Strategy() Strategy {
	return h.cfg.Strategy
}

// Trace reports the recursion of an uncached fractal evaluation. The second
// result is false for strategies that do not recurse.
func (h *HeightField) Trace(x, z int) (Trace, bool) {
	f, ok := h.lattice.(*Fractal)
	if !ok {
		return Trace{}, false
	}
	return f.Trace(x, z), true
}
