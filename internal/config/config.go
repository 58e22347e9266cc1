// Package config handles terrain configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/fractal-terrain/pkg/heightfield"
)

// Config holds all settings.
type Config struct {
	Terrain TerrainConfig `yaml:"terrain"`
	Noise   NoiseConfig   `yaml:"noise"`
	Tiles   TilesConfig   `yaml:"tiles"`
	Server  ServerConfig  `yaml:"server"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// TerrainConfig selects the height strategy.
type TerrainConfig struct {
	TileSize int    `yaml:"tile_size"` // Fractal period, power of two
	Strategy string `yaml:"strategy"`  // fractal | gradient
	Offset   string `yaml:"offset"`    // linear | mixed
	Cache    bool   `yaml:"cache"`     // Memoize fractal heights
}

// NoiseConfig holds gradient noise settings.
type NoiseConfig struct {
	Sampler string               `yaml:"sampler"` // classic | opensimplex | perlin
	Seed    int64                `yaml:"seed"`
	Octaves []heightfield.Octave `yaml:"octaves"`
}

// TilesConfig holds mesh tiling settings.
type TilesConfig struct {
	TileLength   int     `yaml:"tile_length"`   // Lattice cells per mesh tile edge
	ViewDistance float64 `yaml:"view_distance"` // Radius of tiles generated around a position
	Workers      int     `yaml:"workers"`       // 0 = GOMAXPROCS
}

// ServerConfig holds HTTP settings.
type ServerConfig struct {
	Listen string `yaml:"listen"`
}

// ExportConfig holds heightmap image settings.
type ExportConfig struct {
	Size int    `yaml:"size"`
	Path string `yaml:"path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Terrain: TerrainConfig{
			TileSize: heightfield.DefaultTileSize,
			Strategy: "fractal",
			Offset:   "linear",
			Cache:    true,
		},
		Noise: NoiseConfig{
			Sampler: "classic",
			Seed:    0,
			Octaves: heightfield.DefaultOctaves(),
		},
		Tiles: TilesConfig{
			TileLength:   20,
			ViewDistance: 100,
			Workers:      0,
		},
		Server: ServerConfig{
			Listen: ":3333",
		},
		Export: ExportConfig{
			Size: 256,
			Path: "heightmap.bmp",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// HeightField converts the terrain and noise sections into a height field
// configuration. Names are validated here; numeric limits are checked by
// heightfield.New.
func (c *Config) HeightField() (heightfield.Config, error) {
	strategy, err := heightfield.ParseStrategy(c.Terrain.Strategy)
	if err != nil {
		return heightfield.Config{}, fmt.Errorf("terrain.strategy: %w", err)
	}
	offset, err := heightfield.ParseOffsetKind(c.Terrain.Offset)
	if err != nil {
		return heightfield.Config{}, fmt.Errorf("terrain.offset: %w", err)
	}
	sampler, err := heightfield.ParseSamplerKind(c.Noise.Sampler)
	if err != nil {
		return heightfield.Config{}, fmt.Errorf("noise.sampler: %w", err)
	}

	return heightfield.Config{
		TileSize: c.Terrain.TileSize,
		Strategy: strategy,
		Offset:   offset,
		Cache:    c.Terrain.Cache,
		Sampler:  sampler,
		Seed:     c.Noise.Seed,
		Octaves:  c.Noise.Octaves,
	}, nil
}

// Validate checks settings outside the height field itself.
func (c *Config) Validate() error {
	if c.Tiles.TileLength < 1 {
		return fmt.Errorf("tiles.tile_length must be positive, got %d", c.Tiles.TileLength)
	}
	if c.Tiles.ViewDistance < 0 {
		return fmt.Errorf("tiles.view_distance must not be negative, got %v", c.Tiles.ViewDistance)
	}
	if c.Tiles.Workers < 0 {
		return fmt.Errorf("tiles.workers must not be negative, got %d", c.Tiles.Workers)
	}
	if c.Export.Size < 2 {
		return fmt.Errorf("export.size must be at least 2, got %d", c.Export.Size)
	}
	return nil
}
