package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagTileSize = flag.Int("tile-size", 0, "Fractal tile size (power of two)")
	flagStrategy = flag.String("strategy", "", "Height strategy: fractal or gradient")
	flagOffset   = flag.String("offset", "", "Fractal offset hash: linear or mixed")
	flagSampler  = flag.String("sampler", "", "Noise sampler: classic, opensimplex or perlin")
	flagSeed     = flag.Int64("seed", 0, "Seed for library noise samplers")
	flagNoCache  = flag.Bool("no-cache", false, "Disable the fractal memo table")
	flagWorkers  = flag.Int("workers", 0, "Parallel tile workers (0 = GOMAXPROCS)")
	flagListen   = flag.String("listen", "", "HTTP listen address")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag arguments.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagTileSize > 0 {
		cfg.Terrain.TileSize = *flagTileSize
	}
	if *flagStrategy != "" {
		cfg.Terrain.Strategy = *flagStrategy
	}
	if *flagOffset != "" {
		cfg.Terrain.Offset = *flagOffset
	}
	if *flagSampler != "" {
		cfg.Noise.Sampler = *flagSampler
	}
	if *flagSeed != 0 {
		cfg.Noise.Seed = *flagSeed
	}
	if *flagNoCache {
		cfg.Terrain.Cache = false
	}
	if *flagWorkers > 0 {
		cfg.Tiles.Workers = *flagWorkers
	}
	if *flagListen != "" {
		cfg.Server.Listen = *flagListen
	}
}
