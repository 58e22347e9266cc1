package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/Faultbox/fractal-terrain/internal/config"
	"github.com/Faultbox/fractal-terrain/internal/server"
	"github.com/Faultbox/fractal-terrain/internal/terrain"
	"github.com/Faultbox/fractal-terrain/pkg/heightfield"
)

var (
	errUnknownCommand = errors.New("unknown command")
	errUsage          = errors.New("usage")
)

type app struct {
	cfg *config.Config
	hf  *heightfield.HeightField
	out io.Writer
}

func isHelp(command string) bool {
	return command == "help" || command == "-h" || command == "--help"
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `heightctl - periodic fractal terrain utility

Usage:
  heightctl [flags] <command> [options]

Commands:
  sample <x> <z>              Height at real coordinates (interpolated)
  lattice <x> <z>             Height at integer lattice coordinates
  trace <x> <z>               Recursion statistics of a fractal lattice query
  tile <x> <z>                Mesh summary of the tile at origin (x, z)
  region <x> <z>              Generate all tiles visible from (x, z) in parallel
  export                      Write a grayscale BMP heightmap
  serve                       Serve height queries over HTTP

Flags:
  -config <path>   Config file (default ./config.yaml or the user config dir)
  -tile-size <n>   Fractal period, a power of two
  -strategy <s>    fractal | gradient
  -offset <s>      linear | mixed
  -sampler <s>     classic | opensimplex | perlin
  -seed <n>        Seed for the library samplers
  -no-cache        Disable the fractal memo table
  -workers <n>     Parallel tile workers
  -listen <addr>   HTTP listen address
  -debug           Debug logging

Put -- before negative coordinates of tile and region, which take options.

Examples:
  heightctl lattice 32 0
  heightctl -strategy gradient sample 12.5 -3.25
  heightctl region -distance 50 -- -10 5
  heightctl export -o terrain.bmp -size 512
  heightctl -listen :8080 serve`)
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "sample":
		return a.cmdSample(args)
	case "lattice":
		return a.cmdLattice(args)
	case "trace":
		return a.cmdTrace(args)
	case "tile":
		return a.cmdTile(args)
	case "region":
		return a.cmdRegion(ctx, args)
	case "export":
		return a.cmdExport(args)
	case "serve":
		return a.cmdServe(ctx)
	default:
		if isHelp(command) {
			printUsage(a.out)
			return nil
		}
		return fmt.Errorf("%w: %s", errUnknownCommand, command)
	}
}

func (a *app) cmdSample(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: heightctl sample <x> <z>", errUsage)
	}
	x, z, err := parseFloatPair(args)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%g\n", a.hf.HeightAt(x, z))
	return nil
}

func (a *app) cmdLattice(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: heightctl lattice <x> <z>", errUsage)
	}
	x, z, err := parseIntPair(args)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%g\n", a.hf.LatticeHeightAt(x, z))
	return nil
}

func (a *app) cmdTrace(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: heightctl trace <x> <z>", errUsage)
	}
	x, z, err := parseIntPair(args)
	if err != nil {
		return err
	}

	tr, ok := a.hf.Trace(x, z)
	if !ok {
		return fmt.Errorf("trace needs the fractal strategy, have %s", a.hf.Strategy())
	}

	fmt.Fprintf(a.out, "Height:    %g\n", tr.Height)
	fmt.Fprintf(a.out, "Calls:     %d\n", tr.Calls)
	fmt.Fprintf(a.out, "Max depth: %d\n", tr.MaxDepth)
	fmt.Fprintf(a.out, "Levels:    %d\n", tr.Levels)
	return nil
}

func (a *app) cmdTile(args []string) error {
	fs := flag.NewFlagSet("tile", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	length := fs.Int("length", a.cfg.Tiles.TileLength, "Cells per tile edge")
	asJSON := fs.Bool("json", false, "Print the height grid as JSON")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: heightctl tile [-length n] [-json] <x> <z>: %v", errUsage, err)
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("%w: heightctl tile [-length n] [-json] <x> <z>", errUsage)
	}
	x, z, err := parseIntPair(fs.Args())
	if err != nil {
		return err
	}

	grid, err := terrain.SampleGrid(a.hf, x, z, *length)
	if err != nil {
		return err
	}

	if *asJSON {
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(grid)
	}

	mesh := terrain.BuildMesh(grid)
	lo, hi := grid.Range()
	fmt.Fprintf(a.out, "Tile:      (%d, %d) length %d\n", x, z, grid.Length)
	fmt.Fprintf(a.out, "Heights:   %d (min %g, max %g)\n", len(grid.Heights), lo, hi)
	fmt.Fprintf(a.out, "Triangles: %d\n", len(mesh.Indices)/3)
	fmt.Fprintf(a.out, "Bounds:    %v .. %v\n", mesh.Bounds.Min, mesh.Bounds.Max)
	return nil
}

func (a *app) cmdRegion(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("region", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	distance := fs.Float64("distance", a.cfg.Tiles.ViewDistance, "View distance around the position")
	smooth := fs.Bool("smooth", false, "Smooth mesh normals")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: heightctl region [-distance d] [-smooth] <x> <z>: %v", errUsage, err)
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("%w: heightctl region [-distance d] [-smooth] <x> <z>", errUsage)
	}
	x, z, err := parseFloatPair(fs.Args())
	if err != nil {
		return err
	}

	start := time.Now()
	origins := terrain.VisibleTiles(x, z, *distance, a.cfg.Tiles.TileLength)
	grids, err := terrain.GenerateRegion(ctx, a.hf, origins, a.cfg.Tiles.TileLength, a.cfg.Tiles.Workers)
	if err != nil {
		return err
	}

	var vertices int
	for _, g := range grids {
		mesh := terrain.BuildMesh(g)
		if *smooth {
			terrain.SmoothNormals(mesh.Vertices)
		}
		vertices += len(mesh.Vertices)
	}

	fmt.Fprintf(a.out, "Tiles:    %d\n", len(grids))
	fmt.Fprintf(a.out, "Vertices: %d\n", vertices)
	fmt.Fprintf(a.out, "Elapsed:  %v\n", time.Since(start).Round(time.Millisecond))
	return nil
}

func (a *app) cmdExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	output := fs.String("o", a.cfg.Export.Path, "Output BMP file")
	size := fs.Int("size", a.cfg.Export.Size, "Image edge in pixels")
	originX := fs.Int("x", 0, "Lattice x of the top-left pixel")
	originZ := fs.Int("z", 0, "Lattice z of the top-left pixel")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: heightctl export [-o file] [-size n] [-x n] [-z n]: %v", errUsage, err)
	}
	if *size < 2 {
		return fmt.Errorf("%w: -size must be at least 2, got %d", errUsage, *size)
	}

	grid, err := terrain.SampleGrid(a.hf, *originX, *originZ, *size-1)
	if err != nil {
		return err
	}

	f, err := os.Create(*output)
	if err != nil {
		return err
	}
	if err := terrain.EncodeBMP(f, grid.Image()); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", *output, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Wrote %dx%d heightmap to %s\n", *size, *size, *output)
	return nil
}

func (a *app) cmdServe(ctx context.Context) error {
	srv := server.New(a.hf, a.cfg.Tiles.TileLength)
	return srv.ListenAndServe(ctx, a.cfg.Server.Listen)
}

func parseFloatPair(args []string) (x, z float64, err error) {
	x, err = strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid x %q: %w", args[0], err)
	}
	z, err = strconv.ParseFloat(args[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid z %q: %w", args[1], err)
	}
	return x, z, nil
}

func parseIntPair(args []string) (x, z int, err error) {
	x, err = strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid x %q: %w", args[0], err)
	}
	z, err = strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid z %q: %w", args[1], err)
	}
	return x, z, nil
}
