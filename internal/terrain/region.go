package terrain

import (
	"context"
	"fmt"
	gomath "math"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/fractal-terrain/internal/logger"
)

// VisibleTiles returns the origins of the tiles covering the square of radius
// viewDistance around (x, z). Tile origins are multiples of tileLength; the
// covered range on each axis is [floor((x-d)/L)*L, ceil((x+d)/L)*L).
func VisibleTiles(x, z, viewDistance float64, tileLength int) []Origin {
	if tileLength < 1 {
		return nil
	}
	l := float64(tileLength)

	minX := int(gomath.Floor((x-viewDistance)/l)) * tileLength
	maxX := int(gomath.Ceil((x+viewDistance)/l)) * tileLength
	minZ := int(gomath.Floor((z-viewDistance)/l)) * tileLength
	maxZ := int(gomath.Ceil((z+viewDistance)/l)) * tileLength

	var origins []Origin
	for tx := minX; tx < maxX; tx += tileLength {
		for tz := minZ; tz < maxZ; tz += tileLength {
			origins = append(origins, Origin{X: tx, Z: tz})
		}
	}
	return origins
}

// GenerateRegion samples the grids of all origins in parallel with at most
// workers goroutines (GOMAXPROCS when workers <= 0). Grids are returned in
// the order of origins. Generation stops at the first error or when ctx is
// cancelled.
func GenerateRegion(ctx context.Context, src Source, origins []Origin, length, workers int) ([]*Grid, error) {
	if length < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	start := time.Now()
	grids := make([]*Grid, len(origins))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, o := range origins {
		i, o := i, o
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			grid, err := SampleGrid(src, o.X, o.Z, length)
			if err != nil {
				return fmt.Errorf("tile (%d, %d): %w", o.X, o.Z, err)
			}
			grids[i] = grid
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Debug("region generated",
		zap.Int("tiles", len(origins)),
		zap.Int("length", length),
		zap.Int("workers", workers),
		zap.Duration("elapsed", time.Since(start)))

	return grids, nil
}
