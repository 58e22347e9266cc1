package terrain

import (
	"errors"
	"fmt"
)

// ErrInvalidLength is returned for tiles with fewer than one cell per edge.
var ErrInvalidLength = errors.New("tile length must be positive")

// SampleGrid queries the lattice heights of the tile at origin (x, z).
func SampleGrid(src Source, x, z, length int) (*Grid, error) {
	if length < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}

	side := length + 1
	heights := make([]float64, side*side)
	for dx := 0; dx < side; dx++ {
		for dz := 0; dz < side; dz++ {
			heights[dx*side+dz] = src.LatticeHeightAt(x+dx, z+dz)
		}
	}

	return &Grid{
		Origin:  Origin{X: x, Z: z},
		Length:  length,
		Heights: heights,
	}, nil
}

// At returns the height at offset (dx, dz) from the tile origin.
func (g *Grid) At(dx, dz int) float64 {
	return g.Heights[dx*(g.Length+1)+dz]
}

// Range returns the lowest and highest height in the grid.
func (g *Grid) Range() (lo, hi float64) {
	if len(g.Heights) == 0 {
		return 0, 0
	}
	lo, hi = g.Heights[0], g.Heights[0]
	for _, h := range g.Heights[1:] {
		lo = min(lo, h)
		hi = max(hi, h)
	}
	return lo, hi
}
