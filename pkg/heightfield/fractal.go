package heightfield

import (
	"math/bits"

	"github.com/Faultbox/fractal-terrain/pkg/math"
)

// CornerAnchor is the elevation of the tile origin, the only point the
// midpoint displacement does not derive from parents.
const CornerAnchor = 0.0

// Fractal is a periodic midpoint-displacement height field over the integer
// lattice. Heights repeat every TileSize units on both axes.
//
// Every lattice point is classified by the trailing zero bits of its wrapped
// coordinates. A point whose coordinates share the same count is a center
// point and averages its four orthogonal parents; any other point is a
// midpoint and averages the two parents along its coarser axis. Each step
// then adds an offset scaled by the parent distance.
type Fractal struct {
	tileSize int
	offset   OffsetSource
	memo     *memo
}

// NewFractal creates a fractal height field. A nil offset selects the linear
// reference hash. With cache set, displaced heights are memoized for the
// lifetime of the field.
func NewFractal(tileSize int, offset OffsetSource, cache bool) (*Fractal, error) {
	if err := ValidateTileSize(tileSize); err != nil {
		return nil, err
	}
	if offset == nil {
		offset = linearOffset{tileSize: tileSize}
	}
	f := &Fractal{
		tileSize: tileSize,
		offset:   offset,
	}
	if cache {
		f.memo = newMemo(tileSize)
	}
	return f, nil
}

// TileSize returns the spatial period of the field.
func (f *Fractal) TileSize() int {
	return f.tileSize
}

// LatticeHeightAt returns the elevation at integer coordinates.
func (f *Fractal) LatticeHeightAt(x, z int) float64 {
	return f.height(x, z, 0, nil)
}

// Trace evaluates (x, z) without the memo table and reports the recursion
// it performed.
func (f *Fractal) Trace(x, z int) Trace {
	var tr Trace
	tr.Height = f.height(x, z, 0, &tr)
	return tr
}

func (f *Fractal) height(x, z, depth int, tr *Trace) float64 {
	x = math.FloorMod(x, f.tileSize)
	z = math.FloorMod(z, f.tileSize)
	if tr != nil {
		tr.enter(depth)
	}

	if x == 0 && z == 0 {
		return CornerAnchor
	}

	if tr == nil && f.memo != nil {
		if h, ok := f.memo.load(x, z); ok {
			return h
		}
	}

	h := f.displace(x, z, depth, tr)

	if tr == nil && f.memo != nil {
		f.memo.store(x, z, h)
	}
	return h
}

// displace computes a non-origin point from its parents. x and z are wrapped.
func (f *Fractal) displace(x, z, depth int, tr *Trace) float64 {
	fx, fz := factorsOfTwo(x), factorsOfTwo(z)
	next := depth + 1

	if fx == fz {
		delta := 1 << fx
		tr.level(fx)
		sum := f.height(x, z-delta, next, tr) +
			f.height(x, z+delta, next, tr) +
			f.height(x-delta, z, next, tr) +
			f.height(x+delta, z, next, tr)
		return sum/4 + f.offset.Offset(x, z, float64(delta))
	}

	var alongX bool
	switch {
	case x == 0:
		alongX = false
	case z == 0:
		alongX = true
	default:
		alongX = fx < fz
	}

	if alongX {
		dx := 1 << fx
		tr.level(fx)
		avg := (f.height(x-dx, z, next, tr) + f.height(x+dx, z, next, tr)) / 2
		return avg + f.offset.Offset(x, z, float64(dx))
	}

	dz := 1 << fz
	tr.level(fz)
	avg := (f.height(x, z-dz, next, tr) + f.height(x, z+dz, next, tr)) / 2
	return avg + f.offset.Offset(x, z, float64(dz))
}

// factorsOfTwo counts the zero bits below the lowest set bit of n.
// Zero is already resolved along its axis and reports -1.
func factorsOfTwo(n int) int {
	if n == 0 {
		return -1
	}
	return bits.TrailingZeros(uint(n))
}

// Trace describes one uncached fractal evaluation.
type Trace struct {
	Height   float64
	Calls    int // lattice lookups, including the root
	MaxDepth int // deepest call below the root
	Levels   int // distinct displacement scales used

	levels uint64
}

func (tr *Trace) enter(depth int) {
	tr.Calls++
	if depth > tr.MaxDepth {
		tr.MaxDepth = depth
	}
}

// level records a displacement scale of 2^factor. Safe on a nil Trace.
func (tr *Trace) level(factor int) {
	if tr == nil {
		return
	}
	tr.levels |= 1 << uint(factor)
	tr.Levels = bits.OnesCount64(tr.levels)
}
