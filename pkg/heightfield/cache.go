package heightfield

import (
	gomath "math"
	"sync/atomic"
)

// memo is a dense table of already displaced lattice heights for one tile.
// Slots are written at most once per value; concurrent writers always store
// the same bits, so reads need no lock.
type memo struct {
	size   int
	bits   []atomic.Uint64
	filled []atomic.Bool
}

func newMemo(tileSize int) *memo {
	n := tileSize * tileSize
	return &memo{
		size:   tileSize,
		bits:   make([]atomic.Uint64, n),
		filled: make([]atomic.Bool, n),
	}
}

// load expects wrapped coordinates.
func (m *memo) load(x, z int) (float64, bool) {
	i := x*m.size + z
	if !m.filled[i].Load() {
		return 0, false
	}
	return gomath.Float64frombits(m.bits[i].Load()), true
}

// store expects wrapped coordinates.
func (m *memo) store(x, z int, h float64) {
	i := x*m.size + z
	m.bits[i].Store(gomath.Float64bits(h))
	m.filled[i].Store(true)
}

// count returns the number of filled slots.
func (m *memo) count() int {
	n := 0
	for i := range m.filled {
		if m.filled[i].Load() {
			n++
		}
	}
	return n
}
