package heightfield

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/Faultbox/fractal-terrain/pkg/math"
)

// OffsetSource yields the displacement added at a lattice point.
// Implementations are pure: the result depends only on the arguments.
type OffsetSource interface {
	Offset(x, z int, scale float64) float64
}

// OffsetKind selects the displacement hash.
type OffsetKind int

// Offset variants.
const (
	LinearOffset OffsetKind = iota // Coordinate-linear hash, the reference terrain
	MixedOffset                    // xxhash of the wrapped point, better mixing
)

// String returns the configuration name of the variant.
func (k OffsetKind) String() string {
	switch k {
	case LinearOffset:
		return "linear"
	case MixedOffset:
		return "mixed"
	default:
		return fmt.Sprintf("OffsetKind(%d)", int(k))
	}
}

// ParseOffsetKind converts a configuration name to an OffsetKind.
func ParseOffsetKind(s string) (OffsetKind, error) {
	switch s {
	case "linear", "":
		return LinearOffset, nil
	case "mixed":
		return MixedOffset, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOffset, s)
	}
}

// NewOffsetSource returns the offset hash of the given kind for a tile size.
func NewOffsetSource(kind OffsetKind, tileSize int) (OffsetSource, error) {
	switch kind {
	case LinearOffset:
		return linearOffset{tileSize: tileSize}, nil
	case MixedOffset:
		return mixedOffset{tileSize: tileSize}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownOffset, kind)
	}
}

// linearOffset keys a linear hash by x*tileSize+z. Nearby seeds are
// correlated; the terrain shape depends on this exact formula.
type linearOffset struct {
	tileSize int
}

func (o linearOffset) Offset(x, z int, scale float64) float64 {
	seed := int64(x)*int64(o.tileSize) + int64(z)
	unit := float64(seed*10301%1000) / 1000
	return scale * (unit - 0.5)
}

// mixedOffset hashes the wrapped point with xxhash and maps the top 53 bits
// to a unit value in [0, 1).
type mixedOffset struct {
	tileSize int
}

func (o mixedOffset) Offset(x, z int, scale float64) float64 {
	var key [16]byte
	binary.LittleEndian.PutUint64(key[0:8], uint64(math.FloorMod(x, o.tileSize)))
	binary.LittleEndian.PutUint64(key[8:16], uint64(math.FloorMod(z, o.tileSize)))
	h := xxhash.Sum64(key[:])
	unit := float64(h>>11) / (1 << 53)
	return scale * (unit - 0.5)
}
