package heightfield

import (
	gomath "math"

	"github.com/Faultbox/fractal-terrain/pkg/math"
)

// LatticeSource answers elevation queries on the integer lattice.
type LatticeSource interface {
	LatticeHeightAt(x, z int) float64
}

// Interpolator extends a lattice source to real coordinates by bilinear
// interpolation of the four surrounding lattice points.
type Interpolator struct {
	Lattice LatticeSource
}

// HeightAt returns the elevation at real coordinates. Integer coordinates are
// answered by the lattice directly.
func (ip Interpolator) HeightAt(x, z float64) float64 {
	if math.IsInteger(x) && math.IsInteger(z) {
		return ip.Lattice.LatticeHeightAt(int(x), int(z))
	}

	x1 := int(gomath.Floor(x))
	z1 := int(gomath.Floor(z))
	// The far corner is floor+1, not ceil. With one integer axis ceil would
	// collapse that axis and zero every weight; floor+1 keeps the fractional
	// axis blending between its two neighbours.
	x2, z2 := x1+1, z1+1

	h11 := ip.Lattice.LatticeHeightAt(x1, z1)
	h12 := ip.Lattice.LatticeHeightAt(x1, z2)
	h21 := ip.Lattice.LatticeHeightAt(x2, z1)
	h22 := ip.Lattice.LatticeHeightAt(x2, z2)

	w := BilinearWeights(x, z)
	return h11*w[0] + h12*w[1] + h21*w[2] + h22*w[3]
}

// BilinearWeights returns the corner weights for (x, z) in the order
// (x1,z1), (x1,z2), (x2,z1), (x2,z2), where x1/z1 are the floors and
// x2/z2 = x1+1, z1+1. The weights always sum to 1; on an integer axis the
// far corners get weight 0.
func BilinearWeights(x, z float64) [4]float64 {
	x1, z1 := gomath.Floor(x), gomath.Floor(z)
	x2, z2 := x1+1, z1+1
	dx1, dx2 := x-x1, x2-x
	dz1, dz2 := z-z1, z2-z
	return [4]float64{
		dx2 * dz2,
		dx2 * dz1,
		dx1 * dz2,
		dx1 * dz1,
	}
}
