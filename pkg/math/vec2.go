// Package math provides the small vector and scalar helpers shared by the
// height field and the mesh builder.
package math

// Vec2 is a 2D vector on the horizontal (x, z) plane.
// Components are float64 so noise evaluation keeps full precision.
type Vec2 struct {
	X, Z float64
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Z - other.Z}
}

// Dot returns the dot product.
func (v Vec2) Dot(other Vec2) float64 {
	return v.X*other.X + v.Z*other.Z
}
