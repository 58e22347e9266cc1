package math

import "math"

// Lerp linearly interpolates between a and b.
func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Smootherstep is Ken Perlin's quintic easing curve. Its first and second
// derivatives are zero at both edges.
func Smootherstep(edge0, edge1, v float64) float64 {
	t := Clamp((v-edge0)/(edge1-edge0), 0, 1)
	return t * t * t * (t*(t*6-15) + 10)
}

// Fract returns the fractional part of v, always in [0, 1).
func Fract(v float64) float64 {
	return v - math.Floor(v)
}

// FloorMod returns v modulo n in [0, n) for n > 0, also for negative v.
func FloorMod(v, n int) int {
	return (v%n + n) % n
}

// IsInteger reports whether v has no fractional part.
func IsInteger(v float64) bool {
	return v == math.Floor(v)
}
