// Package physics provides interpolation and lane geometry helpers.
package physics

import "math"

// Lerp linearly interpolates between a and b. t is clamped to [0,1].
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*Clamp(t, 0, 1)
}

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// WithinLane reports whether two lateral positions are closer than radius.
func WithinLane(x1, x2, radius float64) bool {
	return math.Abs(x1-x2) < radius
}

// Scale maps v from the range [fromLo, fromHi] onto [toLo, toHi].
// A degenerate source range maps everything to toLo.
func Scale(v, fromLo, fromHi, toLo, toHi float64) float64 {
	span := fromHi - fromLo
	if span == 0 {
		return toLo
	}
	return toLo + (v-fromLo)/span*(toHi-toLo)
}
