// Package floatutils provides utilities for working with floats
package floatutils

import (
	"math"

	"gonum.org/v1/gonum/spatial/r1"
)

// Clip clips a floating point to within a minimum and maximum value.
// If the floating point exceeds max, then the function returns the max
// If min exceeds the floating point, then the function returns the min.
// NaN is clipped to min.
func Clip(value, min, max float64) float64 {
	if math.IsNaN(value) {
		return min
	}
	clipped := math.Min(value, max)
	return math.Max(clipped, min)
}

// Normalize maps value from the interval to [0, 1]. Values outside the
// interval map outside [0, 1].
func Normalize(value float64, interval r1.Interval) float64 {
	return (value - interval.Min) / (interval.Max - interval.Min)
}

// Sign returns -1, 0, or 1 depending on the sign of value. NaN has
// sign 0.
func Sign(value float64) int {
	switch {
	case value > 0:
		return 1
	case value < 0:
		return -1
	default:
		return 0
	}
}
