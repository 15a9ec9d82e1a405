package utils

import "math"

// NormalizeL2 scales x in place to unit L2 norm and returns the original norm.
// If the norm is zero, x is unchanged.
func NormalizeL2(x []float64) float64 {
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	if sum == 0 {
		return 0
	}
	norm := math.Sqrt(sum)
	for i := range x {
		x[i] /= norm
	}
	return norm
}

// Clamp01 limits x to [0, 1].
func Clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
