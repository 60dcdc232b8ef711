package util

import "math"

// GeometricSum returns the sum of the geometric series 1 + p + p^2 + ... + p^n for a
// non-negative ratio p. The ratio must not equal 1, where the closed form divides by zero
// and callers can sum the series as n + 1 instead.
func GeometricSum(p float64, n int) float64 {
	return (1 - math.Pow(p, float64(n+1))) / (1 - p)
}

// InfiniteGeometricSum returns the sum of the infinite geometric series 1 + p + p^2 + ...
// for a ratio p in [0, 1).
func InfiniteGeometricSum(p float64) float64 {
	return 1 / (1 - p)
}

// DecayingWeights returns count weights that decay geometrically with age, ordered oldest
// first. The newest weight is always 1 and each step back in time multiplies the weight by
// decay, so weights[i] = decay^(count-1-i). A decay of 0 leaves all weight on the newest
// position and a decay of 1 weighs all positions equally.
func DecayingWeights(count int, decay float64) []float64 {
	weights := make([]float64, count)
	for i := range weights {
		weights[i] = math.Pow(decay, float64(count-1-i))
	}
	return weights
}
