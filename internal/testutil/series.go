package testutil

import (
	"gonum.org/v1/gonum/mathext/prng"
)

// Source produces the pseudo-random numbers that drive generated series.
type Source interface {
	// Uint64 returns a random number in [0, MaxUint64] and advances the
	// generator's state.
	Uint64() uint64
}

// NewSource returns a deterministic Source for the seed, so that series generated in
// tests are reproducible across runs.
func NewSource(seed uint64) Source {
	source := prng.NewMT19937()
	source.Seed(seed)
	return source
}

// RandomWalk returns a series of the given length that starts at start and then steps by
// -1, 0, or +1 at each position, flooring at zero. Floored series can contain zeros, which
// scoring rejects unless a pseudo count lifts them.
func RandomWalk(length int, start float64, source Source) []float64 {
	series := make([]float64, length)
	value := start
	for i := range series {
		series[i] = value
		// step in {-1, 0, +1}
		value += float64(source.Uint64()%3) - 1
		if value < 0 {
			value = 0
		}
	}
	return series
}

// ConstantSeries returns a series of the given length that holds value at every position.
func ConstantSeries(length int, value float64) []float64 {
	series := make([]float64, length)
	for i := range series {
		series[i] = value
	}
	return series
}
