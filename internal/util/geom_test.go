package util

import (
	"fmt"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestGeometricSum(t *testing.T) {
	tests := []struct {
		name     string
		p        float64
		n        int
		expected float64
	}{
		{
			name:     "zero ratio keeps only the first term",
			p:        0.0,
			n:        5,
			expected: 1.0,
		},
		{
			name:     "fractional ratio",
			p:        0.5,
			n:        2,
			expected: 1.75,
		},
		{
			name:     "ratio above one",
			p:        2.0,
			n:        3,
			expected: 15.0,
		},
		{
			name:     "single term",
			p:        0.9,
			n:        0,
			expected: 1.0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, GeometricSum(tc.p, tc.n), 1e-12)
		})
	}
}

// The closed form should agree with summing the series term by term.
func TestGeometricSumMatchesTermwiseSum(t *testing.T) {
	for _, p := range []float64{0.0, 0.1, 0.5, 0.9, 0.99} {
		for _, n := range []int{0, 1, 5, 20, 100} {
			sum := 0.0
			for i := 0; i <= n; i++ {
				term := 1.0
				for j := 0; j < i; j++ {
					term *= p
				}
				sum += term
			}
			assert.InDelta(t, sum, GeometricSum(p, n), 1e-9)
		}
	}
}

func TestInfiniteGeometricSum(t *testing.T) {
	assert.InDelta(t, 1.0, InfiniteGeometricSum(0.0), 1e-12)
	assert.InDelta(t, 2.0, InfiniteGeometricSum(0.5), 1e-12)
	assert.InDelta(t, 10.0, InfiniteGeometricSum(0.9), 1e-12)
}

func TestDecayingWeights(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		decay    float64
		expected []float64
	}{
		{
			name:     "halving decay",
			count:    4,
			decay:    0.5,
			expected: []float64{0.125, 0.25, 0.5, 1.0},
		},
		{
			name:     "zero decay keeps only the newest",
			count:    3,
			decay:    0.0,
			expected: []float64{0.0, 0.0, 1.0},
		},
		{
			name:     "unit decay weighs all equally",
			count:    3,
			decay:    1.0,
			expected: []float64{1.0, 1.0, 1.0},
		},
		{
			name:     "single weight is one even with zero decay",
			count:    1,
			decay:    0.0,
			expected: []float64{1.0},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, DecayingWeights(tc.count, tc.decay))
		})
	}
}

// The weights for a series of length n should total the geometric sum of order n-1.
func TestDecayingWeightsTotalMatchesGeometricSum(t *testing.T) {
	for _, decay := range []float64{0.0, 0.25, 0.5, 0.8, 0.99} {
		for _, count := range []int{1, 2, 10, 50} {
			total := 0.0
			for _, w := range DecayingWeights(count, decay) {
				total += w
			}
			assert.InDelta(t, GeometricSum(decay, count-1), total, 1e-6)
		}
	}
}

func TestDecayingWeightsProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("weights total the geometric sum", prop.ForAll(
		func(count int, decay float64) string {
			total := 0.0
			for _, w := range DecayingWeights(count, decay) {
				total += w
			}
			expected := GeometricSum(decay, count-1)
			if math.Abs(total-expected) > 1e-6 {
				return fmt.Sprintf("expected %v, got %v", expected, total)
			}
			return ""
		},
		gen.IntRange(1, 200),
		gen.Float64Range(0, 0.999),
	))

	properties.TestingRun(t)
}
