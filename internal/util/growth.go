package util

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// GrowthRates returns the period over period growth rates for a series, where each rate is
// the ratio of a value to the value before it. The series must contain at least two
// positive values, which yields one rate per consecutive pair.
func GrowthRates(series []float64) []float64 {
	rates := make([]float64, len(series)-1)
	for i := range rates {
		rates[i] = series[i+1] / series[i]
	}
	return rates
}

// WeightedGeometricMean returns the weighted geometric mean of the values, computed in log
// space so that long series cannot overflow an intermediate product. The values must be
// positive and the weights non-negative with a positive sum, with one weight per value.
func WeightedGeometricMean(values, weights []float64) float64 {
	logs := make([]float64, len(values))
	for i, v := range values {
		logs[i] = weights[i] * math.Log(v)
	}
	return math.Exp(floats.Sum(logs) / floats.Sum(weights))
}
