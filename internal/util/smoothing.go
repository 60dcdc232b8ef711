package util

// MovingAverage is a trailing moving average over a fixed window of samples. Until the
// window fills, the average covers only the samples recorded so far.
//
// This type is not concurrency safe.
type MovingAverage struct {
	values []float64

	// Mutable state
	index int
	size  int
	sum   float64
}

// NewMovingAverage creates a new MovingAverage over the most recent window samples. The
// window must be positive.
func NewMovingAverage(window int) *MovingAverage {
	return &MovingAverage{
		values: make([]float64, window),
	}
}

// Add records a value and returns the updated average.
func (a *MovingAverage) Add(value float64) float64 {
	if a.size == len(a.values) {
		a.sum -= a.values[a.index]
	} else {
		a.size++
	}
	a.values[a.index] = value
	a.sum += value
	a.index = (a.index + 1) % len(a.values)
	return a.Value()
}

// Value gets the current value of the moving average, or 0 if no samples were recorded.
func (a *MovingAverage) Value() float64 {
	if a.size == 0 {
		return 0
	}
	return a.sum / float64(a.size)
}

// Reset resets the moving average to an empty window.
func (a *MovingAverage) Reset() {
	for i := range a.values {
		a.values[i] = 0
	}
	a.index = 0
	a.size = 0
	a.sum = 0
}

// SmoothSeries returns a copy of the series where each value is replaced with the trailing
// moving average of the window values ending at that position. Until the window fills, each
// average covers only the values recorded so far, so the result has the same length as the
// series and a window of 1 copies the series unchanged.
func SmoothSeries(series []float64, window int) []float64 {
	smoothed := make([]float64, len(series))
	average := NewMovingAverage(window)
	for i, value := range series {
		smoothed[i] = average.Add(value)
	}
	return smoothed
}
