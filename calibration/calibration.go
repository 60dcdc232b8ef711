package calibration

import (
	"errors"
	"math"

	"github.com/trending-go/trending-go"
	"github.com/trending-go/trending-go/internal/util"
)

// ErrFractionOutOfRange is returned when a target fraction is outside (0, 1) or NaN.
var ErrFractionOutOfRange = errors.New("target fraction must be between 0 and 1 exclusive")

// ErrRecentCountOutOfRange is returned when a recent observation count is smaller than 1.
var ErrRecentCountOutOfRange = errors.New("recent count must be at least 1")

// ErrTotalCountOutOfRange is returned when a total observation count is smaller than the
// recent count it bounds.
var ErrTotalCountOutOfRange = errors.New("total count must be at least the recent count")

// ErrErrorBoundOutOfRange is returned when an error bound is zero, negative, or NaN.
var ErrErrorBoundOutOfRange = errors.New("error bound must be positive")

const defaultErrorBound = 1e-6

/*
Calibrator solves for the decay parameter that makes the most recent observations of a
series carry a chosen share of the total weight mass. The share carried by the newest
recentCount observations shrinks monotonically as the decay parameter grows, from 1 at a
decay of 0, where all weight sits on the newest observation, down to recentCount divided
by the total count at a decay of 1, or to 0 when the series is unbounded. That
monotonicity is what makes bisection over the decay parameter valid.

A Calibrator measures weight mass against an unbounded series unless a total observation
count is configured via CalibratorBuilder.

This type is concurrency safe.
*/
type Calibrator interface {
	// FindDecay returns the decay parameter at which the newest recentCount observations
	// carry targetFraction of the total weight mass, found by bisection over [0, 1]. The
	// search stops once the bracketing interval is narrower than the error bound, or
	// immediately if some midpoint hits targetFraction exactly. Target fractions outside
	// FeasibleFractions converge to a boundary decay of 0 or 1 rather than failing.
	//
	// It returns ErrFractionOutOfRange if targetFraction is not strictly between 0 and 1,
	// ErrRecentCountOutOfRange or ErrTotalCountOutOfRange if the configured counts are
	// invalid, and ErrErrorBoundOutOfRange if the configured error bound is not positive.
	FindDecay(targetFraction float64) (float64, error)

	// WeightFraction returns the fraction of the total weight mass that the newest
	// recentCount observations carry at the given decay parameter.
	//
	// It returns trending.ErrDecayOutOfRange if decay is outside [0, 1], and
	// ErrRecentCountOutOfRange or ErrTotalCountOutOfRange if the configured counts are
	// invalid.
	WeightFraction(decay float64) (float64, error)

	// FeasibleFractions returns the smallest and largest weight fractions that any decay
	// parameter in [0, 1] can produce for the Calibrator's counts. Target fractions
	// outside this range cause FindDecay to converge to a boundary decay.
	FeasibleFractions() (min float64, max float64)

	// RecentCount returns the number of newest observations whose weight share the
	// Calibrator measures.
	RecentCount() int
}

// CalibratorBuilder builds Calibrators.
//
// This type is not concurrency safe.
type CalibratorBuilder interface {
	// WithTotalCount configures the total observation count that weight mass is measured
	// against, which must be at least the recent count. A total count of 0 measures
	// against an unbounded series.
	WithTotalCount(totalCount int) CalibratorBuilder

	// WithErrorBound configures how narrow the bisection interval must become before
	// FindDecay stops, in decay parameter units. Defaults to 1e-6.
	WithErrorBound(errorBound float64) CalibratorBuilder

	// Build returns a new Calibrator using the builder's configuration.
	Build() Calibrator
}

type calibratorConfig struct {
	recentCount int
	totalCount  int
	errorBound  float64
}

var _ CalibratorBuilder = &calibratorConfig{}

type calibrator struct {
	config *calibratorConfig
}

var _ Calibrator = &calibrator{}

// For returns a Calibrator that measures the weight share of the newest recentCount
// observations against an unbounded series, with an error bound of 1e-6.
func For(recentCount int) Calibrator {
	return Builder(recentCount).Build()
}

// Builder returns a CalibratorBuilder which builds Calibrators that measure the weight
// share of the newest recentCount observations against an unbounded series, unless a
// total count is configured.
func Builder(recentCount int) CalibratorBuilder {
	return &calibratorConfig{
		recentCount: recentCount,
		errorBound:  defaultErrorBound,
	}
}

// FindDecay returns the decay parameter at which the newest recentCount observations of
// an unbounded series carry targetFraction of the total weight mass. See
// Calibrator.FindDecay for the errors it returns.
func FindDecay(targetFraction float64, recentCount int) (float64, error) {
	return For(recentCount).FindDecay(targetFraction)
}

// WeightFraction returns the fraction of the total weight mass of an unbounded series
// that the newest recentCount observations carry at the given decay parameter. See
// Calibrator.WeightFraction for the errors it returns.
func WeightFraction(decay float64, recentCount int) (float64, error) {
	return For(recentCount).WeightFraction(decay)
}

func (c *calibratorConfig) WithTotalCount(totalCount int) CalibratorBuilder {
	c.totalCount = totalCount
	return c
}

func (c *calibratorConfig) WithErrorBound(errorBound float64) CalibratorBuilder {
	c.errorBound = errorBound
	return c
}

func (c *calibratorConfig) Build() Calibrator {
	cCopy := *c
	return &calibrator{
		config: &cCopy,
	}
}

func (c *calibrator) FindDecay(targetFraction float64) (float64, error) {
	if err := c.validateCounts(); err != nil {
		return 0, err
	}
	config := c.config
	if math.IsNaN(config.errorBound) || config.errorBound <= 0 {
		return 0, ErrErrorBoundOutOfRange
	}
	if math.IsNaN(targetFraction) || targetFraction <= 0 || targetFraction >= 1 {
		return 0, ErrFractionOutOfRange
	}

	low, high := 0.0, 1.0
	decay := (low + high) / 2
	for high-low > config.errorBound {
		fraction := c.fraction(decay)
		if fraction > targetFraction {
			low = decay
		} else if fraction < targetFraction {
			high = decay
		} else {
			return decay, nil
		}
		decay = (low + high) / 2
	}
	return decay, nil
}

func (c *calibrator) WeightFraction(decay float64) (float64, error) {
	if err := c.validateCounts(); err != nil {
		return 0, err
	}
	if math.IsNaN(decay) || decay < 0 || decay > 1 {
		return 0, trending.ErrDecayOutOfRange
	}
	return c.fraction(decay), nil
}

func (c *calibrator) FeasibleFractions() (float64, float64) {
	return c.fraction(1), c.fraction(0)
}

func (c *calibrator) RecentCount() int {
	return c.config.recentCount
}

// fraction computes the weight share of the newest recentCount observations at a decay
// already known to be in [0, 1], for counts already validated.
func (c *calibrator) fraction(decay float64) float64 {
	config := c.config
	if decay == 1 {
		if config.totalCount == 0 {
			return 0
		}
		return float64(config.recentCount) / float64(config.totalCount)
	}
	recent := util.GeometricSum(decay, config.recentCount-1)
	if config.totalCount == 0 {
		return recent / util.InfiniteGeometricSum(decay)
	}
	return recent / util.GeometricSum(decay, config.totalCount-1)
}

func (c *calibrator) validateCounts() error {
	config := c.config
	if config.recentCount < 1 {
		return ErrRecentCountOutOfRange
	}
	if config.totalCount != 0 && config.totalCount < config.recentCount {
		return ErrTotalCountOutOfRange
	}
	return nil
}
