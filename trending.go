package trending

import (
	"errors"
	"math"

	"github.com/trending-go/trending-go/internal/util"
)

// ErrSeriesTooShort is returned when a series contains fewer than two values, which leaves
// no consecutive pair to compute a growth rate from.
var ErrSeriesTooShort = errors.New("series must contain at least two values")

// ErrNonPositiveValue is returned when a value reaching the growth rate computation, after
// any smoothing and pseudo count offset, is zero, negative, or NaN.
var ErrNonPositiveValue = errors.New("series values must be positive")

// ErrDecayOutOfRange is returned when a decay parameter is outside [0, 1] or NaN.
var ErrDecayOutOfRange = errors.New("decay must be between 0 and 1")

// ErrWindowOutOfRange is returned when a smoothing window is smaller than 1 or larger than
// the series being scored.
var ErrWindowOutOfRange = errors.New("smoothing window must be between 1 and the series length")

// ErrPseudoCountOutOfRange is returned when a pseudo count is negative or NaN.
var ErrPseudoCountOutOfRange = errors.New("pseudo count must be non-negative")

// Scorer computes trending scores for series of observations. The score of a series is the
// weighted geometric mean of its period over period growth rates, with weights that decay
// geometrically as rates get older so that recent movement dominates. A score above 1
// means the series is trending up, a score below 1 means it is trending down, and a
// constant series scores exactly 1.
//
// This type is concurrency safe.
type Scorer interface {
	// Score returns the trending score for the series.
	//
	// It returns ErrSeriesTooShort if the series contains fewer than two values,
	// ErrDecayOutOfRange if the Scorer's decay parameter is outside [0, 1],
	// ErrWindowOutOfRange if a configured smoothing window exceeds the series length,
	// ErrPseudoCountOutOfRange if a configured pseudo count is negative, and
	// ErrNonPositiveValue if any value is not positive once smoothing and the pseudo
	// count offset are applied.
	Score(series []float64) (float64, error)

	// Decay returns the decay parameter that growth rate weights are computed with.
	Decay() float64
}

// ScorerBuilder builds Scorers.
//
// This type is not concurrency safe.
type ScorerBuilder interface {
	// WithSmoothing configures a trailing moving average over window values to be applied
	// to a series before growth rates are computed, which dampens spiky series. The window
	// must be between 1 and the length of the series being scored. A window of 0 leaves
	// the series unsmoothed.
	WithSmoothing(window int) ScorerBuilder

	// WithPseudoCount configures a non-negative pseudoCount to be added to every value
	// before growth rates are computed, which dampens the explosive rates that near zero
	// values produce. Larger pseudo counts bias scores toward 1.
	WithPseudoCount(pseudoCount float64) ScorerBuilder

	// Build returns a new Scorer using the builder's configuration.
	Build() Scorer
}

type scorerConfig struct {
	decay       float64
	window      int
	pseudoCount float64
}

var _ ScorerBuilder = &scorerConfig{}

type scorer struct {
	config *scorerConfig
}

var _ Scorer = &scorer{}

// With returns a Scorer for the decay parameter. The decay controls how quickly the
// influence of older growth rates fades: each step back in time multiplies a rate's
// weight by decay, so a decay of 0 scores only the most recent movement and a decay of 1
// weighs all movement equally.
func With(decay float64) Scorer {
	return Builder(decay).Build()
}

// Builder returns a ScorerBuilder which builds Scorers for the decay parameter. The decay
// controls how quickly the influence of older growth rates fades: each step back in time
// multiplies a rate's weight by decay, so a decay of 0 scores only the most recent
// movement and a decay of 1 weighs all movement equally.
func Builder(decay float64) ScorerBuilder {
	return &scorerConfig{
		decay: decay,
	}
}

// Score returns the trending score for the series using the decay parameter, with no
// smoothing and no pseudo count. See Scorer.Score for the errors it returns.
func Score(series []float64, decay float64) (float64, error) {
	return With(decay).Score(series)
}

func (c *scorerConfig) WithSmoothing(window int) ScorerBuilder {
	c.window = window
	return c
}

func (c *scorerConfig) WithPseudoCount(pseudoCount float64) ScorerBuilder {
	c.pseudoCount = pseudoCount
	return c
}

func (c *scorerConfig) Build() Scorer {
	cCopy := *c
	return &scorer{
		config: &cCopy,
	}
}

func (s *scorer) Score(series []float64) (float64, error) {
	config := s.config
	if len(series) < 2 {
		return 0, ErrSeriesTooShort
	}
	if math.IsNaN(config.decay) || config.decay < 0 || config.decay > 1 {
		return 0, ErrDecayOutOfRange
	}
	if config.window != 0 && (config.window < 1 || config.window > len(series)) {
		return 0, ErrWindowOutOfRange
	}
	if math.IsNaN(config.pseudoCount) || config.pseudoCount < 0 {
		return 0, ErrPseudoCountOutOfRange
	}

	values := series
	if config.window > 1 {
		values = util.SmoothSeries(series, config.window)
	}
	if config.pseudoCount > 0 {
		offset := make([]float64, len(values))
		for i, value := range values {
			offset[i] = value + config.pseudoCount
		}
		values = offset
	}
	for _, value := range values {
		if value <= 0 || math.IsNaN(value) {
			return 0, ErrNonPositiveValue
		}
	}

	rates := util.GrowthRates(values)
	weights := util.DecayingWeights(len(rates), config.decay)
	return util.WeightedGeometricMean(rates, weights), nil
}

func (s *scorer) Decay() float64 {
	return s.config.decay
}
