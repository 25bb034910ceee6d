package analyzer

import (
	"errors"
	"fmt"
	"math"

	"github.com/LexTOliver/web-scraping/internal/model"
)

// ErrInvalidWeights is returned when a weight set is empty, has a weight
// outside [0,1], or does not sum to 1.
var ErrInvalidWeights = errors.New("invalid score weights")

// Combiner folds a tagged sub-score set into a single composite value.
// Implementations must be pure: the same sub-scores always produce the
// same composite, so rankings stay reproducible.
type Combiner interface {
	// Combine returns the composite score for the given sub-scores.
	Combine(scores model.Subscores) float64
}

// DefaultWeights returns the default weight per sub-score tag. The
// similarity slot carries the largest weight even while its sub-score is
// fixed at zero, so rankings keep their relative order when an embedding
// backend fills it in.
func DefaultWeights() map[string]float64 {
	return map[string]float64{
		model.ScoreSimilarity: 0.4,
		model.ScorePresence:   0.3,
		model.ScorePosition:   0.2,
		model.ScoreDistance:   0.1,
	}
}

// WeightedSum combines sub-scores as a weighted sum. Because every
// sub-score lies in [0,1] and the weights sum to 1, the composite also
// lies in [0,1].
type WeightedSum struct {
	// weights maps sub-score tags to their weight.
	weights map[string]float64
}

// NewWeightedSum creates a WeightedSum after validating the weights: the
// set must be non-empty, every weight must lie in [0,1], and the weights
// must sum to 1. A nil map selects DefaultWeights.
func NewWeightedSum(weights map[string]float64) (*WeightedSum, error) {
	if weights == nil {
		weights = DefaultWeights()
	}
	if len(weights) == 0 {
		return nil, fmt.Errorf("%w: no weights given", ErrInvalidWeights)
	}

	sum := 0.0
	for tag, weight := range weights {
		if weight < 0 || weight > 1 {
			return nil, fmt.Errorf("%w: weight %q = %g outside [0,1]", ErrInvalidWeights, tag, weight)
		}
		sum += weight
	}
	if math.Abs(sum-1) > 1e-6 {
		return nil, fmt.Errorf("%w: weights sum to %g, want 1", ErrInvalidWeights, sum)
	}

	return &WeightedSum{weights: weights}, nil
}

// Combine returns the weighted sum of the sub-scores. Tags without a
// weight are ignored; tags without a sub-score contribute zero.
func (w *WeightedSum) Combine(scores model.Subscores) float64 {
	composite := 0.0
	for tag, weight := range w.weights {
		composite += weight * scores.Get(tag)
	}
	return composite
}
