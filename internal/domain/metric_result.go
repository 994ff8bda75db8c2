package domain

import "github.com/gabkaclassic/repomaintindex/pkg/apierror"

// MetricResult is the outcome of one metric calculator. The builder
// rejects out-of-range Score/Weight so every MetricResult in a Report
// satisfies spec invariant 1 by construction.
type MetricResult struct {
	Name        string
	Score       float64
	Weight      float64
	Description string
	Details     string
}

// NewMetricResult validates and constructs a MetricResult. Score must be
// in [0,100] and Weight in [0,1]; Name must be non-empty.
func NewMetricResult(name string, score, weight float64, description, details string) (MetricResult, error) {
	if name == "" {
		return MetricResult{}, apierror.NewBadInputError("name", name)
	}
	if score < 0 || score > 100 {
		return MetricResult{}, apierror.NewBadInputError("score", score)
	}
	if weight < 0 || weight > 1 {
		return MetricResult{}, apierror.NewBadInputError("weight", weight)
	}

	return MetricResult{
		Name:        name,
		Score:       score,
		Weight:      weight,
		Description: description,
		Details:     details,
	}, nil
}

// WeightedScore returns Score * Weight.
func (m MetricResult) WeightedScore() float64 {
	return m.Score * m.Weight
}
