package domain

import "github.com/gabkaclassic/repomaintindex/pkg/apierror"

// Rating is the categorical label derived purely from a Report's
// OverallScore via the table in ratingFor.
type Rating string

const (
	RatingExcellent Rating = "EXCELLENT"
	RatingGood      Rating = "GOOD"
	RatingFair      Rating = "FAIR"
	RatingPoor      Rating = "POOR"
	RatingCritical  Rating = "CRITICAL"
)

// ratingFor maps an overall score to its rating band. Bounds are
// inclusive on the lower edge, exclusive on the upper edge.
func ratingFor(overallScore float64) Rating {
	switch {
	case overallScore >= 90:
		return RatingExcellent
	case overallScore >= 75:
		return RatingGood
	case overallScore >= 60:
		return RatingFair
	case overallScore >= 40:
		return RatingPoor
	default:
		return RatingCritical
	}
}

// Report is the immutable result of one analysis run. Metrics preserves
// calculator insertion order (Documentation, Commit Quality, Activity,
// Issue Management, Community, Branch Management).
type Report struct {
	RepositoryFullName string
	OverallScore       float64
	Rating             Rating
	Metrics            []MetricResult
	Recommendation     string
	LLMAnalysis        *LLMAnalysis
}

// NewReport computes OverallScore from the weighted metrics (spec
// invariant 2) and derives Rating from it (invariant 3). It does not
// build the Recommendation string — that is the orchestrator's job,
// since it depends on band-specific prose the domain model doesn't own.
func NewReport(repositoryFullName string, metrics []MetricResult, recommendation string) (Report, error) {
	if repositoryFullName == "" {
		return Report{}, apierror.NewBadInputError("repositoryFullName", repositoryFullName)
	}

	var weightedSum, weightSum float64
	for _, m := range metrics {
		weightedSum += m.WeightedScore()
		weightSum += m.Weight
	}

	var overall float64
	if weightSum > 0 {
		overall = weightedSum / weightSum
	}

	return Report{
		RepositoryFullName: repositoryFullName,
		OverallScore:       overall,
		Rating:             ratingFor(overall),
		Metrics:            metrics,
		Recommendation:     recommendation,
	}, nil
}

// MetricByName returns the metric with the given name and whether it
// was found. Metrics is small (six entries) so a linear scan is simplest.
func (r Report) MetricByName(name string) (MetricResult, bool) {
	for _, m := range r.Metrics {
		if m.Name == name {
			return m, true
		}
	}
	return MetricResult{}, false
}

// WithLLMAnalysis returns a copy of the report with LLMAnalysis set.
// Report fields are otherwise immutable once returned by the
// orchestrator, so enrichment produces a new value rather than mutating
// the original in place.
func (r Report) WithLLMAnalysis(analysis LLMAnalysis) Report {
	r.LLMAnalysis = &analysis
	return r
}
