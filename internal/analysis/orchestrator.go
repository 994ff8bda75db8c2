// Package analysis runs the six metric calculators against a
// repository and assembles their results into a Report.
package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/gabkaclassic/repomaintindex/internal/domain"
	"github.com/gabkaclassic/repomaintindex/internal/metrics"
)

// Orchestrator runs the fixed calculator registry sequentially and
// aggregates the results into a Report. Forge calls dominate the wall
// clock and calculators share no state worth exploiting in parallel, so
// sequential execution keeps ordering and rate-limit accounting simple.
type Orchestrator struct {
	forge       metrics.Forge
	calculators []metrics.Calculator
}

// NewOrchestrator builds an Orchestrator over the fixed six-calculator
// registry.
func NewOrchestrator(forge metrics.Forge) *Orchestrator {
	return &Orchestrator{
		forge:       forge,
		calculators: metrics.Registry(),
	}
}

// Analyze runs every calculator in order against owner/name. If any
// calculator returns an error, analysis aborts immediately and that
// error is returned — there is no partial report.
func (o *Orchestrator) Analyze(ctx context.Context, owner, name string) (domain.Report, error) {
	results := make([]domain.MetricResult, 0, len(o.calculators))

	for _, calc := range o.calculators {
		result, err := calc.Calculate(ctx, o.forge, owner, name)
		if err != nil {
			return domain.Report{}, err
		}
		results = append(results, result)
	}

	recommendation := buildRecommendation(results)

	return domain.NewReport(fmt.Sprintf("%s/%s", owner, name), results, recommendation)
}

// buildRecommendation composes a lead sentence keyed by the overall
// score's band, followed by either a congratulatory line or a list of
// underperforming metrics in their report insertion order.
func buildRecommendation(results []domain.MetricResult) string {
	var weightedSum, weightSum float64
	for _, m := range results {
		weightedSum += m.WeightedScore()
		weightSum += m.Weight
	}

	var overall float64
	if weightSum > 0 {
		overall = weightedSum / weightSum
	}

	lead := recommendationLead(overall)

	var weak []string
	for _, m := range results {
		if m.Score < 60 {
			weak = append(weak, m.Name)
		}
	}

	if len(weak) == 0 {
		return lead + " Keep up the good work!"
	}

	return fmt.Sprintf("%s Focus on improving: %s.", lead, strings.Join(weak, ", "))
}

func recommendationLead(overall float64) string {
	switch {
	case overall >= 90:
		return "Excellent repository health."
	case overall >= 75:
		return "Good repository health."
	case overall >= 60:
		return "Fair repository health."
	default:
		return "Needs improvement."
	}
}
