// Package report renders a domain.Report as stable JSON or as a
// deterministic human-readable text form.
package report

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/gabkaclassic/repomaintindex/internal/domain"
)

type metricJSON struct {
	Score       float64 `json:"score"`
	Weight      float64 `json:"weight"`
	Description string  `json:"description"`
	Details     string  `json:"details"`
}

type reportJSON struct {
	Repository     string                `json:"repository"`
	OverallScore   float64               `json:"overallScore"`
	Rating         string                `json:"rating"`
	Metrics        map[string]metricJSON `json:"metrics"`
	Recommendation string                `json:"recommendation"`
}

// RenderJSON serializes r into the stable shape: repository,
// overallScore, rating, a metrics map keyed by metric name, and
// recommendation. Scores are rounded to two decimal places.
func RenderJSON(r domain.Report) ([]byte, error) {
	metrics := make(map[string]metricJSON, len(r.Metrics))
	for _, m := range r.Metrics {
		metrics[m.Name] = metricJSON{
			Score:       round2(m.Score),
			Weight:      m.Weight,
			Description: m.Description,
			Details:     m.Details,
		}
	}

	payload := reportJSON{
		Repository:     r.RepositoryFullName,
		OverallScore:   round2(r.OverallScore),
		Rating:         string(r.Rating),
		Metrics:        metrics,
		Recommendation: r.Recommendation,
	}

	return json.Marshal(payload)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// RenderText renders r as a deterministic multi-line plain-text report.
// Metrics are listed in their Report-preserved order, not sorted, so
// the output order matches the fixed calculator order.
func RenderText(r domain.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Repository: %s\n", r.RepositoryFullName)
	fmt.Fprintf(&b, "Overall Score: %.2f\n", round2(r.OverallScore))
	fmt.Fprintf(&b, "Rating: %s\n", r.Rating)
	b.WriteString("Metrics:\n")

	for _, m := range r.Metrics {
		fmt.Fprintf(&b, "  - %s: %.2f (weight %.2f)\n", m.Name, round2(m.Score), m.Weight)
		if m.Description != "" {
			fmt.Fprintf(&b, "    %s\n", m.Description)
		}
		if m.Details != "" {
			fmt.Fprintf(&b, "    %s\n", m.Details)
		}
	}

	fmt.Fprintf(&b, "Recommendation: %s\n", r.Recommendation)

	if r.LLMAnalysis != nil {
		renderLLMAnalysis(&b, *r.LLMAnalysis)
	}

	return b.String()
}

func renderLLMAnalysis(b *strings.Builder, a domain.LLMAnalysis) {
	fmt.Fprintf(b, "AI Analysis (confidence %d, tokens used %d):\n", a.Confidence, a.TokensUsed)

	fmt.Fprintf(b, "  README: clarity %d, completeness %d, newcomer friendliness %d\n",
		a.ReadmeAnalysis.Clarity, a.ReadmeAnalysis.Completeness, a.ReadmeAnalysis.NewcomerFriendliness)
	fmt.Fprintf(b, "  Commits: clarity %d, consistency %d, informativeness %d\n",
		a.CommitAnalysis.Clarity, a.CommitAnalysis.Consistency, a.CommitAnalysis.Informativeness)
	fmt.Fprintf(b, "  Community: responsiveness %d, helpfulness %d, tone %d\n",
		a.CommunityAnalysis.Responsiveness, a.CommunityAnalysis.Helpfulness, a.CommunityAnalysis.Tone)

	if len(a.Recommendations) > 0 {
		b.WriteString("  Recommendations:\n")
		for _, rec := range a.Recommendations {
			fmt.Fprintf(b, "    [%d] %s\n", rec.Impact, rec.Text)
		}
	}
}
