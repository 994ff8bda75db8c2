package metrics

import (
	"context"
	"errors"
	"fmt"

	"github.com/gabkaclassic/repomaintindex/internal/domain"
	"github.com/gabkaclassic/repomaintindex/pkg/apierror"
)

// IssueManagementCalculator scores how well the repository's issue
// backlog is kept under control, estimating a closure rate when the
// forge cannot return an exact closed-issue count.
type IssueManagementCalculator struct{}

func (IssueManagementCalculator) Name() string    { return "Issue Management" }
func (IssueManagementCalculator) Weight() float64 { return 0.20 }

func (c IssueManagementCalculator) Calculate(ctx context.Context, forge Forge, owner, name string) (domain.MetricResult, error) {
	repo, err := forge.GetRepository(ctx, owner, name)
	if err != nil {
		return domain.MetricResult{}, err
	}

	if !repo.HasIssues {
		return domain.NewMetricResult(c.Name(), 50, c.Weight(), "Backlog health of open issues", "disabled")
	}

	open := repo.OpenIssues

	closed, err := forge.GetClosedIssuesCount(ctx, owner, name)
	if err != nil {
		if !errors.Is(err, apierror.ErrForgeTooLarge) {
			return domain.MetricResult{}, err
		}
		closed = estimateClosedIssues(open)
	}

	total := open + closed
	var score float64
	var details string

	if total == 0 {
		score = 80
		details = "no issues opened or closed yet"
	} else {
		rate := 100 * float64(closed) / float64(total)
		score = issueBaseScoreForRate(rate)
		score = applyBacklogMultiplier(score, open)
		if score > 100 {
			score = 100
		}
		details = fmt.Sprintf("open=%d closed=%d rate=%.1f%%", open, closed, rate)
	}

	return domain.NewMetricResult(c.Name(), score, c.Weight(), "Backlog health of open issues", details)
}

// estimateClosedIssues assumes a 70% lifetime closure rate when the
// forge cannot report the closed count directly (too large to page).
func estimateClosedIssues(open int) int {
	estimate := int(float64(open) / 0.3 * 0.7)
	if estimate < 0 {
		estimate = 0
	}
	return estimate
}

func issueBaseScoreForRate(rate float64) float64 {
	switch {
	case rate >= 80:
		return 100
	case rate >= 60:
		return 85
	case rate >= 40:
		return 70
	case rate >= 20:
		return 50
	default:
		return 30
	}
}

func applyBacklogMultiplier(score float64, open int) float64 {
	switch {
	case open > 100:
		return score * 0.8
	case open > 50:
		return score * 0.9
	default:
		return score
	}
}
