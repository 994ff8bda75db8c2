package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/gabkaclassic/repomaintindex/internal/domain"
)

const activitySampleSize = 10

// ActivityCalculator scores how recently the repository has been
// touched, based on the most recent commit's timestamp.
type ActivityCalculator struct{}

func (ActivityCalculator) Name() string    { return "Activity" }
func (ActivityCalculator) Weight() float64 { return 0.15 }

func (a ActivityCalculator) Calculate(ctx context.Context, forge Forge, owner, name string) (domain.MetricResult, error) {
	commits, err := forge.GetRecentCommits(ctx, owner, name, activitySampleSize)
	if err != nil {
		return domain.MetricResult{}, err
	}

	if len(commits) == 0 {
		return domain.NewMetricResult(a.Name(), 0, a.Weight(), "Recency of repository activity", "no commits found")
	}

	days := int(time.Since(commits[0].Date).Hours() / 24)
	if days < 0 {
		days = 0
	}

	score := activityScoreForDays(days)
	details := fmt.Sprintf("latest commit %d day(s) ago", days)

	return domain.NewMetricResult(a.Name(), score, a.Weight(), "Recency of repository activity", details)
}

func activityScoreForDays(days int) float64 {
	switch {
	case days <= 7:
		return 100
	case days <= 30:
		return 90
	case days <= 90:
		return 70
	case days <= 180:
		return 50
	case days <= 365:
		return 30
	default:
		return 10
	}
}
