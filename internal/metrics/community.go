package metrics

import (
	"context"
	"fmt"

	"github.com/gabkaclassic/repomaintindex/internal/domain"
)

// CommunityCalculator scores the repository's external traction:
// stars, forks, and the size of its contributor base.
type CommunityCalculator struct{}

func (CommunityCalculator) Name() string    { return "Community" }
func (CommunityCalculator) Weight() float64 { return 0.15 }

func (c CommunityCalculator) Calculate(ctx context.Context, forge Forge, owner, name string) (domain.MetricResult, error) {
	repo, err := forge.GetRepository(ctx, owner, name)
	if err != nil {
		return domain.MetricResult{}, err
	}

	contributors, err := forge.GetContributorCount(ctx, owner, name)
	if err != nil {
		return domain.MetricResult{}, err
	}

	starScore := capAt100(float64(repo.Stars) / 10)
	forkScore := capAt100(float64(repo.Forks) / 5)
	contribScore := capAt100(float64(contributors) * 10)

	score := 0.4*starScore + 0.3*forkScore + 0.3*contribScore
	details := fmt.Sprintf("stars=%d forks=%d contributors=%d", repo.Stars, repo.Forks, contributors)

	return domain.NewMetricResult(c.Name(), score, c.Weight(), "Community engagement and reach", details)
}

func capAt100(v float64) float64 {
	if v > 100 {
		return 100
	}
	return v
}
