package metrics

import (
	"context"
	"fmt"

	"github.com/gabkaclassic/repomaintindex/internal/domain"
)

// BranchManagementCalculator scores how tidy the repository's branch
// list is, penalizing large sprawl.
type BranchManagementCalculator struct{}

func (BranchManagementCalculator) Name() string    { return "Branch Management" }
func (BranchManagementCalculator) Weight() float64 { return 0.15 }

func (b BranchManagementCalculator) Calculate(ctx context.Context, forge Forge, owner, name string) (domain.MetricResult, error) {
	count, err := forge.GetBranchCount(ctx, owner, name)
	if err != nil {
		return domain.MetricResult{}, err
	}

	score := branchScoreForCount(count)
	details := fmt.Sprintf("%d branch(es)", count)

	return domain.NewMetricResult(b.Name(), score, b.Weight(), "Tidiness of the branch list", details)
}

func branchScoreForCount(count int) float64 {
	switch {
	case count <= 3:
		return 100
	case count <= 5:
		return 95
	case count <= 10:
		return 85
	case count <= 20:
		return 70
	case count <= 50:
		return 50
	default:
		return 30
	}
}
