// Package metrics implements the six maintainability-signal calculators.
// Each is a closed capability (Name, Weight, Calculate) collapsed from
// the notion of a class hierarchy into a small registry, per
// SPEC_FULL.md §5.3 — the set is fixed at six and is never discovered
// dynamically.
package metrics

import (
	"context"

	"github.com/gabkaclassic/repomaintindex/internal/domain"
)

// Forge is the subset of the forge client a calculator needs. Declared
// here (not in package forge) so calculators can be tested against a
// fake without importing the transport package.
type Forge interface {
	GetRepository(ctx context.Context, owner, name string) (domain.Repository, error)
	GetRecentCommits(ctx context.Context, owner, name string, n int) ([]domain.Commit, error)
	HasFile(ctx context.Context, owner, name, path string) (bool, error)
	GetBranchCount(ctx context.Context, owner, name string) (int, error)
	GetContributorCount(ctx context.Context, owner, name string) (int, error)
	GetClosedIssuesCount(ctx context.Context, owner, name string) (int, error)
}

// Calculator computes one maintainability signal.
type Calculator interface {
	Name() string
	Weight() float64
	Calculate(ctx context.Context, forge Forge, owner, name string) (domain.MetricResult, error)
}

// Registry returns the six calculators in the fixed execution and
// report-insertion order required by spec invariant 4: Documentation,
// Commit Quality, Activity, Issue Management, Community, Branch
// Management.
func Registry() []Calculator {
	return []Calculator{
		DocumentationCalculator{},
		CommitQualityCalculator{},
		ActivityCalculator{},
		IssueManagementCalculator{},
		CommunityCalculator{},
		BranchManagementCalculator{},
	}
}
