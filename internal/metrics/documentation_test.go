package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabkaclassic/repomaintindex/internal/domain"
)

type fakeDocsForge struct {
	files map[string]bool
	err   error
}

func (f *fakeDocsForge) GetRepository(ctx context.Context, owner, name string) (domain.Repository, error) {
	panic("not used by DocumentationCalculator")
}

func (f *fakeDocsForge) GetRecentCommits(ctx context.Context, owner, name string, n int) ([]domain.Commit, error) {
	panic("not used by DocumentationCalculator")
}

func (f *fakeDocsForge) HasFile(ctx context.Context, owner, name, path string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.files[path], nil
}

func (f *fakeDocsForge) GetBranchCount(ctx context.Context, owner, name string) (int, error) {
	panic("not used by DocumentationCalculator")
}

func (f *fakeDocsForge) GetContributorCount(ctx context.Context, owner, name string) (int, error) {
	panic("not used by DocumentationCalculator")
}

func (f *fakeDocsForge) GetClosedIssuesCount(ctx context.Context, owner, name string) (int, error) {
	panic("not used by DocumentationCalculator")
}

func TestDocumentationCalculator_AllFilesPresent(t *testing.T) {
	forge := &fakeDocsForge{files: map[string]bool{
		"README.md": true, "CONTRIBUTING.md": true, "LICENSE": true,
		"CODE_OF_CONDUCT.md": true, "CHANGELOG.md": true,
	}}

	calc := DocumentationCalculator{}
	result, err := calc.Calculate(context.Background(), forge, "octo", "repo")
	require.NoError(t, err)
	assert.Equal(t, 100.0, result.Score)
	assert.Contains(t, result.Details, "missing: none")
}

func TestDocumentationCalculator_NoFilesPresent(t *testing.T) {
	forge := &fakeDocsForge{files: map[string]bool{}}

	calc := DocumentationCalculator{}
	result, err := calc.Calculate(context.Background(), forge, "octo", "repo")
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.Score)
	assert.Contains(t, result.Details, "found: none")
}

func TestDocumentationCalculator_PartialFiles(t *testing.T) {
	forge := &fakeDocsForge{files: map[string]bool{"README.md": true, "LICENSE": true}}

	calc := DocumentationCalculator{}
	result, err := calc.Calculate(context.Background(), forge, "octo", "repo")
	require.NoError(t, err)
	assert.Equal(t, 40.0, result.Score)
}

func TestDocumentationCalculator_PropagatesForgeError(t *testing.T) {
	forge := &fakeDocsForge{err: errors.New("network down")}

	calc := DocumentationCalculator{}
	_, err := calc.Calculate(context.Background(), forge, "octo", "repo")
	assert.Error(t, err)
}
