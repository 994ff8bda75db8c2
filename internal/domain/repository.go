// Package domain holds the immutable value records shared across the
// analysis engine: Repository, Commit, MetricResult, Report and the LLM
// sub-reports. Every constructor validates its inputs and every exported
// field is read-only after construction — callers share references
// freely because nothing mutates them in place.
package domain

import (
	"time"

	"github.com/gabkaclassic/repomaintindex/pkg/apierror"
)

// Repository is an immutable snapshot of forge metadata for one repo.
// Equality is defined on the (Owner, Name) identity pair only.
type Repository struct {
	Owner          string
	Name           string
	Description    string
	Stars          int
	Forks          int
	OpenIssues     int
	LastUpdated    time.Time
	HasWiki        bool
	HasIssues      bool
	DefaultBranch  string
	Size           int
}

// NewRepository validates and constructs a Repository. Stars, Forks and
// OpenIssues must be non-negative; Owner and Name must be non-empty.
func NewRepository(owner, name, description string, stars, forks, openIssues int, lastUpdated time.Time, hasWiki, hasIssues bool, defaultBranch string, size int) (Repository, error) {
	if owner == "" {
		return Repository{}, apierror.NewBadInputError("owner", owner)
	}
	if name == "" {
		return Repository{}, apierror.NewBadInputError("name", name)
	}
	if stars < 0 {
		return Repository{}, apierror.NewBadInputError("stars", stars)
	}
	if forks < 0 {
		return Repository{}, apierror.NewBadInputError("forks", forks)
	}
	if openIssues < 0 {
		return Repository{}, apierror.NewBadInputError("openIssues", openIssues)
	}

	return Repository{
		Owner:         owner,
		Name:          name,
		Description:   description,
		Stars:         stars,
		Forks:         forks,
		OpenIssues:    openIssues,
		LastUpdated:   lastUpdated.UTC(),
		HasWiki:       hasWiki,
		HasIssues:     hasIssues,
		DefaultBranch: defaultBranch,
		Size:          size,
	}, nil
}

// FullName returns "owner/name".
func (r Repository) FullName() string {
	return r.Owner + "/" + r.Name
}

// Equals compares two repositories by their (Owner, Name) identity.
func (r Repository) Equals(other Repository) bool {
	return r.Owner == other.Owner && r.Name == other.Name
}
