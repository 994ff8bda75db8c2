package domain

import (
	"time"

	"github.com/gabkaclassic/repomaintindex/pkg/apierror"
)

// Commit is an immutable record of one commit fetched from the forge.
// Equality is defined on SHA only.
type Commit struct {
	SHA     string
	Message string
	Author  string
	Date    time.Time
}

// NewCommit validates and constructs a Commit. SHA must be non-empty;
// Message may be multi-line and is not otherwise validated.
func NewCommit(sha, message, author string, date time.Time) (Commit, error) {
	if sha == "" {
		return Commit{}, apierror.NewBadInputError("sha", sha)
	}

	return Commit{
		SHA:     sha,
		Message: message,
		Author:  author,
		Date:    date.UTC(),
	}, nil
}

// Equals compares two commits by SHA.
func (c Commit) Equals(other Commit) bool {
	return c.SHA == other.SHA
}

// Subject returns the first line of the commit message.
func (c Commit) Subject() string {
	for i, r := range c.Message {
		if r == '\n' {
			return c.Message[:i]
		}
	}
	return c.Message
}
