package forge

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabkaclassic/repomaintindex/pkg/apierror"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, func()) {
	t.Helper()
	srv := httptest.NewServer(handler)
	client := NewClient(BaseURL(srv.URL), Timeout(2*time.Second), MaxRetries(0))
	return client, srv.Close
}

func TestGetRepository_Success(t *testing.T) {
	client, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/owner/name", r.URL.Path)
		assert.Equal(t, "application/vnd.github+json", r.Header.Get("Accept"))
		json.NewEncoder(w).Encode(map[string]any{
			"name":              "name",
			"description":       "a repo",
			"stargazers_count":  10,
			"forks_count":       2,
			"open_issues_count": 3,
			"updated_at":        "2024-01-01T00:00:00Z",
			"has_wiki":          true,
			"has_issues":        true,
			"default_branch":    "main",
			"size":              100,
		})
	})
	defer closeFn()

	repo, err := client.GetRepository(context.Background(), "owner", "name")
	require.NoError(t, err)
	assert.Equal(t, "owner", repo.Owner)
	assert.Equal(t, 10, repo.Stars)
	assert.True(t, repo.HasIssues)
}

func TestGetRepository_NotFound(t *testing.T) {
	client, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	defer closeFn()

	_, err := client.GetRepository(context.Background(), "owner", "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apierror.ErrForgeNotFound))
}

func TestGetRepository_RateLimited(t *testing.T) {
	client, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.WriteHeader(http.StatusForbidden)
	})
	defer closeFn()

	_, err := client.GetRepository(context.Background(), "owner", "name")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apierror.ErrForgeRateLimited))
}

func TestGetRepository_Unauthorized(t *testing.T) {
	client, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	defer closeFn()

	_, err := client.GetRepository(context.Background(), "owner", "name")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apierror.ErrForgeUnauthorized))
}

func TestHasFile(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   bool
		isErr  bool
	}{
		{"present", http.StatusOK, true, false},
		{"missing", http.StatusNotFound, false, false},
		{"server error", http.StatusInternalServerError, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})
			defer closeFn()

			ok, err := client.HasFile(context.Background(), "owner", "name", "README.md")
			if tt.isErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, ok)
			}
		})
	}
}

func TestGetClosedIssuesCount_FromLastLink(t *testing.T) {
	client, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Link", `<https://x?state=closed&per_page=1&page=2>; rel="next", <https://x?state=closed&per_page=1&page=123>; rel="last"`)
		json.NewEncoder(w).Encode([]map[string]any{{"id": 1}})
	})
	defer closeFn()

	count, err := client.GetClosedIssuesCount(context.Background(), "owner", "name")
	require.NoError(t, err)
	assert.Equal(t, 123, count)
}

func TestGetClosedIssuesCount_NoLastLinkFallsBackToBodyLength(t *testing.T) {
	client, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{{"id": 1}, {"id": 2}})
	})
	defer closeFn()

	count, err := client.GetClosedIssuesCount(context.Background(), "owner", "name")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestGetClosedIssuesCount_422IsTooLargeNotFatal(t *testing.T) {
	client, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	})
	defer closeFn()

	_, err := client.GetClosedIssuesCount(context.Background(), "owner", "name")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apierror.ErrForgeTooLarge))
}

func TestGetRecentCommits_Empty(t *testing.T) {
	client, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{})
	})
	defer closeFn()

	commits, err := client.GetRecentCommits(context.Background(), "owner", "name", 10)
	require.NoError(t, err)
	assert.Empty(t, commits)
}

func TestGetRecentCommits_CapsPerPageAt100(t *testing.T) {
	var gotPerPage string
	client, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPerPage = r.URL.Query().Get("per_page")
		json.NewEncoder(w).Encode([]map[string]any{})
	})
	defer closeFn()

	_, err := client.GetRecentCommits(context.Background(), "owner", "name", 500)
	require.NoError(t, err)
	assert.Equal(t, "100", gotPerPage)
}

func TestGetBranchCount_CountsFirstPage(t *testing.T) {
	client, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		branches := make([]map[string]any, 7)
		for i := range branches {
			branches[i] = map[string]any{"name": "b"}
		}
		json.NewEncoder(w).Encode(branches)
	})
	defer closeFn()

	count, err := client.GetBranchCount(context.Background(), "owner", "name")
	require.NoError(t, err)
	assert.Equal(t, 7, count)
}
