// Package forge implements the GitHub-style REST client: pagination,
// rate-limit and large-dataset handling, and error-kind mapping. It is
// the only component that performs network I/O on behalf of the metric
// calculators.
package forge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/gabkaclassic/repomaintindex/internal/domain"
	"github.com/gabkaclassic/repomaintindex/pkg/apierror"
	"github.com/gabkaclassic/repomaintindex/pkg/httpclient"
)

const (
	defaultUserAgent = "repomaintindex/1.0"
	maxCommitsPerPage = 100
	maxListPage       = 100
)

// Client is a capability set over a logical forge at a configurable
// base URL, authenticating with an optional bearer token. All network
// I/O is blocking from the calling goroutine's perspective; concurrency,
// if any, is imposed by callers.
type Client struct {
	http    *httpclient.Client
	limiter *rate.Limiter
}

// NewClient builds a forge Client configured with functional options.
func NewClient(opts ...Option) *Client {
	cfg := &options{
		timeout:    10 * time.Second,
		maxRetries: 3,
		userAgent:  defaultUserAgent,
		headers:    httpclient.Headers{},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	cfg.headers["Accept"] = "application/vnd.github+json"
	cfg.headers["User-Agent"] = cfg.userAgent
	if cfg.token != "" {
		cfg.headers["Authorization"] = "Bearer " + cfg.token
	}

	httpOpts := []httpclient.Option{
		httpclient.BaseURL(cfg.baseURL),
		httpclient.Timeout(cfg.timeout),
		httpclient.MaxRetries(cfg.maxRetries),
		httpclient.HeadersOption(cfg.headers),
	}

	return &Client{
		http:    httpclient.NewClient(httpOpts...),
		limiter: cfg.limiter,
	}
}

// get performs a rate-limited GET and returns the raw response, or a
// mapped *apierror.ForgeError describing why the call failed.
func (c *Client) get(ctx context.Context, path string, opts *httpclient.RequestOptions) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, apierror.NewForgeError(apierror.ErrForgeProtocol, 0, path)
		}
	}

	resp, err := c.http.Get(ctx, path, opts)
	if err != nil {
		return nil, apierror.NewForgeError(apierror.ErrForgeProtocol, 0, path)
	}

	c.observeRateLimit(resp)

	return resp, nil
}

// observeRateLimit arms the limiter's pace from the forge's own
// X-RateLimit-Remaining/X-RateLimit-Reset headers, when present, so
// later calls slow down before the forge starts returning 403s.
func (c *Client) observeRateLimit(resp *http.Response) {
	if c.limiter == nil || resp == nil {
		return
	}

	remaining, err := strconv.Atoi(resp.Header.Get("X-RateLimit-Remaining"))
	if err != nil {
		return
	}
	resetUnix, err := strconv.ParseInt(resp.Header.Get("X-RateLimit-Reset"), 10, 64)
	if err != nil {
		return
	}

	if remaining > 10 {
		return
	}

	untilReset := time.Until(time.Unix(resetUnix, 0))
	if untilReset <= 0 {
		return
	}

	perRequest := untilReset / time.Duration(remaining+1)
	c.limiter.SetLimit(rate.Every(perRequest))
}

// classifyError maps a non-2xx response to the spec's error kinds.
// Callers that want 422 surfaced as ErrForgeTooLarge instead of
// ErrForgeProtocol (e.g. the closed-issues probe) pass allow422=true.
func classifyError(resp *http.Response, path string, allow422 bool) error {
	status := resp.StatusCode

	switch {
	case status == http.StatusNotFound:
		return apierror.NewForgeError(apierror.ErrForgeNotFound, status, path)
	case status == http.StatusUnprocessableEntity && allow422:
		return apierror.NewForgeError(apierror.ErrForgeTooLarge, status, path)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		if isRateLimited(resp) {
			return apierror.NewForgeError(apierror.ErrForgeRateLimited, status, path)
		}
		return apierror.NewForgeError(apierror.ErrForgeUnauthorized, status, path)
	default:
		return apierror.NewForgeError(apierror.ErrForgeProtocol, status, path)
	}
}

// isRateLimited reports whether a 401/403 response carries rate-limit
// exhaustion headers (remaining == 0).
func isRateLimited(resp *http.Response) bool {
	remaining := resp.Header.Get("X-RateLimit-Remaining")
	if remaining == "" {
		return false
	}
	n, err := strconv.Atoi(remaining)
	return err == nil && n == 0
}

type repositoryJSON struct {
	Owner struct {
		Login string `json:"login"`
	} `json:"owner"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	StargazersCnt int       `json:"stargazers_count"`
	ForksCount    int       `json:"forks_count"`
	OpenIssues    int       `json:"open_issues_count"`
	UpdatedAt     time.Time `json:"updated_at"`
	HasWiki       bool      `json:"has_wiki"`
	HasIssues     bool      `json:"has_issues"`
	DefaultBranch string    `json:"default_branch"`
	Size          int       `json:"size"`
}

// GetRepository fetches a single repository document and maps it into
// the domain model.
func (c *Client) GetRepository(ctx context.Context, owner, name string) (domain.Repository, error) {
	path := fmt.Sprintf("/repos/%s/%s", owner, name)

	resp, err := c.get(ctx, path, nil)
	if err != nil {
		return domain.Repository{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.Repository{}, classifyError(resp, path, false)
	}

	var raw repositoryJSON
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return domain.Repository{}, apierror.NewForgeError(apierror.ErrForgeProtocol, resp.StatusCode, path)
	}

	repo, err := domain.NewRepository(
		owner, name, raw.Description, raw.StargazersCnt, raw.ForksCount,
		raw.OpenIssues, raw.UpdatedAt, raw.HasWiki, raw.HasIssues,
		raw.DefaultBranch, raw.Size,
	)
	if err != nil {
		return domain.Repository{}, err
	}

	return repo, nil
}

type commitJSON struct {
	SHA    string `json:"sha"`
	Commit struct {
		Message string `json:"message"`
		Author  struct {
			Name string    `json:"name"`
			Date time.Time `json:"date"`
		} `json:"author"`
	} `json:"commit"`
}

// GetRecentCommits requests min(n, 100) commits via a single page.
// Callers may request more than 100 but the client does not paginate
// commits. Returns an empty slice (not an error) when there are none.
func (c *Client) GetRecentCommits(ctx context.Context, owner, name string, n int) ([]domain.Commit, error) {
	perPage := n
	if perPage > maxCommitsPerPage {
		perPage = maxCommitsPerPage
	}
	if perPage < 1 {
		perPage = 1
	}

	path := fmt.Sprintf("/repos/%s/%s/commits", owner, name)
	resp, err := c.get(ctx, path, &httpclient.RequestOptions{
		Params: &httpclient.Params{"per_page": strconv.Itoa(perPage)},
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, classifyError(resp, path, false)
	}

	var raw []commitJSON
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, apierror.NewForgeError(apierror.ErrForgeProtocol, resp.StatusCode, path)
	}

	commits := make([]domain.Commit, 0, len(raw))
	for _, rc := range raw {
		commit, err := domain.NewCommit(rc.SHA, rc.Commit.Message, rc.Commit.Author.Name, rc.Commit.Author.Date)
		if err != nil {
			return nil, err
		}
		commits = append(commits, commit)
	}

	return commits, nil
}

// HasFile probes whether a path exists in the repository's default
// branch contents tree. 2xx -> true, 404 -> false, anything else -> error.
func (c *Client) HasFile(ctx context.Context, owner, name, path string) (bool, error) {
	reqPath := fmt.Sprintf("/repos/%s/%s/contents/%s", owner, name, path)

	resp, err := c.get(ctx, reqPath, nil)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, classifyError(resp, reqPath, false)
	}

	return true, nil
}

// GetBranchCount counts branches in the first page of results (cap
// 100); this under-counts repositories with more branches — a known,
// accepted approximation (see SPEC_FULL.md §8, open question 1).
func (c *Client) GetBranchCount(ctx context.Context, owner, name string) (int, error) {
	return c.countFirstPage(ctx, fmt.Sprintf("/repos/%s/%s/branches", owner, name))
}

// GetContributorCount counts contributors in the first page of results
// (cap 100); same single-page approximation as GetBranchCount.
func (c *Client) GetContributorCount(ctx context.Context, owner, name string) (int, error) {
	return c.countFirstPage(ctx, fmt.Sprintf("/repos/%s/%s/contributors", owner, name))
}

func (c *Client) countFirstPage(ctx context.Context, path string) (int, error) {
	resp, err := c.get(ctx, path, &httpclient.RequestOptions{
		Params: &httpclient.Params{"per_page": strconv.Itoa(maxListPage)},
	})
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, classifyError(resp, path, false)
	}

	var raw []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return 0, apierror.NewForgeError(apierror.ErrForgeProtocol, resp.StatusCode, path)
	}

	return len(raw), nil
}

// GetClosedIssuesCount queries the closed-issues listing with
// per_page=1 and reads the count from the "last" link in the
// pagination Link header. If there is no "last" link, the count is the
// length of the response body. A 422 status is surfaced as
// ErrForgeTooLarge (non-fatal) rather than ErrForgeProtocol.
func (c *Client) GetClosedIssuesCount(ctx context.Context, owner, name string) (int, error) {
	path := fmt.Sprintf("/repos/%s/%s/issues", owner, name)

	resp, err := c.get(ctx, path, &httpclient.RequestOptions{
		Params: &httpclient.Params{"state": "closed", "per_page": "1"},
	})
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, classifyError(resp, path, true)
	}

	if last, ok := parseLastPage(resp.Header.Get("Link")); ok {
		io.Copy(io.Discard, resp.Body)
		return last, nil
	}

	var raw []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return 0, apierror.NewForgeError(apierror.ErrForgeProtocol, resp.StatusCode, path)
	}

	return len(raw), nil
}
