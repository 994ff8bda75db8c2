// Package llmanalyzer enriches a Report with LLM-derived judgements of
// a repository's README, recent commits, and community signals. It
// never fails: every LLM or cache error is swallowed and replaced with
// a canned fallback sub-report.
package llmanalyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gabkaclassic/repomaintindex/internal/domain"
	"github.com/gabkaclassic/repomaintindex/internal/llmcache"
	"github.com/gabkaclassic/repomaintindex/internal/mojibake"
)

const recentCommitsForPrompt = 20

// LLMClient is the capability the analyzer needs from internal/llmclient.
type LLMClient interface {
	Analyze(ctx context.Context, prompt string) (string, int, error)
}

// Cache is the capability the analyzer needs from internal/llmcache.
type Cache interface {
	Get(repo, prompt string) (llmcache.Entry, bool)
	Put(repo, prompt, content string, tokensUsed int)
}

// Forge is the subset of the forge client the analyzer needs to build
// the commit-quality prompt.
type Forge interface {
	GetRecentCommits(ctx context.Context, owner, name string, n int) ([]domain.Commit, error)
}

// Analyzer dispatches the three LLM prompts through a bounded worker
// pool, each independently cached.
type Analyzer struct {
	client   LLMClient
	cache    Cache
	poolSize int
	deadline time.Duration
}

// New builds an Analyzer. poolSize is clamped to at least 3, per
// spec — the three prompts are independent and always fit in one round.
func New(client LLMClient, cache Cache, poolSize int, deadline time.Duration) *Analyzer {
	if poolSize < 3 {
		poolSize = 3
	}
	return &Analyzer{client: client, cache: cache, poolSize: poolSize, deadline: deadline}
}

type taskKind string

const (
	taskReadme    taskKind = "readme"
	taskCommits   taskKind = "commits"
	taskCommunity taskKind = "community"
)

type task struct {
	kind   taskKind
	prompt string
}

type taskResult struct {
	kind       taskKind
	content    string
	tokensUsed int
	fellBack   bool
}

// Analyze builds and runs the three prompts for owner/name and returns
// a well-formed LLMAnalysis. repo is the repository's "owner/name" used
// as the cache's repository key.
func (a *Analyzer) Analyze(ctx context.Context, forge Forge, repo, owner, name string) domain.LLMAnalysis {
	commits, err := forge.GetRecentCommits(ctx, owner, name, recentCommitsForPrompt)
	if err != nil {
		slog.Warn("llmanalyzer: failed to fetch commits for prompt, proceeding without them", slog.Any("error", err))
		commits = nil
	}

	tasks := []task{
		{kind: taskReadme, prompt: readmePrompt(owner, name)},
		{kind: taskCommits, prompt: commitsPrompt(commits)},
		{kind: taskCommunity, prompt: communityPrompt(owner, name)},
	}

	results := a.runTasks(ctx, repo, tasks)

	return a.assemble(results)
}

// runTasks dispatches one job per task onto a pool of a.poolSize
// workers and waits up to a.deadline for all of them. A task still
// running past the deadline contributes its fallback slot instead of
// being waited on further.
//
// resultsCh is sized to len(tasks) and is never closed: a worker whose
// task outlives the deadline is no longer waited on, but it may still
// be blocked inside client.Analyze and send its result later. Closing
// the channel out from under that send would panic (send on closed
// channel); leaving it open and simply abandoning the channel once
// this function returns lets that late send land harmlessly in the
// buffer, to be garbage-collected with it.
func (a *Analyzer) runTasks(ctx context.Context, repo string, tasks []task) map[taskKind]taskResult {
	deadline := a.deadline
	if deadline <= 0 {
		deadline = 30 * time.Second
	}
	taskCtx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	jobs := make(chan task, len(tasks))
	resultsCh := make(chan taskResult, len(tasks))

	var wg sync.WaitGroup
	workers := a.poolSize
	if workers > len(tasks) {
		workers = len(tasks)
	}

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for t := range jobs {
				resultsCh <- a.runOne(taskCtx, repo, t)
			}
		}()
	}

	for _, t := range tasks {
		jobs <- t
	}
	close(jobs)

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-taskCtx.Done():
		slog.Warn("llmanalyzer: deadline exceeded, falling back for unfinished tasks")
	}

	results := make(map[taskKind]taskResult, len(tasks))
drain:
	for len(results) < len(tasks) {
		select {
		case r := <-resultsCh:
			results[r.kind] = r
		default:
			break drain
		}
	}

	for _, t := range tasks {
		if _, ok := results[t.kind]; !ok {
			results[t.kind] = fallbackResult(t.kind)
		}
	}

	return results
}

// runOne executes the cache-then-client-then-fallback sequence for a
// single task. It never returns an error.
func (a *Analyzer) runOne(ctx context.Context, repo string, t task) taskResult {
	if entry, ok := a.cache.Get(repo, t.prompt); ok {
		return taskResult{kind: t.kind, content: entry.Content, tokensUsed: entry.TokensUsed}
	}

	content, tokensUsed, err := a.client.Analyze(ctx, t.prompt)
	if err != nil {
		slog.Warn("llmanalyzer: prompt failed, using fallback", slog.String("task", string(t.kind)), slog.Any("error", err))
		return fallbackResult(t.kind)
	}

	a.cache.Put(repo, t.prompt, content, tokensUsed)

	return taskResult{kind: t.kind, content: content, tokensUsed: tokensUsed}
}

func fallbackResult(kind taskKind) taskResult {
	return taskResult{kind: kind, content: "", tokensUsed: 0, fellBack: true}
}

// assemble parses the three task results into the fixed-shape
// LLMAnalysis, deriving recommendations and confidence.
func (a *Analyzer) assemble(results map[taskKind]taskResult) domain.LLMAnalysis {
	readme := parseReadmeAnalysis(results[taskReadme])
	commit := parseCommitAnalysis(results[taskCommits])
	community := parseCommunityAnalysis(results[taskCommunity])

	tokensUsed := results[taskReadme].tokensUsed + results[taskCommits].tokensUsed + results[taskCommunity].tokensUsed

	recs := buildRecommendations(readme, commit, community)
	confidence := deriveConfidence(results)

	return domain.LLMAnalysis{
		ReadmeAnalysis:    readme,
		CommitAnalysis:    commit,
		CommunityAnalysis: community,
		Recommendations:   recs,
		Confidence:        confidence,
		TokensUsed:        tokensUsed,
	}
}

type readmeJSON struct {
	Clarity              int      `json:"clarity"`
	Completeness         int      `json:"completeness"`
	NewcomerFriendliness int      `json:"newcomer_friendliness"`
	Suggestions          []string `json:"suggestions"`
}

func parseReadmeAnalysis(r taskResult) domain.ReadmeAnalysis {
	if r.fellBack {
		return domain.ReadmeAnalysis{Suggestions: []string{fallbackSuggestion("README")}}
	}

	var parsed readmeJSON
	if err := json.Unmarshal([]byte(r.content), &parsed); err != nil {
		return domain.ReadmeAnalysis{Suggestions: []string{fallbackSuggestion("README")}}
	}

	return domain.ReadmeAnalysis{
		Clarity:              parsed.Clarity,
		Completeness:         parsed.Completeness,
		NewcomerFriendliness: parsed.NewcomerFriendliness,
		Suggestions:          normalizeSuggestions(parsed.Suggestions),
	}
}

type commitJSON struct {
	Clarity         int      `json:"clarity"`
	Consistency     int      `json:"consistency"`
	Informativeness int      `json:"informativeness"`
	Suggestions     []string `json:"suggestions"`
}

func parseCommitAnalysis(r taskResult) domain.CommitAnalysis {
	if r.fellBack {
		return domain.CommitAnalysis{Suggestions: []string{fallbackSuggestion("commit history")}}
	}

	var parsed commitJSON
	if err := json.Unmarshal([]byte(r.content), &parsed); err != nil {
		return domain.CommitAnalysis{Suggestions: []string{fallbackSuggestion("commit history")}}
	}

	return domain.CommitAnalysis{
		Clarity:         parsed.Clarity,
		Consistency:     parsed.Consistency,
		Informativeness: parsed.Informativeness,
		Suggestions:     normalizeSuggestions(parsed.Suggestions),
	}
}

type communityJSON struct {
	Responsiveness int      `json:"responsiveness"`
	Helpfulness    int      `json:"helpfulness"`
	Tone           int      `json:"tone"`
	Suggestions    []string `json:"suggestions"`
}

func parseCommunityAnalysis(r taskResult) domain.CommunityAnalysis {
	if r.fellBack {
		return domain.CommunityAnalysis{Suggestions: []string{fallbackSuggestion("community engagement")}}
	}

	var parsed communityJSON
	if err := json.Unmarshal([]byte(r.content), &parsed); err != nil {
		return domain.CommunityAnalysis{Suggestions: []string{fallbackSuggestion("community engagement")}}
	}

	return domain.CommunityAnalysis{
		Responsiveness: parsed.Responsiveness,
		Helpfulness:    parsed.Helpfulness,
		Tone:           parsed.Tone,
		Suggestions:    normalizeSuggestions(parsed.Suggestions),
	}
}

func fallbackSuggestion(area string) string {
	return mojibake.Normalize(fmt.Sprintf("AI analysis of %s was unavailable for this run.", area))
}

func normalizeSuggestions(suggestions []string) []string {
	normalized := make([]string, len(suggestions))
	for i, s := range suggestions {
		normalized[i] = mojibake.Normalize(s)
	}
	return normalized
}

// buildRecommendations derives an AIRecommendation per suggestion,
// weighting impact by how low the originating subscore was, then sorts
// descending by impact.
func buildRecommendations(readme domain.ReadmeAnalysis, commit domain.CommitAnalysis, community domain.CommunityAnalysis) []domain.AIRecommendation {
	var recs []domain.AIRecommendation

	readmeImpact := impactFromAverage(average(readme.Clarity, readme.Completeness, readme.NewcomerFriendliness))
	for _, s := range readme.Suggestions {
		recs = append(recs, domain.AIRecommendation{Text: s, Impact: readmeImpact})
	}

	commitImpact := impactFromAverage(average(commit.Clarity, commit.Consistency, commit.Informativeness))
	for _, s := range commit.Suggestions {
		recs = append(recs, domain.AIRecommendation{Text: s, Impact: commitImpact})
	}

	communityImpact := impactFromAverage(average(community.Responsiveness, community.Helpfulness, community.Tone))
	for _, s := range community.Suggestions {
		recs = append(recs, domain.AIRecommendation{Text: s, Impact: communityImpact})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Impact > recs[j].Impact
	})

	if len(recs) == 0 {
		recs = append(recs, domain.AIRecommendation{Text: "No AI recommendations available for this run.", Impact: 0})
	}

	return recs
}

func average(values ...int) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum int
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

// impactFromAverage maps a 0-10 average subscore to a 0-100 impact,
// inverted: a low subscore (poor quality) is a high-impact fix.
func impactFromAverage(avg float64) int {
	impact := int((10 - avg) * 10)
	if impact < 0 {
		impact = 0
	}
	if impact > 100 {
		impact = 100
	}
	return impact
}

// deriveConfidence computes an overall confidence in [25, 95] from how
// many of the three tasks produced real model output versus fallback.
func deriveConfidence(results map[taskKind]taskResult) int {
	total := len(results)
	if total == 0 {
		return 25
	}

	succeeded := 0
	for _, r := range results {
		if !r.fellBack {
			succeeded++
		}
	}

	coverage := float64(succeeded) / float64(total)
	confidence := 25 + int(coverage*70)
	if confidence > 95 {
		confidence = 95
	}
	if confidence < 25 {
		confidence = 25
	}
	return confidence
}

func readmePrompt(owner, name string) string {
	return strings.TrimSpace(fmt.Sprintf(`Evaluate the README of the GitHub repository %s/%s for clarity, completeness, and newcomer-friendliness. Respond with a single JSON object: {"clarity": <0-10>, "completeness": <0-10>, "newcomer_friendliness": <0-10>, "suggestions": [<short strings>]}.`, owner, name))
}

func commitsPrompt(commits []domain.Commit) string {
	var subjects []string
	for _, c := range commits {
		subjects = append(subjects, c.Subject())
	}

	return strings.TrimSpace(fmt.Sprintf(`Evaluate these recent commit message subjects for clarity, consistency, and informativeness:
%s
Respond with a single JSON object: {"clarity": <0-10>, "consistency": <0-10>, "informativeness": <0-10>, "suggestions": [<short strings>]}.`, strings.Join(subjects, "\n")))
}

func communityPrompt(owner, name string) string {
	return strings.TrimSpace(fmt.Sprintf(`Evaluate the community health of the GitHub repository %s/%s in terms of maintainer responsiveness, helpfulness, and tone. Respond with a single JSON object: {"responsiveness": <0-10>, "helpfulness": <0-10>, "tone": <0-10>, "suggestions": [<short strings>]}.`, owner, name))
}
