package metrics

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/gabkaclassic/repomaintindex/internal/domain"
)

const commitQualitySampleSize = 50

var conventionalCommitRE = regexp.MustCompile(`(?i)^(feat|fix|docs|style|refactor|test|chore|perf|ci|build)(\(.+\))?:.+`)

// CommitQualityCalculator scores the proportion of recent commit
// subject lines that read as well-formed, either by matching the
// conventional-commits convention or by a small set of prose heuristics.
type CommitQualityCalculator struct{}

func (CommitQualityCalculator) Name() string    { return "Commit Quality" }
func (CommitQualityCalculator) Weight() float64 { return 0.15 }

func (c CommitQualityCalculator) Calculate(ctx context.Context, forge Forge, owner, name string) (domain.MetricResult, error) {
	commits, err := forge.GetRecentCommits(ctx, owner, name, commitQualitySampleSize)
	if err != nil {
		return domain.MetricResult{}, err
	}

	if len(commits) == 0 {
		return domain.NewMetricResult(c.Name(), 0, c.Weight(), "Quality of recent commit messages", "no commits found")
	}

	good := 0
	for _, commit := range commits {
		if isGoodCommitSubject(commit.Subject()) {
			good++
		}
	}

	score := 100 * float64(good) / float64(len(commits))
	details := fmt.Sprintf("%d/%d recent commit subjects are well-formed", good, len(commits))

	return domain.NewMetricResult(c.Name(), score, c.Weight(), "Quality of recent commit messages", details)
}

// isGoodCommitSubject applies the length-gated scoring policy exactly
// as specified: lines under 10 characters are always bad regardless of
// any conventional-commit match; lines 10-19 characters are good only
// if they match the conventional-commits convention; lines 20 or more
// characters are good if they match that convention or read as a
// well-formed imperative prose subject.
func isGoodCommitSubject(subject string) bool {
	length := utf8.RuneCountInString(subject)

	if length < 10 {
		return false
	}

	matchesConvention := conventionalCommitRE.MatchString(subject)

	if length < 20 {
		return matchesConvention
	}

	if matchesConvention {
		return true
	}

	return isWellFormedProseSubject(subject)
}

func isWellFormedProseSubject(subject string) bool {
	first, ok := firstRune(subject)
	if !ok || !isUpper(first) {
		return false
	}

	lower := strings.ToLower(subject)
	if strings.HasPrefix(lower, "merge") || strings.HasPrefix(lower, "update") {
		return false
	}

	if strings.Contains(lower, "wip") {
		return false
	}

	return true
}

func firstRune(s string) (rune, bool) {
	for _, r := range s {
		return r, true
	}
	return 0, false
}

func isUpper(r rune) bool {
	return r >= 'A' && r <= 'Z'
}
