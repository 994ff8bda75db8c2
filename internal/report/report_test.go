package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabkaclassic/repomaintindex/internal/domain"
)

func mustMetric(t *testing.T, name string, score, weight float64) domain.MetricResult {
	t.Helper()
	m, err := domain.NewMetricResult(name, score, weight, "desc", "details")
	require.NoError(t, err)
	return m
}

func TestRenderJSON_ProducesStableShape(t *testing.T) {
	metrics := []domain.MetricResult{
		mustMetric(t, "Documentation", 80, 0.2),
		mustMetric(t, "Activity", 90.456, 0.15),
	}
	rep, err := domain.NewReport("octo/repo", metrics, "Keep up the good work!")
	require.NoError(t, err)

	data, err := RenderJSON(rep)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))

	assert.Equal(t, "octo/repo", parsed["repository"])
	assert.Equal(t, "Keep up the good work!", parsed["recommendation"])
	assert.Contains(t, parsed, "overallScore")
	assert.Contains(t, parsed, "rating")

	metricsObj, ok := parsed["metrics"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, metricsObj, "Documentation")
	assert.Contains(t, metricsObj, "Activity")

	activity := metricsObj["Activity"].(map[string]any)
	assert.Equal(t, 90.46, activity["score"])
}

func TestRenderJSON_EscapesSpecialCharacters(t *testing.T) {
	metrics := []domain.MetricResult{
		mustMetric(t, "Documentation", 50, 0.2),
	}
	rep, err := domain.NewReport("octo/repo", metrics, "Contains \"quotes\", a\nnewline, and a\ttab.")
	require.NoError(t, err)

	data, err := RenderJSON(rep)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "\n")
	assert.NotContains(t, string(data), "\t")

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Contains(t, parsed["recommendation"], "\n")
}

func TestRenderText_IncludesRepositoryScoreAndRating(t *testing.T) {
	metrics := []domain.MetricResult{
		mustMetric(t, "Documentation", 100, 0.2),
	}
	rep, err := domain.NewReport("octo/repo", metrics, "Keep up the good work!")
	require.NoError(t, err)

	text := RenderText(rep)

	assert.Contains(t, text, "Repository: octo/repo")
	assert.Contains(t, text, "Rating: EXCELLENT")
	assert.Contains(t, text, "Documentation")
	assert.Contains(t, text, "Keep up the good work!")
}

func TestRenderText_IncludesLLMAnalysisWhenPresent(t *testing.T) {
	metrics := []domain.MetricResult{
		mustMetric(t, "Documentation", 100, 0.2),
	}
	rep, err := domain.NewReport("octo/repo", metrics, "Keep up the good work!")
	require.NoError(t, err)

	rep = rep.WithLLMAnalysis(domain.LLMAnalysis{
		Confidence: 80,
		TokensUsed: 120,
		Recommendations: []domain.AIRecommendation{
			{Text: "Add examples", Impact: 70},
		},
	})

	text := RenderText(rep)

	assert.Contains(t, text, "AI Analysis (confidence 80, tokens used 120)")
	assert.Contains(t, text, "Add examples")
}

func TestRenderText_OmitsLLMAnalysisWhenAbsent(t *testing.T) {
	metrics := []domain.MetricResult{
		mustMetric(t, "Documentation", 100, 0.2),
	}
	rep, err := domain.NewReport("octo/repo", metrics, "Keep up the good work!")
	require.NoError(t, err)

	text := RenderText(rep)

	assert.NotContains(t, text, "AI Analysis")
}
