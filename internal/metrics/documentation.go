package metrics

import (
	"context"
	"fmt"
	"strings"

	"github.com/gabkaclassic/repomaintindex/internal/domain"
)

var documentationFiles = []string{
	"README.md",
	"CONTRIBUTING.md",
	"LICENSE",
	"CODE_OF_CONDUCT.md",
	"CHANGELOG.md",
}

// DocumentationCalculator probes for the five canonical documentation
// files and scores 20 points per file present.
type DocumentationCalculator struct{}

func (DocumentationCalculator) Name() string    { return "Documentation" }
func (DocumentationCalculator) Weight() float64 { return 0.20 }

func (d DocumentationCalculator) Calculate(ctx context.Context, forge Forge, owner, name string) (domain.MetricResult, error) {
	var found, missing []string

	for _, file := range documentationFiles {
		present, err := forge.HasFile(ctx, owner, name, file)
		if err != nil {
			return domain.MetricResult{}, err
		}
		if present {
			found = append(found, file)
		} else {
			missing = append(missing, file)
		}
	}

	score := 100 * float64(len(found)) / float64(len(documentationFiles))

	details := fmt.Sprintf("found: %s; missing: %s", joinOrNone(found), joinOrNone(missing))

	return domain.NewMetricResult(d.Name(), score, d.Weight(), "Presence of standard documentation files", details)
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
