package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/gabkaclassic/repomaintindex/internal/analysis"
	"github.com/gabkaclassic/repomaintindex/internal/config"
	"github.com/gabkaclassic/repomaintindex/internal/diagnostics"
	"github.com/gabkaclassic/repomaintindex/internal/domain"
	"github.com/gabkaclassic/repomaintindex/internal/forge"
	"github.com/gabkaclassic/repomaintindex/internal/llmanalyzer"
	"github.com/gabkaclassic/repomaintindex/internal/llmcache"
	"github.com/gabkaclassic/repomaintindex/internal/llmclient"
	"github.com/gabkaclassic/repomaintindex/internal/report"
	"github.com/gabkaclassic/repomaintindex/pkg/apierror"
	"github.com/gabkaclassic/repomaintindex/pkg/logger"
)

func main() {
	os.Exit(run())
}

// run wires the CLI and returns the process exit code. The flag
// package only supports a single Parse call meaningfully, so the CLI's
// own flags are registered here before config.Parse registers and
// parses its own; both end up resolved by the single flag.Parse call
// inside config.Parse.
func run() int {
	format := flag.String("format", "text", "output format: text or json")
	llmEnabled := flag.Bool("llm", false, "enrich the report with an LLM analysis pass")

	cfg, err := config.Parse()
	if err != nil {
		log.Printf("failed to parse configuration: %v", err)
		return 1
	}

	logger.SetupLogger(cfg.Log)
	slog.SetDefault(slog.Default().With(slog.String("run_id", uuid.NewString())))

	args := flag.Args()
	if len(args) == 0 {
		slog.Error("usage: analyze [--token TOKEN] [--format text|json] [--llm] OWNER/REPO (flags after OWNER/REPO are not parsed)")
		return 1
	}

	owner, name, ok := splitOwnerRepo(args[0])
	if !ok {
		slog.Error("malformed repository argument, expected OWNER/REPO", slog.String("argument", args[0]))
		return 1
	}

	diagnostics.LogBanner()

	forgeClient := forge.NewClient(
		forge.BaseURL(cfg.BaseURL),
		forge.Token(cfg.Token),
		forge.Timeout(cfg.HTTPTimeout),
		forge.MaxRetries(cfg.HTTPRetries),
	)

	orchestrator := analysis.NewOrchestrator(forgeClient)

	ctx := context.Background()

	rep, err := orchestrator.Analyze(ctx, owner, name)
	if err != nil {
		slog.Error("analysis failed", slog.Any("error", err))
		return exitCodeFor(err)
	}

	if *llmEnabled {
		rep = enrichWithLLM(ctx, cfg, forgeClient, rep, owner, name)
	}

	if err := printReport(rep, *format); err != nil {
		slog.Error("failed to render report", slog.Any("error", err))
		return 1
	}

	return 0
}

func splitOwnerRepo(arg string) (owner, name string, ok bool) {
	idx := strings.Index(arg, "/")
	if idx <= 0 || idx == len(arg)-1 {
		return "", "", false
	}
	return arg[:idx], arg[idx+1:], true
}

func enrichWithLLM(ctx context.Context, cfg *config.Config, forgeClient *forge.Client, rep domain.Report, owner, name string) domain.Report {
	client := llmclient.NewClient(cfg.LLMBaseURL, cfg.LLMKey, cfg.LLMModel, cfg.HTTPTimeout, cfg.HTTPRetries)
	cache := llmcache.New(cfg.CacheCapacity, cfg.CacheTTL)
	analyzer := llmanalyzer.New(client, cache, cfg.WorkerPoolSize, cfg.LLMDeadline)

	repoFullName := fmt.Sprintf("%s/%s", owner, name)
	analysisResult := analyzer.Analyze(ctx, forgeClient, repoFullName, owner, name)

	return rep.WithLLMAnalysis(analysisResult)
}

func printReport(rep domain.Report, format string) error {
	switch format {
	case "json":
		data, err := report.RenderJSON(rep)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	default:
		fmt.Print(report.RenderText(rep))
	}
	return nil
}

// exitCodeFor maps a terminal analysis error to a process exit code.
// Forge errors (rate limits, auth, protocol) exit 2 so an operator can
// distinguish them from an unexpected internal failure at exit 1.
func exitCodeFor(err error) int {
	var forgeErr *apierror.ForgeError
	if errors.As(err, &forgeErr) {
		return 2
	}
	return 1
}
