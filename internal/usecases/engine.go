// Package usecases contains the application business logic.
// This package orchestrates domain entities and interfaces to fulfill use cases.
package usecases

import (
	"context"
	"fmt"
	"io"

	"github.com/akolsi/git-evolve/internal/domain"
)

// Logger defines the logging interface required by the use cases.
// This abstracts the logger dependency to avoid coupling to a specific implementation.
type Logger interface {
	Info(ctx context.Context, msg string, fields map[string]interface{})
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
	Error(ctx context.Context, msg string, err error, fields map[string]interface{})
}

// AnalysisEngine runs a full evolution analysis: it resolves the base
// revision, enumerates the tracked file set, fans the line-attribution
// analyzer out across it, and reduces the results into an EvolutionReport.
type AnalysisEngine struct {
	repo       domain.LocalRepository
	resolver   *RevisionResolver
	enumerator *FileEnumerator
	scheduler  *Scheduler
	builder    *ReportBuilder
	logger     Logger
}

// NewAnalysisEngine creates an AnalysisEngine over the given repository and
// command gateway. Progress output (when enabled per invocation) is written
// to progress; pass nil to discard it.
func NewAnalysisEngine(
	repo domain.LocalRepository,
	gateway domain.CommandGateway,
	log Logger,
	progress io.Writer,
) *AnalysisEngine {
	analyzer := NewLineAnalyzer(gateway, log)

	return &AnalysisEngine{
		repo:       repo,
		resolver:   NewRevisionResolver(gateway),
		enumerator: NewFileEnumerator(gateway, log),
		scheduler:  NewScheduler(analyzer, log, progress),
		builder:    NewReportBuilder(gateway, log),
		logger:     log,
	}
}

// Analyze produces the evolution report for the given input.
// Fatal conditions (unresolvable revision, unavailable backend, failed file
// listing, cancellation) return an error; per-file attribution problems are
// contained inside the analyzer and never surface here.
func (e *AnalysisEngine) Analyze(ctx context.Context, input domain.AnalyzeInput) (*domain.EvolutionReport, error) {
	workers := input.Workers
	if workers < 1 {
		workers = domain.DefaultWorkers
	}
	root := e.repo.Root()

	e.logger.Info(ctx, "starting evolution analysis", map[string]interface{}{
		"repository": e.repo.Name(),
		"base_ref":   input.BaseRef,
		"parallel":   input.Parallel,
		"workers":    workers,
	})

	base, err := e.resolver.Resolve(ctx, input.BaseRef, root)
	if err != nil {
		return nil, err
	}

	files, err := e.enumerator.ListTrackedFiles(ctx, root, input.ExcludePatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracked files: %w", err)
	}

	if len(files) == 0 {
		e.logger.Warn(ctx, "no tracked files found", map[string]interface{}{
			"repository": e.repo.Name(),
		})
		return e.builder.Build(ctx, BuildInput{
			BaseRevision: base,
			RepoName:     e.repo.Name(),
			RepoRoot:     root,
		}), nil
	}

	results, err := e.scheduler.RunAll(ctx, files, base, root, ScheduleOptions{
		Parallel:       input.Parallel,
		Workers:        workers,
		ReportProgress: input.ReportProgress,
	})
	if err != nil {
		return nil, err
	}

	report := e.builder.Build(ctx, BuildInput{
		Results:       results,
		BaseRevision:  base,
		RepoName:      e.repo.Name(),
		RepoRoot:      root,
		FileBreakdown: input.FileBreakdown,
		Timeline:      input.Timeline,
	})

	e.logger.Info(ctx, "evolution analysis complete", map[string]interface{}{
		"repository":        report.Repository,
		"base_commit":       report.BaseCommit,
		"total_lines":       report.TotalLines,
		"evolution_percent": report.EvolutionPercent,
		"files_analyzed":    report.FilesAnalyzed,
		"files_skipped":     report.FilesSkipped,
	})

	return report, nil
}
