package usecases

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/akolsi/git-evolve/internal/domain"
)

// Analyzer is the per-file attribution dependency of the Scheduler.
type Analyzer interface {
	Attribute(ctx context.Context, file, baseRevision, repoRoot string) domain.FileAttribution
}

// ScheduleOptions control how the scheduler fans out the analyzer.
type ScheduleOptions struct {
	// Parallel enables the worker pool when the file set is large enough.
	Parallel bool

	// Workers bounds concurrent attribution tasks. Values below 1 fall back
	// to domain.DefaultWorkers.
	Workers int

	// ReportProgress enables coarse progress output every
	// domain.ProgressInterval completions.
	ReportProgress bool
}

// Scheduler fans the analyzer out across the file set with bounded
// concurrency. Tasks are independent: no shared mutable state beyond the
// result slice, no ordering dependency between files, and results are
// aggregated commutatively downstream.
type Scheduler struct {
	analyzer Analyzer
	logger   Logger
	progress io.Writer
}

// NewScheduler creates a scheduler driving the given analyzer.
// Progress output goes to progress; pass nil to discard it.
func NewScheduler(analyzer Analyzer, log Logger, progress io.Writer) *Scheduler {
	if progress == nil {
		progress = io.Discard
	}
	return &Scheduler{analyzer: analyzer, logger: log, progress: progress}
}

// RunAll attributes every file and collects the results in completion order.
// Small file sets (at most domain.ParallelThreshold) run sequentially in the
// calling goroutine; larger ones use a pool bounded by opts.Workers when
// opts.Parallel is set. A panicking task is logged as a warning and dropped
// without aborting its siblings. Cancellation stops dispatch and returns
// ctx.Err().
func (s *Scheduler) RunAll(
	ctx context.Context,
	files []string,
	baseRevision, repoRoot string,
	opts ScheduleOptions,
) ([]domain.FileAttribution, error) {
	workers := opts.Workers
	if workers < 1 {
		workers = domain.DefaultWorkers
	}

	if !opts.Parallel || len(files) <= domain.ParallelThreshold {
		return s.runSequential(ctx, files, baseRevision, repoRoot, opts.ReportProgress)
	}
	return s.runParallel(ctx, files, baseRevision, repoRoot, workers, opts.ReportProgress)
}

func (s *Scheduler) runSequential(
	ctx context.Context,
	files []string,
	baseRevision, repoRoot string,
	reportProgress bool,
) ([]domain.FileAttribution, error) {
	results := make([]domain.FileAttribution, 0, len(files))
	for i, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if res, ok := s.attributeContained(ctx, file, baseRevision, repoRoot); ok {
			results = append(results, res)
		}
		s.noteProgress(reportProgress, i+1, len(files))
	}
	return results, nil
}

func (s *Scheduler) runParallel(
	ctx context.Context,
	files []string,
	baseRevision, repoRoot string,
	workers int,
	reportProgress bool,
) ([]domain.FileAttribution, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var (
		mu      sync.Mutex
		results = make([]domain.FileAttribution, 0, len(files))
		done    atomic.Int64
	)

	for _, file := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			res, ok := s.attributeContained(gctx, file, baseRevision, repoRoot)
			if ok {
				mu.Lock()
				results = append(results, res)
				mu.Unlock()
			}
			s.noteProgress(reportProgress, int(done.Add(1)), len(files))
			return nil
		})
	}

	// Tasks never return errors; Wait only synchronizes completion.
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// attributeContained runs one attribution task with panic containment.
// The analyzer already converts its own failures to zero results, so a panic
// here is an infrastructure-level fault: it is logged and the file is dropped
// from the result set.
func (s *Scheduler) attributeContained(
	ctx context.Context,
	file, baseRevision, repoRoot string,
) (res domain.FileAttribution, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn(ctx, "attribution task failed", map[string]interface{}{
				"path":  file,
				"panic": fmt.Sprint(r),
			})
			ok = false
		}
	}()
	return s.analyzer.Attribute(ctx, file, baseRevision, repoRoot), true
}

// noteProgress emits a coarse indicator every ProgressInterval completions.
func (s *Scheduler) noteProgress(enabled bool, completed, totalFiles int) {
	if !enabled {
		return
	}
	if completed%domain.ProgressInterval == 0 || completed == totalFiles {
		fmt.Fprintf(s.progress, "  analyzed %d/%d files\n", completed, totalFiles)
	}
}
