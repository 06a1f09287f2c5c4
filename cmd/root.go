// Package cmd provides the CLI commands for git-evolve.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/akolsi/git-evolve/internal/domain"
)

// Exit codes.
const (
	exitFailure   = 1
	exitInterrupt = 130
)

// Logger defines the logging interface used by the command.
type Logger interface {
	Info(ctx context.Context, msg string, fields map[string]interface{})
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
	Error(ctx context.Context, msg string, err error, fields map[string]interface{})
}

// AppConfig holds application configuration loaded by ConfigLoader.
type AppConfig struct {
	// Workers is the default attribution worker-pool size.
	Workers int

	// LogLevel is the log level setting.
	LogLevel string

	// LogAppName is the application name for logging.
	LogAppName string

	// NoColor disables colored output.
	NoColor bool
}

// Dependencies holds all injectable dependencies for the command.
// This enables testing by allowing mock implementations to be injected.
type Dependencies struct {
	// LoggerFactory creates a logger instance.
	LoggerFactory func() Logger

	// ConfigLoader loads application configuration.
	ConfigLoader func() (*AppConfig, error)

	// RepoFactory opens the local repository containing path.
	RepoFactory func(ctx context.Context, path string, log Logger) (domain.LocalRepository, error)

	// EngineFactory creates the analysis engine over an opened repository.
	// Progress output (when enabled) is written to progress.
	EngineFactory func(repo domain.LocalRepository, log Logger, progress io.Writer) domain.Engine

	// WriterFactory creates the report writer for the given format
	// ("visual", "json", or "quiet").
	WriterFactory func(out io.Writer, format string, colorize bool) domain.ReportWriter

	// Stdout is the writer for the rendered report.
	Stdout io.Writer

	// Stderr is the writer for warnings and progress.
	Stderr io.Writer
}

// Command-line flags.
var (
	baseRef       string
	jsonOutput    bool
	fileBreakdown bool
	timeline      bool
	noParallel    bool
	workers       int
	excludes      []string
	quiet         bool
	noColor       bool
	verbose       bool
)

// defaultDeps holds the production dependencies.
// This is set by the production wiring in main via SetDefaultDependencies.
var defaultDeps *Dependencies

// SetDefaultDependencies sets the default dependencies for production use.
// This should be called from main() before Execute().
func SetDefaultDependencies(deps *Dependencies) {
	defaultDeps = deps
}

// NewRootCmd creates the root command for git-evolve.
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithDeps(defaultDeps)
}

// NewRootCmdWithDeps creates the root command with explicit dependencies.
// This is the primary constructor that enables testing via dependency injection.
func NewRootCmdWithDeps(deps *Dependencies) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "git-evolve [path]",
		Short: "Measure how much of a codebase has evolved since a base commit",
		Long: `git-evolve attributes every line of every tracked file to the commit that
last touched it, then reports how much of the codebase still survives from a
designated base commit versus how much has been modified or added since.

All context is derived from the local repository; git is queried read-only.

Examples:
  # Evolution since a release tag
  git-evolve --base v1.0.0

  # Per-file breakdown and commit timeline
  git-evolve --base HEAD~20 --files --timeline

  # Machine-readable output, excluding vendored code
  git-evolve --base v1.0.0 --json --exclude 'vendor/*'

  # Just the number
  git-evolve --base v1.0.0 --quiet`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, deps)
		},
	}

	rootCmd.Flags().StringVarP(&baseRef, "base", "b", "",
		"Base commit hash, tag, or reference (required)")
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false,
		"Output the report as JSON")
	rootCmd.Flags().BoolVar(&fileBreakdown, "files", false,
		"Include the per-file breakdown")
	rootCmd.Flags().BoolVar(&timeline, "timeline", false,
		"Include the commit timeline since the base")
	rootCmd.Flags().BoolVar(&noParallel, "no-parallel", false,
		"Disable parallel file analysis")
	rootCmd.Flags().IntVarP(&workers, "workers", "w", 0,
		fmt.Sprintf("Number of attribution workers (default %d)", domain.DefaultWorkers))
	rootCmd.Flags().StringSliceVarP(&excludes, "exclude", "x", nil,
		"Glob pattern to exclude from analysis (repeatable)")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false,
		"Print only the evolution percentage")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false,
		"Disable colored output")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose/debug logging")

	_ = rootCmd.MarkFlagRequired("base")

	return rootCmd
}

// runAnalyze executes the evolution analysis with injected dependencies.
func runAnalyze(cmd *cobra.Command, args []string, deps *Dependencies) error {
	if deps == nil {
		return errors.New("dependencies not configured")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	repoPath := "."
	if len(args) > 0 {
		repoPath = args[0]
	}

	stdout := deps.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := deps.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	// Set log level based on verbose flag (best-effort)
	if verbose {
		if err := os.Setenv("GIT_EVOLVE_LOG_LEVEL", "debug"); err != nil {
			fmt.Fprintf(stderr, "warning: could not set log level: %v\n", err)
		}
	}

	log := deps.LoggerFactory()

	cfg, err := deps.ConfigLoader()
	if err != nil {
		log.Error(ctx, "failed to load configuration", err, nil)
		return fmt.Errorf("configuration error: %w", err)
	}

	repo, err := deps.RepoFactory(ctx, repoPath, log)
	if err != nil {
		log.Error(ctx, "failed to open git repository", err, map[string]interface{}{
			"path": repoPath,
		})
		if errors.Is(err, domain.ErrNotARepository) {
			return fmt.Errorf("not a git repository: %s", repoPath)
		}
		return err
	}
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			log.Warn(ctx, "failed to close git repository", map[string]interface{}{
				"error": closeErr.Error(),
			})
		}
	}()

	format := "visual"
	switch {
	case jsonOutput:
		format = "json"
	case quiet:
		format = "quiet"
	}

	effectiveWorkers := workers
	if effectiveWorkers < 1 {
		effectiveWorkers = cfg.Workers
	}

	engine := deps.EngineFactory(repo, log, stderr)
	report, err := engine.Analyze(ctx, domain.AnalyzeInput{
		BaseRef:         baseRef,
		FileBreakdown:   fileBreakdown,
		Timeline:        timeline,
		Parallel:        !noParallel,
		Workers:         effectiveWorkers,
		ExcludePatterns: excludes,
		ReportProgress:  format == "visual",
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		log.Error(ctx, "analysis failed", err, nil)
		if errors.Is(err, domain.ErrInvalidRevision) {
			return fmt.Errorf("cannot resolve base revision %q", baseRef)
		}
		if errors.Is(err, domain.ErrBackendUnavailable) {
			return errors.New("git executable not found; is git installed and on PATH?")
		}
		return err
	}

	colorize := !noColor && !cfg.NoColor && format == "visual"
	writer := deps.WriterFactory(stdout, format, colorize)
	if err := writer.Write(report); err != nil {
		log.Error(ctx, "failed to write report", err, nil)
		return fmt.Errorf("output error: %w", err)
	}

	return nil
}

// Execute runs the root command, mapping errors to exit codes:
// 0 on success, 1 on failure, 130 on interruption.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := NewRootCmd()
	rootCmd.SilenceErrors = true
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err == nil {
		return
	}
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "Interrupted")
		os.Exit(exitInterrupt)
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(exitFailure)
}
