// Package domain defines the core business entities and interfaces for git-evolve.
// This package contains no external dependencies and represents the innermost layer
// of the CLEAN architecture.
package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Domain errors for repository access and revision resolution.
var (
	// ErrBackendUnavailable indicates the git executable cannot be located or started.
	ErrBackendUnavailable = errors.New("git executable not available")

	// ErrNotARepository indicates the specified path is not inside a Git repository.
	ErrNotARepository = errors.New("not a git repository")

	// ErrInvalidRevision indicates the base reference does not resolve to a
	// full 40-character revision identifier.
	ErrInvalidRevision = errors.New("invalid base revision")

	// ErrNoRemoteOrigin indicates no 'origin' remote is configured.
	ErrNoRemoteOrigin = errors.New("no 'origin' remote configured")
)

// BackendError is returned when a git invocation exits non-zero.
type BackendError struct {
	// Args is the argument vector passed to git.
	Args []string

	// ExitCode is the process exit status.
	ExitCode int

	// Stderr is the captured standard error text.
	Stderr string
}

func (e *BackendError) Error() string {
	msg := fmt.Sprintf("git %s exited with status %d", strings.Join(e.Args, " "), e.ExitCode)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

// CommandGateway issues read-only queries against the git backend.
// Implementations capture stdout as the result and stderr for diagnostics.
// A failed invocation is definitive for that call; there are no retries.
type CommandGateway interface {
	// Execute runs git with the given argument vector in workDir (empty
	// string means the current directory) and returns its standard output.
	// Returns *BackendError on non-zero exit and an error wrapping
	// ErrBackendUnavailable when the executable cannot be started.
	Execute(ctx context.Context, args []string, workDir string) (string, error)
}

// LocalRepository provides context derived from a local Git worktree.
type LocalRepository interface {
	// Root returns the absolute path of the worktree root.
	Root() string

	// Name returns the repository name: owner/repo when an origin remote
	// exists, otherwise the basename of the worktree root.
	Name() string

	// Close releases any resources held by the repository.
	Close() error
}

// Engine runs a full evolution analysis and produces the report.
type Engine interface {
	Analyze(ctx context.Context, input AnalyzeInput) (*EvolutionReport, error)
}

// ReportWriter renders an EvolutionReport to an output destination.
type ReportWriter interface {
	// Write renders the report in the writer's configured form.
	Write(report *EvolutionReport) error
}
