// Package git provides adapters for interacting with local Git repositories.
// cli.go implements the domain.CommandGateway interface by invoking the git
// executable; gogit.go implements domain.LocalRepository using go-git/v5.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/akolsi/git-evolve/internal/domain"
)

// Logger defines the logging interface for the git adapters.
type Logger interface {
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
}

// CLIGateway implements domain.CommandGateway by running the git binary.
// Every call is a short-lived read-only process invocation; stdout is the
// result, stderr is kept for diagnostics on failure.
type CLIGateway struct {
	bin    string
	logger Logger
}

// NewCLIGateway creates a gateway that invokes "git" from PATH.
func NewCLIGateway(log Logger) *CLIGateway {
	return &CLIGateway{bin: "git", logger: log}
}

// NewCLIGatewayWithBinary creates a gateway for a specific executable.
// This is useful for testing against a stub binary.
func NewCLIGatewayWithBinary(bin string, log Logger) *CLIGateway {
	return &CLIGateway{bin: bin, logger: log}
}

// Execute runs git with the given arguments in workDir and returns stdout.
// Returns *domain.BackendError on non-zero exit, or an error wrapping
// domain.ErrBackendUnavailable when the executable cannot be started.
func (g *CLIGateway) Execute(ctx context.Context, args []string, workDir string) (string, error) {
	cmd := exec.CommandContext(ctx, g.bin, args...)
	if workDir != "" {
		cmd.Dir = workDir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.String(), nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		g.logger.Debug(ctx, "git command failed", map[string]interface{}{
			"args":      args,
			"exit_code": exitErr.ExitCode(),
			"stderr":    stderr.String(),
		})
		return "", &domain.BackendError{
			Args:     args,
			ExitCode: exitErr.ExitCode(),
			Stderr:   stderr.String(),
		}
	}

	return "", fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
}
