// Package main is the entry point for the git-evolve CLI application.
// git-evolve measures how much of a repository's current content survives
// from a designated base commit by attributing every tracked line to the
// commit that last touched it.
package main

import (
	"context"
	"io"

	"github.com/akolsi/git-evolve/cmd"
	"github.com/akolsi/git-evolve/internal/adapters/git"
	logadapter "github.com/akolsi/git-evolve/internal/adapters/logger"
	"github.com/akolsi/git-evolve/internal/adapters/output"
	"github.com/akolsi/git-evolve/internal/domain"
	"github.com/akolsi/git-evolve/internal/infrastructure/config"
	"github.com/akolsi/git-evolve/internal/usecases"
)

func main() {
	// Wire up production dependencies
	deps := &cmd.Dependencies{
		LoggerFactory: func() cmd.Logger {
			// Built lazily so the verbose flag can raise the level first.
			return logadapter.NewFromEnv()
		},

		ConfigLoader: func() (*cmd.AppConfig, error) {
			cfg, err := config.Load()
			if err != nil {
				return nil, err
			}
			return &cmd.AppConfig{
				Workers:    cfg.Workers,
				LogLevel:   cfg.LogLevel,
				LogAppName: cfg.LogAppName,
				NoColor:    cfg.NoColor,
			}, nil
		},

		RepoFactory: func(ctx context.Context, path string, log cmd.Logger) (domain.LocalRepository, error) {
			return git.NewGoGitRepository(ctx, path, log)
		},

		EngineFactory: func(repo domain.LocalRepository, log cmd.Logger, progress io.Writer) domain.Engine {
			gateway := git.NewCLIGateway(log)
			return usecases.NewAnalysisEngine(repo, gateway, log, progress)
		},

		WriterFactory: func(out io.Writer, format string, colorize bool) domain.ReportWriter {
			return output.NewWriterWithOutput(out, output.Format(format), colorize)
		},
	}

	cmd.SetDefaultDependencies(deps)
	cmd.Execute()
}
