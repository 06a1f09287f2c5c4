package usecases

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/akolsi/git-evolve/internal/domain"
)

// FileEnumerator lists tracked, non-blank file paths with optional glob-based
// exclusion.
type FileEnumerator struct {
	gateway domain.CommandGateway
	logger  Logger
}

// NewFileEnumerator creates an enumerator backed by the given gateway.
func NewFileEnumerator(gateway domain.CommandGateway, log Logger) *FileEnumerator {
	return &FileEnumerator{gateway: gateway, logger: log}
}

// ListTrackedFiles returns all tracked paths under repoRoot, in listing order,
// deduplicated, with blank entries dropped. When exclude patterns are given,
// a path is dropped if any pattern matches either the full relative path or
// its basename; the first matching pattern wins. Glob semantics are
// shell-style (*, ?, [...]).
func (e *FileEnumerator) ListTrackedFiles(ctx context.Context, repoRoot string, exclude []string) ([]string, error) {
	out, err := e.gateway.Execute(ctx, []string{"ls-files"}, repoRoot)
	if err != nil {
		return nil, fmt.Errorf("ls-files failed: %w", err)
	}

	seen := make(map[string]struct{})
	var files []string
	for _, line := range strings.Split(out, "\n") {
		file := strings.TrimSpace(line)
		if file == "" {
			continue
		}
		if _, dup := seen[file]; dup {
			continue
		}
		seen[file] = struct{}{}
		if e.excluded(ctx, file, exclude) {
			continue
		}
		files = append(files, file)
	}

	e.logger.Debug(ctx, "enumerated tracked files", map[string]interface{}{
		"count":            len(files),
		"exclude_patterns": exclude,
	})

	return files, nil
}

// excluded reports whether file matches any exclusion pattern, tested against
// the full relative path and the basename.
func (e *FileEnumerator) excluded(ctx context.Context, file string, patterns []string) bool {
	base := path.Base(file)
	for _, pattern := range patterns {
		for _, candidate := range []string{file, base} {
			ok, err := path.Match(pattern, candidate)
			if err != nil {
				// Malformed pattern: skip it rather than failing the run.
				e.logger.Warn(ctx, "ignoring malformed exclude pattern", map[string]interface{}{
					"pattern": pattern,
					"error":   err.Error(),
				})
				break
			}
			if ok {
				return true
			}
		}
	}
	return false
}
