package git

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	gogit "github.com/go-git/go-git/v5"

	"github.com/akolsi/git-evolve/internal/domain"
)

// GoGitRepository implements domain.LocalRepository using go-git/v5.
// It verifies the path is inside a Git worktree and derives the repository
// name without shelling out.
type GoGitRepository struct {
	repo   *gogit.Repository
	root   string
	name   string
	logger Logger
}

// NewGoGitRepository opens the repository containing path. The .git directory
// is discovered upward from path, so any subdirectory of a worktree works.
// Returns domain.ErrNotARepository if no repository is found.
func NewGoGitRepository(ctx context.Context, path string, log Logger) (*GoGitRepository, error) {
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotARepository, path)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("%w: bare repositories have no worktree: %s", domain.ErrNotARepository, path)
	}
	root := wt.Filesystem.Root()

	r := &GoGitRepository{repo: repo, root: root, logger: log}
	r.name = r.deriveName(ctx)

	return r, nil
}

// Root returns the absolute path of the worktree root.
func (r *GoGitRepository) Root() string {
	return r.root
}

// Name returns the repository name.
func (r *GoGitRepository) Name() string {
	return r.name
}

// Close releases any resources held by the repository.
// For go-git, this is a no-op as the repository doesn't hold persistent resources.
func (r *GoGitRepository) Close() error {
	return nil
}

// deriveName extracts owner/repo from the origin remote URL, falling back to
// the basename of the worktree root for remote-less repositories.
func (r *GoGitRepository) deriveName(ctx context.Context) string {
	fallback := filepath.Base(r.root)

	remote, err := r.repo.Remote("origin")
	if err != nil {
		r.logger.Debug(ctx, "no origin remote; using worktree basename", map[string]interface{}{
			"repository": fallback,
		})
		return fallback
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return fallback
	}

	name, err := parseRepoFromURL(urls[0])
	if err != nil {
		r.logger.Warn(ctx, "could not parse origin remote URL", map[string]interface{}{
			"url":   urls[0],
			"error": err.Error(),
		})
		return fallback
	}
	return name
}

// Regular expressions for parsing Git remote URLs.
var (
	// httpsURLPattern matches HTTPS URLs like:
	// https://github.com/owner/repo.git
	// https://github.com/owner/repo
	httpsURLPattern = regexp.MustCompile(`^https?://[^/]+/([^/]+)/([^/]+?)(?:\.git)?$`)

	// sshURLPattern matches SSH URLs like:
	// git@github.com:owner/repo.git
	// git@github.com:owner/repo
	sshURLPattern = regexp.MustCompile(`^git@[^:]+:([^/]+)/([^/]+?)(?:\.git)?$`)
)

// parseRepoFromURL extracts owner/repo from a Git remote URL.
// Supports both HTTPS and SSH formats:
//   - https://github.com/owner/repo.git -> owner/repo
//   - git@github.com:owner/repo.git -> owner/repo
func parseRepoFromURL(url string) (string, error) {
	url = strings.TrimSpace(url)

	if matches := httpsURLPattern.FindStringSubmatch(url); len(matches) == 3 {
		return matches[1] + "/" + matches[2], nil
	}

	if matches := sshURLPattern.FindStringSubmatch(url); len(matches) == 3 {
		return matches[1] + "/" + matches[2], nil
	}

	return "", fmt.Errorf("unrecognized URL format: %s", url)
}
