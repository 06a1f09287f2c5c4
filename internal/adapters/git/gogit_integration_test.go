// Package git provides adapters for interacting with local Git repositories.
package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akolsi/git-evolve/internal/domain"
)

// runGit executes a git command in the given directory.
func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v failed: %s", args, string(out))
	return strings.TrimSpace(string(out))
}

// setupTestRepo creates a temporary git repository with one commit.
func setupTestRepo(t *testing.T) string {
	t.Helper()
	requireGit(t)

	dir := t.TempDir()

	runGit(t, dir, "init")
	runGit(t, dir, "config", "user.email", "test@example.com")
	runGit(t, dir, "config", "user.name", "Test User")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.txt"), []byte("initial content\n"), 0o644))
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", "Initial commit")

	return dir
}

func TestNewGoGitRepository_NotARepository(t *testing.T) {
	_, err := NewGoGitRepository(context.Background(), t.TempDir(), &testLogger{})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotARepository)
}

func TestNewGoGitRepository_Root(t *testing.T) {
	dir := setupTestRepo(t)

	repo, err := NewGoGitRepository(context.Background(), dir, &testLogger{})
	require.NoError(t, err)
	defer func() { assert.NoError(t, repo.Close()) }()

	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	root, err := filepath.EvalSymlinks(repo.Root())
	require.NoError(t, err)
	assert.Equal(t, resolved, root)
}

func TestNewGoGitRepository_OpensFromSubdirectory(t *testing.T) {
	dir := setupTestRepo(t)
	sub := filepath.Join(dir, "nested", "deeper")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	repo, err := NewGoGitRepository(context.Background(), sub, &testLogger{})
	require.NoError(t, err)

	assert.Equal(t, filepath.Base(dir), filepath.Base(repo.Root()))
}

func TestGoGitRepository_Name_FromOriginRemote(t *testing.T) {
	dir := setupTestRepo(t)
	runGit(t, dir, "remote", "add", "origin", "https://github.com/TestOrg/test-repo.git")

	repo, err := NewGoGitRepository(context.Background(), dir, &testLogger{})
	require.NoError(t, err)

	assert.Equal(t, "TestOrg/test-repo", repo.Name())
}

func TestGoGitRepository_Name_FallbackToBasename(t *testing.T) {
	dir := setupTestRepo(t)

	repo, err := NewGoGitRepository(context.Background(), dir, &testLogger{})
	require.NoError(t, err)

	assert.Equal(t, filepath.Base(repo.Root()), repo.Name())
}

func TestParseRepoFromURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{
			name: "HTTPS with .git suffix",
			url:  "https://github.com/owner/repo.git",
			want: "owner/repo",
		},
		{
			name: "HTTPS without suffix",
			url:  "https://github.com/owner/repo",
			want: "owner/repo",
		},
		{
			name: "SSH with .git suffix",
			url:  "git@github.com:owner/repo.git",
			want: "owner/repo",
		},
		{
			name: "SSH without suffix",
			url:  "git@github.com:owner/repo",
			want: "owner/repo",
		},
		{
			name:    "unrecognized format",
			url:     "ftp://example.com/repo",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseRepoFromURL(tt.url)

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
