package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRepo creates a temporary git repository for testing
func setupTestRepo(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()

	cmd := exec.Command("git", "init")
	cmd.Dir = tmpDir
	require.NoError(t, cmd.Run())

	cmd = exec.Command("git", "config", "user.email", "test@example.com")
	cmd.Dir = tmpDir
	require.NoError(t, cmd.Run())

	cmd = exec.Command("git", "config", "user.name", "Test User")
	cmd.Dir = tmpDir
	require.NoError(t, cmd.Run())

	return tmpDir
}

// writeFile creates a file inside the repo
func writeFile(t *testing.T, repoDir, filename, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(repoDir, filename), []byte(content), 0644))
}

func TestNewExecutor(t *testing.T) {
	executor := NewExecutor("/tmp/test")
	assert.NotNil(t, executor)
}

func TestExecutor_DiffCached(t *testing.T) {
	repoDir := setupTestRepo(t)
	executor := NewExecutor(repoDir)
	ctx := context.Background()

	t.Run("empty staging area", func(t *testing.T) {
		diff, err := executor.DiffCached(ctx)
		require.NoError(t, err)
		assert.Empty(t, diff)
	})

	t.Run("staged file appears in diff", func(t *testing.T) {
		writeFile(t, repoDir, "hello.go", "package hello\n")
		cmd := exec.Command("git", "add", "hello.go")
		cmd.Dir = repoDir
		require.NoError(t, cmd.Run())

		diff, err := executor.DiffCached(ctx)
		require.NoError(t, err)
		assert.Contains(t, diff, "diff --git a/hello.go b/hello.go")
		assert.Contains(t, diff, "package hello")
	})
}

func TestExecutor_StageAllAndCommit(t *testing.T) {
	repoDir := setupTestRepo(t)
	executor := NewExecutor(repoDir)
	ctx := context.Background()

	writeFile(t, repoDir, "a.txt", "one\n")
	writeFile(t, repoDir, "b.txt", "two\n")

	require.NoError(t, executor.StageAll(ctx))

	diff, err := executor.DiffCached(ctx)
	require.NoError(t, err)
	assert.Contains(t, diff, "a.txt")
	assert.Contains(t, diff, "b.txt")

	require.NoError(t, executor.Commit(ctx, "chore: add test files"))

	diff, err = executor.DiffCached(ctx)
	require.NoError(t, err)
	assert.Empty(t, diff)
}

func TestExecutor_Status(t *testing.T) {
	repoDir := setupTestRepo(t)
	executor := NewExecutor(repoDir)

	status, err := executor.Status(context.Background())
	require.NoError(t, err)
	assert.Contains(t, status, "On branch")
}

func TestExecutor_CurrentBranch(t *testing.T) {
	repoDir := setupTestRepo(t)
	executor := NewExecutor(repoDir)
	ctx := context.Background()

	writeFile(t, repoDir, "a.txt", "one\n")
	require.NoError(t, executor.StageAll(ctx))
	require.NoError(t, executor.Commit(ctx, "init"))

	branch, err := executor.CurrentBranch(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, branch)
}

func TestExecutor_Commit_NoStagedChanges(t *testing.T) {
	repoDir := setupTestRepo(t)
	executor := NewExecutor(repoDir)

	err := executor.Commit(context.Background(), "empty")
	assert.Error(t, err)
}
