package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Executor defines the interface for git command execution
type Executor interface {
	// DiffCached returns the diff of staged changes
	DiffCached(ctx context.Context) (string, error)

	// Status returns the current git status
	Status(ctx context.Context) (string, error)

	// StageAll stages all changes in the working tree
	StageAll(ctx context.Context) error

	// Commit executes a git commit with the given message
	Commit(ctx context.Context, message string) error

	// Push pushes the current branch to its remote
	Push(ctx context.Context) error

	// CurrentBranch returns the current branch name
	CurrentBranch(ctx context.Context) (string, error)
}

// DefaultExecutor is the default implementation of Executor
type DefaultExecutor struct {
	workDir string
}

// NewExecutor creates a new DefaultExecutor
func NewExecutor(workDir string) *DefaultExecutor {
	return &DefaultExecutor{workDir: workDir}
}

// runGit runs a git command and returns the output
func (e *DefaultExecutor) runGit(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = e.workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s failed: %w\n%s", strings.Join(args, " "), err, stderr.String())
	}

	return strings.TrimSpace(stdout.String()), nil
}

// DiffCached returns the diff of staged changes
func (e *DefaultExecutor) DiffCached(ctx context.Context) (string, error) {
	return e.runGit(ctx, "diff", "--cached")
}

// Status returns the current git status
func (e *DefaultExecutor) Status(ctx context.Context) (string, error) {
	return e.runGit(ctx, "status")
}

// StageAll stages all changes in the working tree
func (e *DefaultExecutor) StageAll(ctx context.Context) error {
	_, err := e.runGit(ctx, "add", "-A")
	return err
}

// Commit executes a git commit with the given message
func (e *DefaultExecutor) Commit(ctx context.Context, message string) error {
	_, err := e.runGit(ctx, "commit", "-m", message)
	return err
}

// Push pushes the current branch to its remote
func (e *DefaultExecutor) Push(ctx context.Context) error {
	_, err := e.runGit(ctx, "push")
	return err
}

// CurrentBranch returns the current branch name
func (e *DefaultExecutor) CurrentBranch(ctx context.Context) (string, error) {
	return e.runGit(ctx, "rev-parse", "--abbrev-ref", "HEAD")
}
