// Package git provides Git operations via exec for the pmdocs CLI.
package git

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/gorewood/pmdocs/internal/output"
)

// RunContext executes a git command in dir with the given context and arguments.
// It captures stdout and returns it as a trimmed string.
// Returns an *output.ExitError on failure with appropriate exit code.
func RunContext(ctx context.Context, dir string, args ...string) (string, error) {
	if dir != "" {
		args = append([]string{"-C", dir}, args...)
	}
	cmd := exec.CommandContext(ctx, "git", args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		// Check if git is not found
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return "", output.NewSystemError("git not found: ensure git is installed and in PATH")
		}

		// Git command failed - include stderr in message
		errMsg := strings.TrimSpace(stderr.String())
		if errMsg == "" {
			errMsg = err.Error()
		}
		return "", output.NewSystemErrorWithCause("git command failed: "+errMsg, err)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// Repo is a git working tree plus the remote and branch to push to.
type Repo struct {
	Dir    string
	Remote string // empty disables push
	Branch string // empty pushes the current branch
}

// NewRepo creates a Repo for the working tree at dir.
func NewRepo(dir, remote, branch string) *Repo {
	return &Repo{Dir: dir, Remote: remote, Branch: branch}
}

func (r *Repo) run(ctx context.Context, args ...string) (string, error) {
	return RunContext(ctx, r.Dir, args...)
}

// IsRepo checks if the working tree is inside a git repository.
func (r *Repo) IsRepo(ctx context.Context) bool {
	_, err := r.run(ctx, "rev-parse", "--git-dir")
	return err == nil
}

// CurrentBranch returns the name of the checked out branch.
func (r *Repo) CurrentBranch(ctx context.Context) (string, error) {
	branch, err := r.run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", output.NewSystemErrorWithCause("failed to get current branch", err)
	}
	return branch, nil
}
