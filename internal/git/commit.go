package git

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/gorewood/pmdocs/internal/output"
)

// Diffstat represents the change statistics of a commit.
type Diffstat struct {
	Files      int `json:"files"`
	Insertions int `json:"insertions"`
	Deletions  int `json:"deletions"`
}

// commitIDRegex matches a full 40 character commit id.
var commitIDRegex = regexp.MustCompile(`\b[0-9a-f]{40}\b`)

// Publish reports what CommitAndPush did.
type Publish struct {
	// Committed is set when a new commit was made.
	Committed bool `json:"committed"`
	// Pending is set when nothing was committed but HEAD, an earlier commit,
	// had not reached the remote yet.
	Pending bool `json:"pending"`
	// Pushed is set when HEAD was pushed.
	Pushed bool `json:"pushed"`
}

// Publishes reports whether HEAD is a commit that this call made or
// delivered, i.e. one whose diff has not been reconciled yet.
func (p Publish) Publishes() bool {
	return p.Committed || p.Pending
}

// CommitAndPush stages every change in the working tree, commits it with
// message and pushes to the configured remote. With nothing to commit it
// still pushes when HEAD is not on the remote, so a commit whose push failed
// is delivered by the next call.
func (r *Repo) CommitAndPush(ctx context.Context, message string) (Publish, error) {
	var pub Publish
	if _, err := r.run(ctx, "add", "-A"); err != nil {
		return pub, err
	}

	// diff --cached --quiet exits 0 when the index matches HEAD
	if _, err := r.run(ctx, "diff", "--cached", "--quiet"); err == nil {
		if r.Remote == "" {
			return pub, nil
		}
		unpushed, err := r.Unpushed(ctx)
		if err != nil || !unpushed {
			return pub, err
		}
		pub.Pending = true
	} else {
		if _, err := r.run(ctx, "commit", "-m", message); err != nil {
			return pub, output.NewSystemErrorWithCause("failed to commit in "+r.Dir, err)
		}
		pub.Committed = true
		if r.Remote == "" {
			return pub, nil
		}
	}

	if err := r.push(ctx); err != nil {
		return pub, err
	}
	pub.Pushed = true
	return pub, nil
}

// Unpushed reports whether HEAD differs from the branch it is pushed to on
// the remote, including when that branch does not exist yet. A repository
// without commits or without a remote has nothing to push.
func (r *Repo) Unpushed(ctx context.Context) (bool, error) {
	if r.Remote == "" {
		return false, nil
	}
	if _, err := r.run(ctx, "rev-parse", "--verify", "--quiet", "HEAD"); err != nil {
		return false, nil
	}
	head, err := r.CurrentCommit(ctx)
	if err != nil {
		return false, err
	}

	branch := r.Branch
	if branch == "" {
		if branch, err = r.CurrentBranch(ctx); err != nil {
			return false, err
		}
	}

	out, err := r.run(ctx, "ls-remote", r.Remote, "refs/heads/"+branch)
	if err != nil {
		return false, output.NewSystemErrorWithCause("failed to read "+branch+" from "+r.Remote, err)
	}
	fields := strings.Fields(out)
	return len(fields) == 0 || fields[0] != head, nil
}

func (r *Repo) push(ctx context.Context) error {
	args := []string{"push", r.Remote}
	if r.Branch != "" {
		args = append(args, "HEAD:"+r.Branch)
	} else {
		args = append(args, "HEAD")
	}
	if _, err := r.run(ctx, args...); err != nil {
		return output.NewSystemErrorWithCause("failed to push to "+r.Remote, err)
	}
	return nil
}

// CurrentCommit returns the full id of the latest commit, parsed from
// git log -1 --format=%H.
func (r *Repo) CurrentCommit(ctx context.Context) (string, error) {
	out, err := r.run(ctx, "log", "-1", "--format=%H")
	if err != nil {
		return "", output.NewSystemErrorWithCause("failed to read latest commit", err)
	}
	sha := commitIDRegex.FindString(out)
	if sha == "" {
		return "", output.NewSystemError("no commit id in git log output: " + out)
	}
	return sha, nil
}

// diffstatLineRegex matches the summary line of git diff --stat
// Example: " 3 files changed, 45 insertions(+), 12 deletions(-)"
var diffstatLineRegex = regexp.MustCompile(`(\d+)\s+files?\s+changed(?:,\s+(\d+)\s+insertions?\(\+\))?(?:,\s+(\d+)\s+deletions?\(-\))?`)

// emptyTreeSHA is the SHA of git's empty tree object.
// Used when diffing from a root commit (which has no parent).
const emptyTreeSHA = "4b825dc642cb6eb9a060e54bf8d69288fbee4904"

// Diffstat returns the change statistics of a single commit against its
// parent, or against the empty tree for a root commit.
func (r *Repo) Diffstat(ctx context.Context, sha string) (Diffstat, error) {
	parent := sha + "^"
	if _, err := r.run(ctx, "rev-parse", "--verify", "--quiet", parent); err != nil {
		parent = emptyTreeSHA
	}

	out, err := r.run(ctx, "diff", "--stat", parent, sha)
	if err != nil {
		return Diffstat{}, output.NewSystemErrorWithCause("failed to get diffstat for "+sha, err)
	}
	return parseDiffstat(out), nil
}

// parseDiffstat extracts file, insertion, and deletion counts from git diff --stat output.
func parseDiffstat(out string) Diffstat {
	summaryLine := findSummaryLine(out)
	if summaryLine == "" {
		return Diffstat{}
	}

	matches := diffstatLineRegex.FindStringSubmatch(summaryLine)
	if matches == nil {
		return Diffstat{}
	}

	return Diffstat{
		Files:      parseMatchInt(matches, 1),
		Insertions: parseMatchInt(matches, 2),
		Deletions:  parseMatchInt(matches, 3),
	}
}

// findSummaryLine finds the last non-empty line in the diff stat output.
func findSummaryLine(out string) string {
	lines := strings.Split(out, "\n")
	for idx := len(lines) - 1; idx >= 0; idx-- {
		line := strings.TrimSpace(lines[idx])
		if line != "" {
			return line
		}
	}
	return ""
}

// parseMatchInt extracts an int from a regex match group, returning 0 on error.
func parseMatchInt(matches []string, idx int) int {
	if idx >= len(matches) || matches[idx] == "" {
		return 0
	}
	val, err := strconv.Atoi(matches[idx])
	if err != nil {
		return 0
	}
	return val
}
