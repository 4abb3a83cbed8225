// Package git provides Git operations via exec for the pmdocs CLI.
//
// This package wraps git commands by shelling out to the git executable,
// capturing stdout/stderr and translating failures to exit-coded errors.
// Every operation runs against an explicit working tree, normally the
// export output directory.
//
// # Running Git Commands
//
// For custom git commands, use RunContext with the working tree:
//
//	out, err := git.RunContext(ctx, "docs", "status", "--short")
//
// # Repository Operations
//
// A Repo bundles the working tree with the remote and branch to push to:
//
//	repo := git.NewRepo("docs", "origin", "")
//	pub, err := repo.CommitAndPush(ctx, "docs: sync API collections")
//	sha, err := repo.CurrentCommit(ctx)
//	stat, err := repo.Diffstat(ctx, sha)
//
// CommitAndPush stages everything (git add -A) and reports what it did in a
// Publish. With nothing to commit it still pushes a HEAD the remote lacks, so
// a failed push is retried by the next call. An empty remote disables the push.
//
// # Error Handling
//
// All functions return errors wrapped with appropriate exit codes:
//   - ExitSystemError (2) for git failures and a missing git executable
package git
