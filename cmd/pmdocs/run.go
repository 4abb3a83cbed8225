package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gorewood/pmdocs/internal/git"
	"github.com/gorewood/pmdocs/internal/output"
	"github.com/gorewood/pmdocs/internal/render"
)

// newRunCmd creates the run command: export, commit and push, then sync.
func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Export, commit and push, then sync the tracker",
		Long: `Run the whole pipeline against the output repository:

  1. export the workspace into the output directory
  2. commit every change (git add -A) and push to the configured remote
  3. reconcile the new commit's diff with GitLab issues

The output directory must be inside a git repository. When the export
changes nothing, no commit is made and the tracker is not contacted, unless
an earlier commit never reached the remote: it is pushed and reconciled then.
If reconciling fails after the push, retry with 'pmdocs sync <commit>'.

Examples:
  pmdocs run
  pmdocs run --remote "" --dry-run     # Commit locally, preview tracker changes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			return a.runPipeline(cmd, dryRun)
		},
	}

	addExportFlags(cmd)
	addSyncFlags(cmd)
	cmd.Flags().String("remote", "", "Git remote to push to (empty string disables push; default origin)")
	cmd.Flags().String("message", "", "Commit message")
	return cmd
}

func (a *app) runPipeline(cmd *cobra.Command, dryRun bool) error {
	ctx := cmd.Context()

	// Fail before exporting when sync could not run afterwards.
	if err := a.cfg.ValidateForSync(); err != nil {
		return a.fail(err)
	}
	repo := a.repo()
	if err := a.ensureRepo(cmd, repo); err != nil {
		return a.fail(err)
	}

	result, err := a.Export(ctx, nil)
	if err != nil {
		return a.fail(err)
	}
	a.log.Info("exported", "files", result.Files, "collections", len(result.Collections))

	pub, err := repo.CommitAndPush(ctx, a.cfg.Git.Message)
	if err != nil {
		if pub.Committed {
			a.warn("the new commit was not pushed; the next run pushes and reconciles it")
		}
		return a.fail(err)
	}
	if !pub.Publishes() {
		a.log.Info("no document changes, skipping sync")
		if a.printer.IsJSON() {
			return a.printer.Success(map[string]any{
				"files":     result.Files,
				"committed": false,
			})
		}
		return a.printer.Success(map[string]any{
			"message": fmt.Sprintf("Exported %d document(s); nothing changed", result.Files),
		})
	}
	if pub.Pending {
		a.log.Info("pushed an earlier commit", "remote", a.cfg.Git.Remote)
	}

	sha, err := repo.CurrentCommit(ctx)
	if err != nil {
		return a.fail(err)
	}
	stat, err := repo.Diffstat(ctx, sha)
	if err != nil {
		a.log.Warn("diffstat unavailable", "commit", sha, "error", err)
	}
	a.log.Info("committed documents", "commit", sha,
		"files", stat.Files, "insertions", stat.Insertions, "deletions", stat.Deletions)

	summary, err := a.Sync(ctx, sha, dryRun)
	if err != nil {
		a.warn(fmt.Sprintf("commit %s is not fully reconciled; retry with 'pmdocs sync %s'", shortSHA(sha), sha))
		return a.fail(err)
	}

	if a.printer.IsJSON() {
		return a.printer.Success(map[string]any{
			"files":     result.Files,
			"committed": pub.Committed,
			"pushed":    pub.Pushed,
			"commit":    sha,
			"diffstat":  stat,
			"dry_run":   dryRun,
			"sync":      summary,
		})
	}
	a.printer.KeyValue("Commit", fmt.Sprintf("%s (%d files, +%d/-%d)", shortSHA(sha), stat.Files, stat.Insertions, stat.Deletions))
	return printSyncSummary(a.printer, summary, dryRun)
}

// ensureRepo checks that the output directory lives in a git repository.
func (a *app) ensureRepo(cmd *cobra.Command, repo *git.Repo) error {
	if err := render.EnsureDir(a.cfg.Output); err != nil {
		return err
	}
	if !repo.IsRepo(cmd.Context()) {
		return output.NewUserError(fmt.Sprintf("%s is not in a git repository (run git init there first)", a.cfg.Output))
	}
	return nil
}
