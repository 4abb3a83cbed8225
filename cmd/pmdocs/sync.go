package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/pmdocs/internal/output"
	"github.com/gorewood/pmdocs/internal/reconcile"
)

// newSyncCmd creates the sync command.
func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync [commit]",
		Short: "Reconcile a commit's changed documents with GitLab issues",
		Long: `Reconcile the diff of a commit against the GitLab project.

Every changed document gets exactly one issue, titled with its path:
  added/modified  create the issue, or comment with the diff (reopening it
                  and clearing the delete label when needed)
  deleted         label the issue "delete", or comment if already labeled
  renamed         reported, left alone

The commit defaults to the latest commit of the output repository.

Examples:
  pmdocs sync                       # Reconcile HEAD of the output repo
  pmdocs sync 4f2a9c1e...           # Reconcile a specific commit
  pmdocs sync --dry-run --json      # Show what would change`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			var sha string
			if len(args) == 1 {
				sha = args[0]
			}
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			summary, err := a.Sync(cmd.Context(), sha, dryRun)
			if err != nil {
				return a.fail(err)
			}
			return printSyncSummary(a.printer, summary, dryRun)
		},
	}

	addSyncFlags(cmd)
	return cmd
}

// addSyncFlags registers the flags shared by sync and run.
func addSyncFlags(cmd *cobra.Command) {
	cmd.Flags().String("project", "", "GitLab project id or group/project path")
	cmd.Flags().Duration("delay", 0, "Courtesy delay before every tracker call (default 1s)")
	cmd.Flags().Bool("dry-run", false, "Search the tracker but do not write to it")
}

// printSyncSummary writes one line per action followed by the totals.
func printSyncSummary(printer *output.Printer, summary *reconcile.Summary, dryRun bool) error {
	if printer.IsJSON() {
		data := map[string]any{
			"commit":    summary.Commit,
			"dry_run":   dryRun,
			"pages":     summary.Pages,
			"entries":   summary.Entries,
			"mutations": summary.Mutations,
			"outcomes":  summary.Outcomes,
			"actions":   summary.Actions,
		}
		if dryRun {
			data["planned"] = summary.Planned
		}
		return printer.Success(data)
	}

	for _, action := range summary.Actions {
		printer.Action(string(action.Outcome), action.Path, action.IssueURL)
		if action.Kind == reconcile.Renamed {
			printer.Warn("%s was renamed; its issue is left unchanged", action.Path)
		}
	}
	if len(summary.Actions) > 0 {
		printer.Println()
	}

	prefix := ""
	if dryRun {
		prefix = "[dry run] "
	}
	return printer.Success(map[string]any{
		"message": fmt.Sprintf("%sReconciled %d document(s) from %s: %s",
			prefix, summary.Entries, shortSHA(summary.Commit), formatOutcomes(summary.Outcomes)),
	})
}

// formatOutcomes renders outcome counts as "created 2, commented 1".
func formatOutcomes(outcomes map[reconcile.Outcome]int) string {
	if len(outcomes) == 0 {
		return "no changes"
	}
	keys := make([]string, 0, len(outcomes))
	for outcome := range outcomes {
		keys = append(keys, string(outcome))
	}
	slices.Sort(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s %d", key, outcomes[reconcile.Outcome(key)]))
	}
	return strings.Join(parts, ", ")
}

func shortSHA(sha string) string {
	if len(sha) > 12 {
		return sha[:12]
	}
	return sha
}
