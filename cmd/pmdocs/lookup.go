package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// newLookupCmd creates the lookup command.
func newLookupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup <path>",
		Short: "Show the GitLab issue tracking a document",
		Long: `Search the GitLab project for the issue tracking a document path.

The path is relative to the output directory, as it appears in git:

  pmdocs lookup API/Ping.md
  pmdocs lookup "Billing API/Invoices/List invoices.md" --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			issue, err := a.Lookup(cmd.Context(), args[0])
			if err != nil {
				return a.fail(err)
			}

			if a.printer.IsJSON() {
				return a.printer.Success(map[string]any{
					"path":  args[0],
					"found": issue != nil,
					"issue": issue,
				})
			}
			if issue == nil {
				return a.printer.Success(map[string]any{"message": "No issue tracks " + args[0]})
			}

			a.printer.KeyValue("Issue", fmt.Sprintf("#%d %s", issue.IID, issue.Title))
			a.printer.KeyValue("State", issue.State)
			if issue.ClosedAt != nil {
				a.printer.KeyValue("Closed", issue.ClosedAt.Format(time.RFC3339))
			}
			a.printer.KeyValue("Labels", strings.Join(issue.Labels, ", "))
			a.printer.KeyValue("URL", issue.WebURL)
			return nil
		},
	}

	cmd.Flags().String("project", "", "GitLab project id or group/project path")
	return cmd
}
