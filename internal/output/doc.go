// Package output provides structured output and error handling for the pmdocs CLI.
//
// # Printer
//
// Commands write their results through a Printer, which switches between
// JSON and styled text based on the --json flag:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, output.IsTTY(cmd.OutOrStdout()))
//	printer.Success(map[string]any{"message": "Exported 12 documents"})
//	printer.Action("created", "API/Ping.md", issue.WebURL)
//	printer.Error(err)
//
// # Errors
//
// Every error returned to the CLI is an *ExitError whose code becomes the
// process exit status:
//
//	output.ExitSuccess     // 0
//	output.ExitUserError   // 1: bad flags, missing configuration
//	output.ExitSystemError // 2: fetch, git or tracker failure
//	output.ExitConflict    // 3: output path conflict
//
// Domain failures additionally carry a kind that callers match with errors.Is:
// ErrFetch, ErrPathConflict, ErrTrackerMutation and ErrUnclassifiedDiff.
package output
