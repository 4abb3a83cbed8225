package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gorewood/pmdocs/internal/export"
	"github.com/gorewood/pmdocs/internal/output"
)

// newExportCmd creates the export command.
func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export workspace collections to Markdown",
		Long: `Export the collections of a Postman workspace to a Markdown tree.

The output directory is cleaned first (dot entries such as .git are kept),
then every selected collection is written to <output>/<collection>.

Examples:
  pmdocs export --workspace 1f0d...                 # Export the whole workspace
  pmdocs export --collection 12-abc --collection 'Billing*'
  pmdocs export -o ./api-docs --keep-raw            # Also save the API responses`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			result, err := a.Export(cmd.Context(), nil)
			if err != nil {
				return a.fail(err)
			}
			return printExportResult(a.printer, result)
		},
	}

	addExportFlags(cmd)
	return cmd
}

// addExportFlags registers the flags shared by export and run.
func addExportFlags(cmd *cobra.Command) {
	cmd.Flags().String("workspace", "", "Postman workspace id")
	cmd.Flags().StringSlice("collection", nil, "Collection uid or name glob to export (repeatable; default all)")
	cmd.Flags().Bool("keep-raw", false, "Also write workspace.json and collection.json snapshots")
}

// printExportResult writes the export summary.
func printExportResult(printer *output.Printer, result *export.Result) error {
	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"dir":         result.Dir,
			"files":       result.Files,
			"collections": result.Collections,
			"skipped":     result.Skipped,
		})
	}

	rows := make([][]string, 0, len(result.Collections))
	for _, coll := range result.Collections {
		rows = append(rows, []string{coll.Name, strconv.Itoa(coll.Files), coll.Dir})
	}
	printer.Section("Export")
	printer.Table([]string{"Collection", "Files", "Directory"}, rows)
	if len(result.Skipped) > 0 {
		printer.KeyValue("Skipped", fmt.Sprintf("%d collection(s)", len(result.Skipped)))
	}
	printer.Println()
	return printer.Success(map[string]any{
		"message": fmt.Sprintf("Wrote %d document(s) to %s", result.Files, result.Dir),
	})
}
