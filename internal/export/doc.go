// Package export writes the collections of a Postman workspace to a
// directory of Markdown documents.
//
// # Flow
//
// An export run goes through four steps:
//
//  1. List the workspace collections and keep those matching the filters
//  2. Fetch every selected collection
//  3. Clean the output directory, keeping dot entries such as .git
//  4. Render each collection into <output>/<collection name>
//
// Everything is fetched before the output is touched, so a failed request
// leaves the previous export in place.
//
// # Filters
//
// Filters select collections by uid, id or name glob:
//
//	exporter.Export(ctx, export.Options{
//	    Dir:       "docs",
//	    Workspace: "b3f1...",
//	    Filters:   []string{"12-abc", "Billing*"},
//	})
//
// An empty filter list exports the whole workspace.
//
// # Raw Snapshots
//
// With KeepRaw set, the API responses are saved next to the documents:
//
//	<output>/workspace.json
//	<output>/<collection name>/collection.json
//
// Snapshots are indented JSON so they diff cleanly in git.
package export
