// Package mcp provides a Model Context Protocol server for pmdocs.
// It exposes export, sync and lookup as MCP tools that any MCP-capable agent can use.
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/pmdocs/internal/export"
	"github.com/gorewood/pmdocs/internal/reconcile"
	"github.com/gorewood/pmdocs/internal/tracker"
)

// Service runs pmdocs operations on behalf of the tools.
type Service interface {
	Export(ctx context.Context, filters []string) (*export.Result, error)
	Sync(ctx context.Context, commit string, dryRun bool) (*reconcile.Summary, error)
	Lookup(ctx context.Context, path string) (*tracker.Issue, error)
}

// NewServer creates an MCP server with all pmdocs tools registered.
func NewServer(version string, svc Service) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "pmdocs",
		Version: version,
	}, nil)
	registerTools(server, svc)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(true),
	}
}

// exportAnnotations marks export: it rewrites the output tree but repeating
// it with the same upstream state yields the same files.
func exportAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(true),
		IdempotentHint:  true,
		OpenWorldHint:   boolPtr(true),
	}
}

// syncAnnotations marks sync: additive tracker writes, never deletes.
func syncAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(true),
	}
}

// registerTools adds all pmdocs tools to the server.
func registerTools(server *mcp.Server, svc Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "export",
		Description: "Export the configured Postman workspace to the Markdown output directory. Optionally restrict to collections by uid or name glob.",
		Annotations: exportAnnotations(),
	}, handleExport(svc))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "sync",
		Description: "Reconcile the diff of a commit in the output repository against GitLab issues. Defaults to the latest commit; dry_run reports actions without writing.",
		Annotations: syncAnnotations(),
	}, handleSync(svc))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "lookup",
		Description: "Find the GitLab issue tracking a document path (e.g. API/Ping.md).",
		Annotations: readOnlyAnnotations(),
	}, handleLookup(svc))
}
