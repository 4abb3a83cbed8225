package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/pmdocs/internal/export"
	"github.com/gorewood/pmdocs/internal/reconcile"
)

// --- Export tool ---

// ExportInput is the input for the export tool.
type ExportInput struct {
	Collections []string `json:"collections,omitempty" jsonschema:"collection uids or name globs; empty uses the configured filters"`
}

// ExportOutput is the output for the export tool.
type ExportOutput struct {
	Dir         string                    `json:"dir"               jsonschema:"output directory"`
	Files       int                       `json:"files"             jsonschema:"number of documents written"`
	Collections []export.CollectionResult `json:"collections"       jsonschema:"exported collections"`
	Skipped     []string                  `json:"skipped,omitempty" jsonschema:"collections filtered out"`
}

func handleExport(svc Service) mcp.ToolHandlerFor[ExportInput, ExportOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ExportInput) (*mcp.CallToolResult, ExportOutput, error) {
		result, err := svc.Export(ctx, input.Collections)
		if err != nil {
			return nil, ExportOutput{}, fmt.Errorf("exporting: %w", err)
		}
		return nil, ExportOutput{
			Dir:         result.Dir,
			Files:       result.Files,
			Collections: result.Collections,
			Skipped:     result.Skipped,
		}, nil
	}
}

// --- Sync tool ---

// SyncInput is the input for the sync tool.
type SyncInput struct {
	Commit string `json:"commit,omitempty"  jsonschema:"commit SHA to reconcile (default: latest commit of the output repo)"`
	DryRun bool   `json:"dry_run,omitempty" jsonschema:"search only; report mutations without sending them"`
}

// SyncOutput is the output for the sync tool.
type SyncOutput struct {
	Commit    string               `json:"commit"            jsonschema:"reconciled commit SHA"`
	DryRun    bool                 `json:"dry_run"           jsonschema:"whether mutations were skipped"`
	Pages     int                  `json:"pages"             jsonschema:"diff pages read"`
	Entries   int                  `json:"entries"           jsonschema:"diff entries processed"`
	Mutations int                  `json:"mutations"         jsonschema:"tracker writes issued (or recorded in dry run)"`
	Actions   []reconcile.Action   `json:"actions"           jsonschema:"per-document actions in diff order"`
	Planned   []reconcile.Mutation `json:"planned,omitempty" jsonschema:"writes a dry run would have sent"`
}

func handleSync(svc Service) mcp.ToolHandlerFor[SyncInput, SyncOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SyncInput) (*mcp.CallToolResult, SyncOutput, error) {
		summary, err := svc.Sync(ctx, input.Commit, input.DryRun)
		if err != nil {
			return nil, SyncOutput{}, fmt.Errorf("syncing: %w", err)
		}
		return nil, SyncOutput{
			Commit:    summary.Commit,
			DryRun:    input.DryRun,
			Pages:     summary.Pages,
			Entries:   summary.Entries,
			Mutations: summary.Mutations,
			Actions:   summary.Actions,
			Planned:   summary.Planned,
		}, nil
	}
}

// --- Lookup tool ---

// LookupInput is the input for the lookup tool.
type LookupInput struct {
	Path string `json:"path" jsonschema:"document path relative to the output directory"`
}

// LookupOutput is the output for the lookup tool.
type LookupOutput struct {
	Found    bool     `json:"found"               jsonschema:"whether an issue tracks the path"`
	IID      int      `json:"iid,omitempty"       jsonschema:"project-scoped issue number"`
	Title    string   `json:"title,omitempty"     jsonschema:"issue title (the tracked path)"`
	State    string   `json:"state,omitempty"     jsonschema:"opened or closed"`
	Labels   []string `json:"labels,omitempty"    jsonschema:"issue labels"`
	URL      string   `json:"url,omitempty"       jsonschema:"issue web URL"`
	ClosedAt string   `json:"closed_at,omitempty" jsonschema:"close timestamp"`
}

func handleLookup(svc Service) mcp.ToolHandlerFor[LookupInput, LookupOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input LookupInput) (*mcp.CallToolResult, LookupOutput, error) {
		if input.Path == "" {
			return nil, LookupOutput{}, errors.New("path is required")
		}

		issue, err := svc.Lookup(ctx, input.Path)
		if err != nil {
			return nil, LookupOutput{}, fmt.Errorf("looking up %s: %w", input.Path, err)
		}
		if issue == nil {
			return nil, LookupOutput{Found: false}, nil
		}

		out := LookupOutput{
			Found:  true,
			IID:    issue.IID,
			Title:  issue.Title,
			State:  issue.State,
			Labels: issue.Labels,
			URL:    issue.WebURL,
		}
		if issue.ClosedAt != nil {
			out.ClosedAt = issue.ClosedAt.Format(time.RFC3339)
		}
		return nil, out, nil
	}
}
