package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/gorewood/pmdocs/internal/collection"
	"github.com/gorewood/pmdocs/internal/config"
	"github.com/gorewood/pmdocs/internal/export"
	"github.com/gorewood/pmdocs/internal/git"
	"github.com/gorewood/pmdocs/internal/logging"
	"github.com/gorewood/pmdocs/internal/output"
	"github.com/gorewood/pmdocs/internal/reconcile"
	"github.com/gorewood/pmdocs/internal/tracker"
)

// app holds what one command invocation needs: resolved config, logger and
// printer. It also implements the MCP service.
type app struct {
	cfg     config.Config
	log     *slog.Logger
	printer *output.Printer
	runID   string
}

// newApp loads the configuration for cmd and builds the logger and printer.
// Errors are printed before they are returned.
func newApp(cmd *cobra.Command) (*app, error) {
	out := cmd.OutOrStdout()
	colorMode, _ := cmd.Flags().GetString("color")
	printer := output.NewPrinter(out, isJSONMode(cmd), output.ResolveColorMode(colorMode, output.IsTTY(out))).
		WithStderr(cmd.ErrOrStderr())

	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.Options{File: configFile, Flags: cmd.Flags()})
	if err != nil {
		printer.Error(err)
		return nil, err
	}

	runID := uuid.NewString()
	log := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.Log.Level),
		Format: logging.ParseFormat(cfg.Log.Format),
		Output: cmd.ErrOrStderr(),
	}).With("run_id", runID, "command", cmd.Name())

	return &app{cfg: cfg, log: log, printer: printer, runID: runID}, nil
}

// warn reports msg in the log and, in human mode, on stderr. JSON mode keeps
// stdout to a single document.
func (a *app) warn(msg string) {
	a.log.Warn(msg)
	if !a.printer.IsJSON() {
		a.printer.Warn("%s", msg)
	}
}

// fail prints err and returns it, for RunE one-liners.
func (a *app) fail(err error) error {
	a.printer.Error(err)
	return err
}

func (a *app) repo() *git.Repo {
	return git.NewRepo(a.cfg.Output, a.cfg.Git.Remote, a.cfg.Git.Branch)
}

func (a *app) trackerClient() (*tracker.Client, error) {
	client, err := tracker.NewClient(tracker.Options{
		BaseURL: a.cfg.Tracker.BaseURL,
		Token:   a.cfg.Tracker.Token,
		Project: a.cfg.Tracker.Project,
		Delay:   a.cfg.Tracker.Delay,
		PerPage: a.cfg.Tracker.PerPage,
	})
	if err != nil {
		return nil, output.NewUserError(fmt.Sprintf("invalid tracker configuration: %v", err))
	}
	return client, nil
}

// Export renders the configured workspace. Non-empty filters replace the
// configured collection filters.
func (a *app) Export(ctx context.Context, filters []string) (*export.Result, error) {
	if err := a.cfg.ValidateForExport(); err != nil {
		return nil, err
	}
	if len(filters) == 0 {
		filters = a.cfg.Postman.Collections
	}

	source := collection.NewClient(a.cfg.Postman.BaseURL, a.cfg.Postman.APIKey, nil)
	return export.New(source, a.log).Export(ctx, export.Options{
		Dir:       a.cfg.Output,
		Workspace: a.cfg.Postman.Workspace,
		Filters:   filters,
		KeepRaw:   a.cfg.Postman.KeepRaw,
	})
}

// Sync reconciles the diff of commit, or of the latest commit of the output
// repository when commit is empty.
func (a *app) Sync(ctx context.Context, commit string, dryRun bool) (*reconcile.Summary, error) {
	if err := a.cfg.ValidateForSync(); err != nil {
		return nil, err
	}
	if commit == "" {
		sha, err := a.repo().CurrentCommit(ctx)
		if err != nil {
			return nil, err
		}
		commit = sha
	}

	client, err := a.trackerClient()
	if err != nil {
		return nil, err
	}
	a.log.Info("reconciling commit", "commit", commit, "dry_run", dryRun)
	if !dryRun {
		return reconcile.Run(ctx, client, reconcile.NewReconciler(client, a.log, a.runID), commit)
	}

	dry := reconcile.NewDryRun(client)
	summary, err := reconcile.Run(ctx, client, reconcile.NewReconciler(dry, a.log, a.runID), commit)
	if summary != nil {
		summary.Planned = dry.Mutations()
	}
	return summary, err
}

// Lookup returns the issue tracking path, or nil.
func (a *app) Lookup(ctx context.Context, path string) (*tracker.Issue, error) {
	if err := a.cfg.ValidateForSync(); err != nil {
		return nil, err
	}
	client, err := a.trackerClient()
	if err != nil {
		return nil, err
	}
	return reconcile.NewIndex(client).FindByPath(ctx, path)
}
