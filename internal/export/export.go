package export

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/gorewood/pmdocs/internal/collection"
	"github.com/gorewood/pmdocs/internal/logging"
	"github.com/gorewood/pmdocs/internal/render"
)

// Source reads workspaces and collections. *collection.Client implements it.
type Source interface {
	Workspace(ctx context.Context, id string) (*collection.Workspace, []byte, error)
	Collection(ctx context.Context, uid string) (*collection.Collection, []byte, error)
}

// Options selects what to export and where.
type Options struct {
	Dir       string
	Workspace string
	Filters   []string
	KeepRaw   bool
}

// CollectionResult reports one exported collection.
type CollectionResult struct {
	Name  string `json:"name"`
	UID   string `json:"uid"`
	Dir   string `json:"dir"`
	Files int    `json:"files"`
}

// Result reports an export run.
type Result struct {
	Dir         string             `json:"dir"`
	Collections []CollectionResult `json:"collections"`
	Skipped     []string           `json:"skipped"`
	Files       int                `json:"files"`
}

// Exporter renders workspace collections to disk.
type Exporter struct {
	source Source
	log    *slog.Logger
}

// New creates an Exporter. A nil logger discards output.
func New(source Source, log *slog.Logger) *Exporter {
	if log == nil {
		log = logging.Nop()
	}
	return &Exporter{source: source, log: log}
}

type fetched struct {
	ref  collection.Ref
	coll *collection.Collection
	raw  []byte
}

// Export fetches the selected collections, cleans opts.Dir and renders them.
func (e *Exporter) Export(ctx context.Context, opts Options) (*Result, error) {
	ws, wsRaw, err := e.source.Workspace(ctx, opts.Workspace)
	if err != nil {
		return nil, err
	}

	result := &Result{Dir: opts.Dir, Collections: []CollectionResult{}, Skipped: []string{}}
	var selected []fetched
	for _, ref := range ws.Collections {
		if !collection.Match(opts.Filters, ref) {
			e.log.Debug("collection filtered out", "name", ref.Name, "uid", ref.UID)
			result.Skipped = append(result.Skipped, ref.Name)
			continue
		}
		coll, raw, err := e.source.Collection(ctx, ref.UID)
		if err != nil {
			return nil, err
		}
		selected = append(selected, fetched{ref: ref, coll: coll, raw: raw})
	}

	if err := render.EnsureDir(opts.Dir); err != nil {
		return nil, err
	}
	if err := render.Clean(opts.Dir); err != nil {
		return nil, err
	}
	if opts.KeepRaw {
		if err := writeRaw(filepath.Join(opts.Dir, "workspace.json"), wsRaw); err != nil {
			return nil, err
		}
	}

	for _, f := range selected {
		cr, err := e.renderCollection(f, opts)
		if err != nil {
			return nil, err
		}
		result.Collections = append(result.Collections, cr)
		result.Files += cr.Files
	}

	e.log.Info("export complete",
		"dir", opts.Dir, "collections", len(result.Collections),
		"skipped", len(result.Skipped), "files", result.Files)
	return result, nil
}

func (e *Exporter) renderCollection(f fetched, opts Options) (CollectionResult, error) {
	dir := filepath.Join(opts.Dir, render.Sanitize(f.coll.Name()))
	cr := CollectionResult{Name: f.coll.Name(), UID: f.ref.UID, Dir: dir}

	renderer := render.NewRenderer(func(path string) {
		cr.Files++
		e.log.Debug("wrote document", "path", path)
	})
	if err := renderer.Render(f.coll.Root, dir); err != nil {
		return cr, err
	}

	if opts.KeepRaw {
		if err := writeRaw(filepath.Join(dir, "collection.json"), f.raw); err != nil {
			return cr, err
		}
	}

	e.log.Info("exported collection", "name", cr.Name, "dir", dir, "files", cr.Files)
	return cr, nil
}
