package render

import (
	"fmt"
	"path/filepath"

	"github.com/gorewood/pmdocs/internal/collection"
)

// Renderer writes a collection tree to disk.
type Renderer struct {
	onWrite func(path string)
}

// NewRenderer creates a renderer. onWrite, if not nil, is called with the
// path of every document written.
func NewRenderer(onWrite func(path string)) *Renderer {
	return &Renderer{onWrite: onWrite}
}

// Render writes node into dir. A folder ensures dir exists, writes its own
// document when it has a description, then renders each child: subfolders
// into dir/<name>, requests as dir/<name>.md. A request is written as
// dir/<name>.md.
func (r *Renderer) Render(node collection.Node, dir string) error {
	switch n := node.(type) {
	case *collection.Folder:
		return r.renderFolder(n, dir)
	case *collection.Request:
		return r.renderRequest(n, dir)
	default:
		return fmt.Errorf("unknown node type %T", node)
	}
}

func (r *Renderer) renderFolder(folder *collection.Folder, dir string) error {
	if err := EnsureDir(dir); err != nil {
		return err
	}

	if folder.Description != "" {
		doc := Document{
			Path:  filepath.Join(dir, Sanitize(folder.Name)+".md"),
			Title: folder.Name,
			Body:  Unescape(folder.Description),
		}
		if err := r.write(doc); err != nil {
			return err
		}
	}

	for _, child := range folder.Children {
		var err error
		switch c := child.(type) {
		case *collection.Folder:
			err = r.renderFolder(c, filepath.Join(dir, Sanitize(c.Name)))
		case *collection.Request:
			err = r.renderRequest(c, dir)
		default:
			err = fmt.Errorf("unknown node type %T", child)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderRequest(req *collection.Request, dir string) error {
	return r.write(Document{
		Path:  filepath.Join(dir, Sanitize(req.Name)+".md"),
		Title: req.Name,
		Body:  RequestBody(req),
	})
}

func (r *Renderer) write(doc Document) error {
	if err := doc.Write(); err != nil {
		return err
	}
	if r.onWrite != nil {
		r.onWrite(doc.Path)
	}
	return nil
}
