package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorewood/pmdocs/internal/collection"
	"github.com/gorewood/pmdocs/internal/output"
)

type fakeSource struct {
	workspace   *collection.Workspace
	collections map[string]*collection.Collection
	fetched     []string
	err         error
}

func (f *fakeSource) Workspace(_ context.Context, id string) (*collection.Workspace, []byte, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.workspace, []byte(`{"workspace":{"id":"` + id + `"}}`), nil
}

func (f *fakeSource) Collection(_ context.Context, uid string) (*collection.Collection, []byte, error) {
	f.fetched = append(f.fetched, uid)
	coll, ok := f.collections[uid]
	if !ok {
		return nil, nil, output.NewFetchError("collection "+uid, errors.New("status 404"))
	}
	return coll, []byte(`{"collection":{"info":{"name":"` + coll.Name() + `"}}}`), nil
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		workspace: &collection.Workspace{ID: "ws", Collections: []collection.Ref{
			{UID: "1-api", Name: "API"},
			{UID: "1-admin", Name: "Admin/Internal"},
			{UID: "1-legacy", Name: "Legacy"},
		}},
		collections: map[string]*collection.Collection{
			"1-api": {Root: &collection.Folder{Name: "API", Children: []collection.Node{
				&collection.Request{Name: "Ping", Method: "GET", URL: "https://x/ping", Description: "health check"},
			}}},
			"1-admin": {Root: &collection.Folder{Name: "Admin/Internal", Description: "admin", Children: []collection.Node{
				&collection.Folder{Name: "Users", Children: []collection.Node{
					&collection.Request{Name: "List", Method: "GET", URL: "https://x/users"},
				}},
			}}},
			"1-legacy": {Root: &collection.Folder{Name: "Legacy"}},
		},
	}
}

func TestExport(t *testing.T) {
	out := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(out, ".git"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(out, "stale.md"), []byte("old"), 0o644))

	source := newFakeSource()
	result, err := New(source, nil).Export(context.Background(), Options{
		Dir:       out,
		Workspace: "ws",
		Filters:   []string{"1-api", "1-admin"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"1-api", "1-admin"}, source.fetched)
	assert.Equal(t, []string{"Legacy"}, result.Skipped)
	assert.Equal(t, 3, result.Files)
	require.Len(t, result.Collections, 2)
	assert.Equal(t, CollectionResult{Name: "API", UID: "1-api", Dir: filepath.Join(out, "API"), Files: 1}, result.Collections[0])
	assert.Equal(t, 2, result.Collections[1].Files)

	ping, err := os.ReadFile(filepath.Join(out, "API", "Ping.md"))
	require.NoError(t, err)
	assert.Equal(t, "# Ping\n\n### `GET` https://x/ping\n\nhealth check", string(ping))

	assert.FileExists(t, filepath.Join(out, "AdminInternal", "AdminInternal.md"))
	assert.FileExists(t, filepath.Join(out, "AdminInternal", "Users", "List.md"))
	assert.DirExists(t, filepath.Join(out, ".git"), "dot entries survive cleaning")
	assert.NoFileExists(t, filepath.Join(out, "stale.md"))
	assert.NoFileExists(t, filepath.Join(out, "workspace.json"))
}

func TestExport_KeepRaw(t *testing.T) {
	out := filepath.Join(t.TempDir(), "docs")
	source := newFakeSource()

	_, err := New(source, nil).Export(context.Background(), Options{
		Dir:       out,
		Workspace: "ws",
		Filters:   []string{"1-api"},
		KeepRaw:   true,
	})
	require.NoError(t, err)

	ws, err := os.ReadFile(filepath.Join(out, "workspace.json"))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"workspace\": {\n    \"id\": \"ws\"\n  }\n}\n", string(ws))
	assert.FileExists(t, filepath.Join(out, "API", "collection.json"))
}

func TestExport_FetchErrorLeavesOutput(t *testing.T) {
	out := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(out, "keep.md"), []byte("x"), 0o644))

	source := newFakeSource()
	source.workspace.Collections = append(source.workspace.Collections, collection.Ref{UID: "missing", Name: "Missing"})

	_, err := New(source, nil).Export(context.Background(), Options{Dir: out, Workspace: "ws"})
	require.Error(t, err)
	assert.ErrorIs(t, err, output.ErrFetch)
	assert.FileExists(t, filepath.Join(out, "keep.md"))
}

func TestExport_WorkspaceError(t *testing.T) {
	source := &fakeSource{err: output.NewFetchError("workspace ws", errors.New("status 401"))}
	_, err := New(source, nil).Export(context.Background(), Options{Dir: t.TempDir(), Workspace: "ws"})
	assert.ErrorIs(t, err, output.ErrFetch)
}

func TestExport_OutputIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "docs")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	_, err := New(newFakeSource(), nil).Export(context.Background(), Options{Dir: file, Workspace: "ws"})
	assert.ErrorIs(t, err, output.ErrPathConflict)
	assert.Equal(t, output.ExitConflict, output.GetExitCode(err))
}
