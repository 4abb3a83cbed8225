package render

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorewood/pmdocs/internal/collection"
	"github.com/gorewood/pmdocs/internal/output"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRender_PingScenario(t *testing.T) {
	out := t.TempDir()
	root := &collection.Folder{
		Name: "API",
		Children: []collection.Node{
			&collection.Request{Name: "Ping", Method: "GET", URL: "https://x/ping", Description: "health check"},
		},
	}

	dir := filepath.Join(out, Sanitize(root.Name))
	require.NoError(t, NewRenderer(nil).Render(root, dir))

	got := readFile(t, filepath.Join(out, "API", "Ping.md"))
	assert.Equal(t, "# Ping\n\n### `GET` https://x/ping\n\nhealth check", got)
	assert.NoFileExists(t, filepath.Join(out, "API", "API.md"), "root without description should not produce API.md")
}

func TestRender_Tree(t *testing.T) {
	out := t.TempDir()
	root := &collection.Folder{
		Name:        "Shop/API",
		Description: `root \"docs\"`,
		Children: []collection.Node{
			&collection.Folder{
				Name:        "Orders",
				Description: "order endpoints",
				Children: []collection.Node{
					&collection.Request{Name: "List", Method: "GET", URL: "https://shop/orders"},
					&collection.Request{Name: "Create / Update", Method: "POST", URL: "https://shop/orders"},
				},
			},
			&collection.Folder{
				Name: "Users",
				Children: []collection.Node{
					&collection.Folder{Name: "Empty"},
					&collection.Request{Name: "Me", Method: "GET", URL: "https://shop/me"},
				},
			},
		},
	}

	var written []string
	r := NewRenderer(func(path string) { written = append(written, path) })
	dir := filepath.Join(out, Sanitize(root.Name))
	require.NoError(t, r.Render(root, dir))

	rel := make([]string, 0, len(written))
	for _, p := range written {
		relPath, err := filepath.Rel(out, p)
		require.NoError(t, err)
		rel = append(rel, filepath.ToSlash(relPath))
	}
	sort.Strings(rel)

	// Folder descriptions are documents too: Orders.md and ShopAPI.md.
	assert.Equal(t, []string{
		"ShopAPI/Orders/Create  Update.md",
		"ShopAPI/Orders/List.md",
		"ShopAPI/Orders/Orders.md",
		"ShopAPI/ShopAPI.md",
		"ShopAPI/Users/Me.md",
	}, rel)
	assert.Equal(t, collection.Count(root), len(written))

	assert.Equal(t, "# Shop/API\n\nroot \"docs\"", readFile(t, filepath.Join(dir, "ShopAPI.md")))
	assert.DirExists(t, filepath.Join(dir, "Users", "Empty"), "empty folder should still produce a directory")
}

func TestRender_DotFolderNames(t *testing.T) {
	out := t.TempDir()
	dir := filepath.Join(out, "API")
	root := &collection.Folder{
		Name: "API",
		Children: []collection.Node{
			&collection.Folder{Name: "..", Children: []collection.Node{
				&collection.Request{Name: "Up", Method: "GET", URL: "https://x/up"},
			}},
			&collection.Folder{Name: ".", Children: []collection.Node{
				&collection.Request{Name: "Here", Method: "GET", URL: "https://x/here"},
			}},
		},
	}

	var written []string
	require.NoError(t, NewRenderer(func(path string) { written = append(written, path) }).Render(root, dir))

	assert.Equal(t, []string{filepath.Join(out, "Up.md"), filepath.Join(dir, "Here.md")}, written)
	assert.FileExists(t, filepath.Join(out, "Up.md"), `".." resolves to the parent directory`)
	assert.FileExists(t, filepath.Join(dir, "Here.md"))
}

func TestRender_SiblingCollisionOverwrites(t *testing.T) {
	dir := t.TempDir()
	root := &collection.Folder{
		Name: "API",
		Children: []collection.Node{
			&collection.Request{Name: "Ping", Method: "GET", URL: "https://x/one"},
			&collection.Request{Name: "Ping", Method: "GET", URL: "https://x/two"},
		},
	}

	require.NoError(t, NewRenderer(nil).Render(root, dir))
	assert.Equal(t, "# Ping\n\n### `GET` https://x/two\n\n", readFile(t, filepath.Join(dir, "Ping.md")), "want the last sibling")
}

func TestRender_PathConflict(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Orders"), []byte("file"), 0o644))
	root := &collection.Folder{
		Name:     "API",
		Children: []collection.Node{&collection.Folder{Name: "Orders"}},
	}

	err := NewRenderer(nil).Render(root, dir)
	assert.ErrorIs(t, err, output.ErrPathConflict)
}
