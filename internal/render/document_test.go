package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorewood/pmdocs/internal/collection"
)

func TestDocumentContent(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want string
	}{
		{"title and body", Document{Title: "Ping", Body: "body"}, "# Ping\n\nbody"},
		{"empty body", Document{Title: "Ping"}, "# Ping\n\n"},
		{"no title", Document{Body: "just body"}, "just body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.doc.Content())
		})
	}
}

func TestRequestBody(t *testing.T) {
	req := &collection.Request{Name: "Ping", Method: "GET", URL: "https://x/ping", Description: `health\ncheck`}
	assert.Equal(t, "### `GET` https://x/ping\n\nhealth\ncheck", RequestBody(req))

	req.Description = ""
	assert.Equal(t, "### `GET` https://x/ping\n\n", RequestBody(req), "without description")
}

func TestDocumentWrite_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Ping.md")
	require.NoError(t, os.WriteFile(path, []byte("old content that is longer"), 0o644))

	require.NoError(t, Document{Path: path, Title: "Ping", Body: "new"}.Write())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Ping\n\nnew", string(data))
}
