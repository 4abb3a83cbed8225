package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got), "output is not JSON: %q", buf.String())
	return got
}

func TestPrinter_JSON_Success(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, true, false)

	require.NoError(t, printer.Success(map[string]any{"files": 3, "collection": "API"}))

	got := decode(t, &buf)
	assert.Equal(t, "API", got["collection"])
	assert.InDelta(t, 3, got["files"], 0)
}

func TestPrinter_JSON_Error(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, true, false).Error(NewPathConflictError("docs/API"))

	got := decode(t, &buf)
	assert.InDelta(t, ExitConflict, got["code"], 0)
	assert.Contains(t, got["error"], "docs/API")
}

func TestPrinter_Human_ErrorGoesToStderr(t *testing.T) {
	var stdout, stderr bytes.Buffer
	printer := NewPrinter(&stdout, false, false).WithStderr(&stderr)

	printer.Error(NewUserError("tracker.token is required"))

	assert.Empty(t, stdout.String())
	assert.Equal(t, "Error: tracker.token is required\n", stderr.String())
}

func TestPrinter_Action(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, false, false).Action("created", "API/Ping.md", "https://gitlab.example/issues/1")

	got := buf.String()
	for _, want := range []string{"created", "API/Ping.md", "https://gitlab.example/issues/1"} {
		assert.Contains(t, got, want)
	}

	buf.Reset()
	NewPrinter(&buf, true, false).Action("created", "API/Ping.md", "")
	assert.Zero(t, buf.Len(), "Action() in JSON mode should be silent")
}

func TestPrinter_Warn(t *testing.T) {
	var stdout, stderr bytes.Buffer
	NewPrinter(&stdout, false, false).WithStderr(&stderr).Warn("skipping %s", "renamed.md")
	assert.Empty(t, stdout.String())
	assert.Equal(t, "Warning: skipping renamed.md\n", stderr.String())

	var buf bytes.Buffer
	NewPrinter(&buf, true, false).Warn("skipping %s", "renamed.md")
	assert.Equal(t, "skipping renamed.md", decode(t, &buf)["warning"])
}

func TestPrinter_Table(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, false, false).Table([]string{"COLLECTION", "FILES"}, [][]string{
		{"API", "3"},
		{"Billing Service", "12"},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3, buf.String())
	assert.Equal(t, "API              3", lines[1])
}

func TestResolveColorMode(t *testing.T) {
	tests := []struct {
		mode  string
		isTTY bool
		want  bool
	}{
		{"never", true, false},
		{"always", false, true},
		{"auto", true, true},
		{"auto", false, false},
		{"", true, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolveColorMode(tt.mode, tt.isTTY), "ResolveColorMode(%q, %v)", tt.mode, tt.isTTY)
	}
}

func TestIsTTY_Buffer(t *testing.T) {
	assert.False(t, IsTTY(&bytes.Buffer{}))
}
