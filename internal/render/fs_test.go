package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gorewood/pmdocs/internal/output"
)

func TestEnsureDir(t *testing.T) {
	root := t.TempDir()

	t.Run("creates nested directories", func(t *testing.T) {
		dir := filepath.Join(root, "a", "b", "c")
		require.NoError(t, EnsureDir(dir))
		assert.DirExists(t, dir)
	})

	t.Run("existing directory is a no-op", func(t *testing.T) {
		assert.NoError(t, EnsureDir(root))
	})

	t.Run("file is a path conflict", func(t *testing.T) {
		file := filepath.Join(root, "file")
		require.NoError(t, os.WriteFile(file, nil, 0o644))

		err := EnsureDir(file)
		require.ErrorIs(t, err, output.ErrPathConflict)
		assert.Equal(t, output.ExitConflict, output.GetExitCode(err))
	})
}

func TestClean(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{".git/HEAD", ".gitignore", "API/Ping.md", "README.md"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	}

	require.NoError(t, Clean(dir))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{".git", ".gitignore"}, names)
}

func TestClean_MissingAndFile(t *testing.T) {
	root := t.TempDir()
	assert.NoError(t, Clean(filepath.Join(root, "missing")))

	file := filepath.Join(root, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	assert.ErrorIs(t, Clean(file), output.ErrPathConflict)
}
