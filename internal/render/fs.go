package render

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorewood/pmdocs/internal/output"
)

// EnsureDir makes sure path is a directory. An existing directory is left as
// is; an existing file is a path conflict.
func EnsureDir(path string) error {
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return nil
	case err == nil:
		return output.NewPathConflictError(path)
	case !errors.Is(err, fs.ErrNotExist):
		return output.NewSystemErrorWithCause("failed to stat "+path, err)
	}

	if err := os.MkdirAll(path, 0o755); err != nil { //nolint:gosec // output tree is a normal working tree
		return output.NewSystemErrorWithCause("failed to create "+path, err)
	}
	return nil
}

// Clean empties dir, keeping entries whose name starts with a dot (".git",
// ".gitignore"). A missing dir is not an error.
func Clean(dir string) error {
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return output.NewSystemErrorWithCause("failed to stat "+dir, err)
	}
	if !info.IsDir() {
		return output.NewPathConflictError(dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return output.NewSystemErrorWithCause("failed to read "+dir, err)
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return output.NewSystemErrorWithCause("failed to remove "+entry.Name(), err)
		}
	}
	return nil
}
