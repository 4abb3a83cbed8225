package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/gorewood/pmdocs/internal/output"
)

// writeRaw saves an API response as indented JSON.
func writeRaw(path string, data []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return output.NewSystemError(fmt.Sprintf("failed to format %s: %v", path, err))
	}
	buf.WriteByte('\n')

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil { //nolint:gosec // snapshots live in the docs tree
		return output.NewSystemError(fmt.Sprintf("failed to write file %s: %v", path, err))
	}
	return nil
}
