package render

import (
	"fmt"
	"os"
	"strings"

	"github.com/gorewood/pmdocs/internal/collection"
	"github.com/gorewood/pmdocs/internal/output"
)

// Document is one Markdown file to be written.
type Document struct {
	Path  string
	Title string
	Body  string
}

// Content returns the file content: a level one heading with the title, a
// blank line, then the body. Without a title the content is the body alone.
func (d Document) Content() string {
	if d.Title == "" {
		return d.Body
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "# %s\n\n", d.Title)
	builder.WriteString(d.Body)
	return builder.String()
}

// Write writes the document to its path, replacing any existing file.
func (d Document) Write() error {
	if err := os.WriteFile(d.Path, []byte(d.Content()), 0o644); err != nil { //nolint:gosec // docs are meant to be readable
		return output.NewSystemErrorWithCause("failed to write "+d.Path, err)
	}
	return nil
}

// RequestBody formats the body of a request document: the method and URL as
// a level three heading, a blank line, then the unescaped description.
func RequestBody(req *collection.Request) string {
	var builder strings.Builder
	writeRequestLine(&builder, req)
	builder.WriteString(Unescape(req.Description))
	return builder.String()
}

// writeRequestLine writes "### `METHOD` URL" and the blank line after it.
func writeRequestLine(builder *strings.Builder, req *collection.Request) {
	fmt.Fprintf(builder, "### `%s` %s\n\n", req.Method, req.URL)
}
