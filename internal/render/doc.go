// Package render turns a collection tree into a directory tree of Markdown
// documents.
//
// Every folder becomes a directory and every request becomes a file named
// after it:
//
//	<dir>/<Folder>/<Subfolder>/<Request>.md
//
// A folder with a description also gets a document named after itself inside
// its own directory, so the collection root lands at <dir>/<Collection>.md.
//
// # Document Layout
//
// Request documents carry the method and URL under the title, followed by the
// description:
//
//	# Ping
//
//	### `GET` https://x/ping
//
//	health check
//
// Descriptions are unescaped (C-style backslash escapes) before writing.
// Names are sanitized by dropping forward and back slashes, nothing else.
package render
