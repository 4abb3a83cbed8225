package reconcile

import "github.com/gorewood/pmdocs/internal/tracker"

// ChangeKind is what happened to a document in a commit.
type ChangeKind string

// Change kinds.
const (
	Added    ChangeKind = "added"
	Deleted  ChangeKind = "deleted"
	Renamed  ChangeKind = "renamed"
	Modified ChangeKind = "modified"
)

// Classify returns the change kind of a diff entry. When several flags are
// set, new file wins over deleted, and deleted over renamed.
func Classify(entry tracker.DiffEntry) ChangeKind {
	switch {
	case entry.NewFile:
		return Added
	case entry.DeletedFile:
		return Deleted
	case entry.RenamedFile:
		return Renamed
	default:
		return Modified
	}
}

// entryPath returns the document path an entry is about.
func entryPath(entry tracker.DiffEntry) string {
	if entry.NewPath != "" {
		return entry.NewPath
	}
	return entry.OldPath
}
