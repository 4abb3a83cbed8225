package tracker

import (
	"slices"
	"time"
)

// Issue states as reported by GitLab.
const (
	StateOpened = "opened"
	StateClosed = "closed"
)

// StateEventReopen is the UpdateIssue state event that reopens an issue.
const StateEventReopen = "reopen"

// Issue is a tracked issue. Its title is the document path it tracks.
type Issue struct {
	ID       int        `json:"id"`
	IID      int        `json:"iid"`
	Title    string     `json:"title"`
	State    string     `json:"state"`
	ClosedAt *time.Time `json:"closed_at"`
	Labels   []string   `json:"labels"`
	WebURL   string     `json:"web_url"`
}

// Path returns the document path the issue tracks.
func (i *Issue) Path() string { return i.Title }

// Closed reports whether the issue is closed.
func (i *Issue) Closed() bool { return i.State == StateClosed || i.ClosedAt != nil }

// HasLabel reports whether the issue carries label.
func (i *Issue) HasLabel(label string) bool { return slices.Contains(i.Labels, label) }

// DiffEntry is one file of a commit diff.
type DiffEntry struct {
	OldPath     string `json:"old_path"`
	NewPath     string `json:"new_path"`
	Diff        string `json:"diff"`
	NewFile     bool   `json:"new_file"`
	RenamedFile bool   `json:"renamed_file"`
	DeletedFile bool   `json:"deleted_file"`
}

// Note is a comment on an issue.
type Note struct {
	ID   int    `json:"id"`
	Body string `json:"body"`
}

// CreateIssueOptions holds the fields of a new issue.
type CreateIssueOptions struct {
	Title       string
	Description string
	Labels      []string
}

// UpdateIssueOptions holds an issue update. Empty fields are left out of
// the request.
type UpdateIssueOptions struct {
	StateEvent   string
	AddLabels    []string
	RemoveLabels []string
}

// IsZero reports whether the update would change nothing.
func (o UpdateIssueOptions) IsZero() bool {
	return o.StateEvent == "" && len(o.AddLabels) == 0 && len(o.RemoveLabels) == 0
}
