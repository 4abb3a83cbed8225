package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gorewood/pmdocs/internal/logging"
	"github.com/gorewood/pmdocs/internal/output"
	"github.com/gorewood/pmdocs/internal/tracker"
)

// Issue labels.
const (
	LabelCreate           = "create"
	LabelDelete           = "delete"
	LabelCollectionPrefix = "collection:"
)

// Tracker is the issue tracker the reconciler drives.
type Tracker interface {
	Searcher
	CreateIssue(ctx context.Context, opts tracker.CreateIssueOptions) (*tracker.Issue, error)
	AddNote(ctx context.Context, iid int, body string) (*tracker.Note, error)
	UpdateIssue(ctx context.Context, iid int, opts tracker.UpdateIssueOptions) (*tracker.Issue, error)
}

// Outcome is what the reconciler did for one entry.
type Outcome string

// Outcomes.
const (
	OutcomeCreated        Outcome = "created"
	OutcomeCommented      Outcome = "commented"
	OutcomeLabeledDelete  Outcome = "labeled-delete"
	OutcomeDeleteRepeated Outcome = "delete-repeated"
	OutcomeSkipped        Outcome = "skipped"
	OutcomeUnsupported    Outcome = "unsupported"
)

// Action reports one applied transition.
type Action struct {
	Path     string     `json:"path"`
	Kind     ChangeKind `json:"kind"`
	Outcome  Outcome    `json:"outcome"`
	IssueURL string     `json:"issue_url,omitempty"`
	Calls    int        `json:"calls"` // tracker mutations issued
}

// Reconciler applies the issue transition for each diff entry.
type Reconciler struct {
	tracker Tracker
	index   *Index
	log     *slog.Logger
	runID   string
}

// NewReconciler creates a Reconciler. runID is stamped into every note so
// a run's comments can be found later. A nil logger discards output.
func NewReconciler(t Tracker, log *slog.Logger, runID string) *Reconciler {
	if log == nil {
		log = logging.Nop()
	}
	return &Reconciler{
		tracker: t,
		index:   NewIndex(t),
		log:     log,
		runID:   runID,
	}
}

// Apply reconciles one diff entry of commit. Any tracker failure, the search
// included, is returned as a tracker mutation error naming path and commit.
func (r *Reconciler) Apply(ctx context.Context, commit string, entry tracker.DiffEntry) (Action, error) {
	kind := Classify(entry)
	path := entryPath(entry)
	action := Action{Path: path, Kind: kind}

	if kind == Renamed {
		r.log.Warn("renamed document left untracked",
			"path", path, "old_path", entry.OldPath, "commit", commit,
			"error", output.ErrUnclassifiedDiff)
		action.Outcome = OutcomeUnsupported
		return action, nil
	}

	issue, err := r.index.FindByPath(ctx, path)
	if err != nil {
		return action, output.NewTrackerMutationError(path, commit, err)
	}

	if kind == Deleted {
		err = r.applyDelete(ctx, commit, issue, &action)
	} else {
		err = r.applyChange(ctx, commit, entry, issue, &action)
	}
	if err != nil {
		return action, output.NewTrackerMutationError(path, commit, err)
	}
	return action, nil
}

// applyChange handles added and modified documents, which behave the same
// once the issue lookup is done.
func (r *Reconciler) applyChange(ctx context.Context, commit string, entry tracker.DiffEntry, issue *tracker.Issue, action *Action) error {
	note := r.diffNote(commit, action.Kind, action.Path, entry.Diff)

	if issue == nil {
		created, err := r.tracker.CreateIssue(ctx, tracker.CreateIssueOptions{
			Title:       action.Path,
			Description: note,
			Labels:      Labels(action.Path),
		})
		action.Calls++ // counted even when rejected
		if err != nil {
			return err
		}
		action.Outcome = OutcomeCreated
		action.IssueURL = created.WebURL
		r.log.Info("created issue", "path", action.Path, "url", created.WebURL)
		return nil
	}

	action.IssueURL = issue.WebURL
	action.Calls++
	if _, err := r.tracker.AddNote(ctx, issue.IID, note); err != nil {
		return err
	}
	action.Outcome = OutcomeCommented

	var update tracker.UpdateIssueOptions
	if issue.Closed() {
		update.StateEvent = tracker.StateEventReopen
	}
	if issue.HasLabel(LabelDelete) {
		update.RemoveLabels = []string{LabelDelete}
	}
	if !update.IsZero() {
		action.Calls++
		if _, err := r.tracker.UpdateIssue(ctx, issue.IID, update); err != nil {
			return err
		}
	}

	r.log.Info("commented on issue", "path", action.Path, "url", issue.WebURL,
		"reopened", update.StateEvent != "", "undeleted", len(update.RemoveLabels) > 0)
	return nil
}

func (r *Reconciler) applyDelete(ctx context.Context, commit string, issue *tracker.Issue, action *Action) error {
	if issue == nil {
		action.Outcome = OutcomeSkipped
		r.log.Debug("deleted document has no issue", "path", action.Path)
		return nil
	}
	action.IssueURL = issue.WebURL

	if issue.HasLabel(LabelDelete) {
		action.Calls++
		if _, err := r.tracker.AddNote(ctx, issue.IID, r.deleteNote(commit, action.Path)); err != nil {
			return err
		}
		action.Outcome = OutcomeDeleteRepeated
		r.log.Info("noted repeated delete", "path", action.Path, "url", issue.WebURL)
		return nil
	}

	update := tracker.UpdateIssueOptions{AddLabels: []string{LabelDelete}}
	if issue.Closed() {
		update.StateEvent = tracker.StateEventReopen
	}
	action.Calls++
	if _, err := r.tracker.UpdateIssue(ctx, issue.IID, update); err != nil {
		return err
	}
	action.Outcome = OutcomeLabeledDelete
	r.log.Info("labeled issue for deletion", "path", action.Path, "url", issue.WebURL,
		"reopened", update.StateEvent != "")
	return nil
}

// Labels returns the labels of a new issue for path: create plus
// collection:<first path segment>.
func Labels(path string) []string {
	segment, _, _ := strings.Cut(path, "/")
	return []string{LabelCreate, LabelCollectionPrefix + segment}
}

// diffNote formats the issue body or comment for a changed document.
func (r *Reconciler) diffNote(commit string, kind ChangeKind, path, diff string) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "Commit `%s`: %s `%s`\n\n", commit, kind, path)
	builder.WriteString("<details><summary>diff</summary>\n\n")
	builder.WriteString("```diff\n")
	builder.WriteString(strings.TrimRight(diff, "\n"))
	builder.WriteString("\n```\n\n</details>\n")
	r.writeSignature(&builder)
	return builder.String()
}

func (r *Reconciler) deleteNote(commit, path string) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "Commit `%s`: deleted `%s` again.\n", commit, path)
	r.writeSignature(&builder)
	return builder.String()
}

// writeSignature appends the run marker as an HTML comment.
func (r *Reconciler) writeSignature(builder *strings.Builder) {
	if r.runID == "" {
		return
	}
	fmt.Fprintf(builder, "\n<!-- pmdocs:%s -->\n", r.runID)
}
