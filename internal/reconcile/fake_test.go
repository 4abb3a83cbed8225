package reconcile

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/gorewood/pmdocs/internal/tracker"
)

// call is one tracker request seen by fakeTracker.
type call struct {
	Method string
	IID    int
	Create tracker.CreateIssueOptions
	Update tracker.UpdateIssueOptions
	Note   string
}

// fakeTracker is an in-memory tracker with substring title search.
type fakeTracker struct {
	issues   []tracker.Issue
	calls    []call
	searches []string
	failOn   string // method name that returns an error
	nextIID  int
}

// withIssues stores deep copies so updates never reach the caller's fixtures.
func (f *fakeTracker) withIssues(issues ...tracker.Issue) *fakeTracker {
	for _, issue := range issues {
		issue.Labels = slices.Clone(issue.Labels)
		f.issues = append(f.issues, issue)
	}
	return f
}

func (f *fakeTracker) SearchIssues(_ context.Context, query string) ([]tracker.Issue, error) {
	f.searches = append(f.searches, query)
	if f.failOn == "search" {
		return nil, errors.New("search failed")
	}
	var hits []tracker.Issue
	for _, issue := range f.issues {
		if strings.Contains(issue.Title, query) {
			hits = append(hits, issue)
		}
	}
	return hits, nil
}

func (f *fakeTracker) CreateIssue(_ context.Context, opts tracker.CreateIssueOptions) (*tracker.Issue, error) {
	f.calls = append(f.calls, call{Method: "create", Create: opts})
	if f.failOn == "create" {
		return nil, &tracker.StatusError{Method: "POST", Path: "/issues", Status: 500}
	}
	f.nextIID++
	issue := tracker.Issue{
		IID:    f.nextIID,
		Title:  opts.Title,
		State:  tracker.StateOpened,
		Labels: slices.Clone(opts.Labels),
		WebURL: fmt.Sprintf("https://gitlab.example/issues/%d", f.nextIID),
	}
	f.issues = append(f.issues, issue)
	return &issue, nil
}

func (f *fakeTracker) AddNote(_ context.Context, iid int, body string) (*tracker.Note, error) {
	f.calls = append(f.calls, call{Method: "note", IID: iid, Note: body})
	if f.failOn == "note" {
		return nil, errors.New("note failed")
	}
	return &tracker.Note{Body: body}, nil
}

func (f *fakeTracker) UpdateIssue(_ context.Context, iid int, opts tracker.UpdateIssueOptions) (*tracker.Issue, error) {
	f.calls = append(f.calls, call{Method: "update", IID: iid, Update: opts})
	if f.failOn == "update" {
		return nil, errors.New("update failed")
	}
	for i := range f.issues {
		issue := &f.issues[i]
		if issue.IID != iid {
			continue
		}
		if opts.StateEvent == tracker.StateEventReopen {
			issue.State = tracker.StateOpened
			issue.ClosedAt = nil
		}
		labels := append(slices.Clone(issue.Labels), opts.AddLabels...)
		issue.Labels = slices.DeleteFunc(labels, func(l string) bool {
			return slices.Contains(opts.RemoveLabels, l)
		})
		updated := *issue
		updated.Labels = slices.Clone(issue.Labels)
		return &updated, nil
	}
	return nil, errors.New("no such issue")
}

func (f *fakeTracker) methods() []string {
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.Method)
	}
	return out
}

// fakeDiff serves fixed pages; pages beyond the list are empty.
type fakeDiff struct {
	pages     [][]tracker.DiffEntry
	requested []int
	err       error
}

func (f *fakeDiff) CommitDiff(_ context.Context, _ string, page int) ([]tracker.DiffEntry, error) {
	f.requested = append(f.requested, page)
	if f.err != nil {
		return nil, f.err
	}
	if page > len(f.pages) {
		return []tracker.DiffEntry{}, nil
	}
	return f.pages[page-1], nil
}
