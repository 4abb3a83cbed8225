package reconcile

import (
	"context"
	"sync"

	"github.com/gorewood/pmdocs/internal/tracker"
)

// Mutation is a tracker write recorded by DryRun.
type Mutation struct {
	Method string                      `json:"method"`
	IID    int                         `json:"iid,omitempty"`
	Create *tracker.CreateIssueOptions `json:"create,omitempty"`
	Update *tracker.UpdateIssueOptions `json:"update,omitempty"`
	Note   string                      `json:"note,omitempty"`
}

// DryRun is a Tracker that forwards searches and records every mutation
// instead of sending it.
type DryRun struct {
	searcher Searcher

	mu        sync.Mutex
	mutations []Mutation
}

// NewDryRun wraps searcher.
func NewDryRun(searcher Searcher) *DryRun {
	return &DryRun{searcher: searcher}
}

// SearchIssues forwards to the wrapped searcher.
func (d *DryRun) SearchIssues(ctx context.Context, query string) ([]tracker.Issue, error) {
	return d.searcher.SearchIssues(ctx, query)
}

// CreateIssue records the issue and returns it unsaved.
func (d *DryRun) CreateIssue(_ context.Context, opts tracker.CreateIssueOptions) (*tracker.Issue, error) {
	d.record(Mutation{Method: "create", Create: &opts})
	return &tracker.Issue{Title: opts.Title, State: tracker.StateOpened, Labels: opts.Labels}, nil
}

// AddNote records the note.
func (d *DryRun) AddNote(_ context.Context, iid int, body string) (*tracker.Note, error) {
	d.record(Mutation{Method: "note", IID: iid, Note: body})
	return &tracker.Note{Body: body}, nil
}

// UpdateIssue records the update.
func (d *DryRun) UpdateIssue(_ context.Context, iid int, opts tracker.UpdateIssueOptions) (*tracker.Issue, error) {
	d.record(Mutation{Method: "update", IID: iid, Update: &opts})
	return &tracker.Issue{IID: iid}, nil
}

// Mutations returns the recorded writes in order.
func (d *DryRun) Mutations() []Mutation {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Mutation(nil), d.mutations...)
}

func (d *DryRun) record(m Mutation) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.mutations = append(d.mutations, m)
}
