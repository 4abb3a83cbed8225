package reconcile

import (
	"context"

	"github.com/gorewood/pmdocs/internal/tracker"
)

// Searcher finds issues by a free-text query.
type Searcher interface {
	SearchIssues(ctx context.Context, query string) ([]tracker.Issue, error)
}

// Index finds the issue tracking a document path.
type Index struct {
	searcher Searcher
}

// NewIndex creates an Index over searcher.
func NewIndex(searcher Searcher) *Index {
	return &Index{searcher: searcher}
}

// FindByPath searches issue titles for path and returns the first result, or
// nil when there is none. The tracker's search decides what matches; several
// hits resolve to the first.
func (x *Index) FindByPath(ctx context.Context, path string) (*tracker.Issue, error) {
	issues, err := x.searcher.SearchIssues(ctx, path)
	if err != nil {
		return nil, err
	}
	if len(issues) == 0 {
		return nil, nil
	}
	return &issues[0], nil
}
