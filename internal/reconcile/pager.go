package reconcile

import (
	"context"

	"github.com/gorewood/pmdocs/internal/tracker"
)

// DiffSource returns one page (1-based) of a commit diff.
type DiffSource interface {
	CommitDiff(ctx context.Context, sha string, page int) ([]tracker.DiffEntry, error)
}

// Pager walks the pages of one commit diff. It is finite and not
// restartable: once a page comes back empty, Next keeps returning nil.
type Pager struct {
	source DiffSource
	commit string
	page   int
	done   bool
}

// NewPager creates a pager starting at page 1.
func NewPager(source DiffSource, commit string) *Pager {
	return &Pager{source: source, commit: commit}
}

// Next fetches the next page. It returns nil, nil when the diff is exhausted.
func (p *Pager) Next(ctx context.Context) ([]tracker.DiffEntry, error) {
	if p.done {
		return nil, nil
	}

	p.page++
	entries, err := p.source.CommitDiff(ctx, p.commit, p.page)
	if err != nil {
		p.done = true
		return nil, err
	}
	if len(entries) == 0 {
		p.done = true
		return nil, nil
	}
	return entries, nil
}

// Page returns the number of the last page requested.
func (p *Pager) Page() int { return p.page }
