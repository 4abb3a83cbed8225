package reconcile

import (
	"context"
	"fmt"

	"github.com/gorewood/pmdocs/internal/output"
)

// Summary reports a reconciliation run over one commit.
type Summary struct {
	Commit    string          `json:"commit"`
	Pages     int             `json:"pages"`
	Entries   int             `json:"entries"`
	Mutations int             `json:"mutations"`
	Outcomes  map[Outcome]int `json:"outcomes"`
	Actions   []Action        `json:"actions"`
	// Planned holds the writes a dry run recorded instead of sending.
	Planned []Mutation `json:"planned,omitempty"`
}

func (s *Summary) add(action Action) {
	s.Entries++
	s.Mutations += action.Calls
	if action.Outcome != "" {
		s.Outcomes[action.Outcome]++
	}
	s.Actions = append(s.Actions, action)
}

// Run reconciles every entry of the diff of commit, page by page and strictly
// in order. It stops at the first error; the summary then covers the entries
// applied before it.
func Run(ctx context.Context, source DiffSource, rec *Reconciler, commit string) (*Summary, error) {
	summary := &Summary{
		Commit:   commit,
		Outcomes: map[Outcome]int{},
		Actions:  []Action{},
	}

	pager := NewPager(source, commit)
	for {
		entries, err := pager.Next(ctx)
		if err != nil {
			return summary, output.NewSystemErrorWithCause(
				fmt.Sprintf("failed to fetch diff page %d of commit %s", pager.Page(), commit), err)
		}
		if entries == nil {
			return summary, nil
		}
		summary.Pages++

		for _, entry := range entries {
			action, err := rec.Apply(ctx, commit, entry)
			if err != nil {
				return summary, err
			}
			summary.add(action)
		}
	}
}
