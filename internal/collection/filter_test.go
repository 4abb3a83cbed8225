package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	ref := Ref{ID: "abc", UID: "12-abc", Name: "Billing API"}

	tests := []struct {
		name    string
		filters []string
		want    bool
	}{
		{"no filters", nil, true},
		{"uid", []string{"12-abc"}, true},
		{"id", []string{"abc"}, true},
		{"exact name", []string{"Billing API"}, true},
		{"glob", []string{"Billing*"}, true},
		{"any of several", []string{"Orders", "*API"}, true},
		{"no match", []string{"Orders"}, false},
		{"bad pattern", []string{"[Billing"}, false},
		{"blank filter ignored", []string{""}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.filters, ref), "Match(%q)", tt.filters)
		})
	}
}
