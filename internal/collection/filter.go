package collection

import "github.com/bmatcuk/doublestar/v4"

// Match reports whether ref is selected by filters. An empty filter list
// selects everything. A filter selects a collection when it equals the uid or
// id exactly, or when it is a glob matching the name.
func Match(filters []string, ref Ref) bool {
	if len(filters) == 0 {
		return true
	}
	for _, f := range filters {
		if f == "" {
			continue
		}
		if f == ref.UID || f == ref.ID {
			return true
		}
		if ok, err := doublestar.Match(f, ref.Name); err == nil && ok {
			return true
		}
	}
	return false
}
