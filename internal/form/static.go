package form

import (
	"slices"

	"github.com/dukaforge/formload/pkg/types"
)

// Matcher resolves a candidate key or value to the data items it carries.
// A false return means no-match; matching never mutates the candidate.
type Matcher interface {
	Match(candidate string) ([]types.DataItem, bool)
}

// Static matches exactly one key and optionally carries pre-extracted items
// that attach to every entry produced beneath it.
type Static struct {
	Name  string
	items []types.DataItem
}

// NewStatic builds an exact-match node for name.
func NewStatic(name string, items ...types.DataItem) *Static {
	return &Static{Name: name, items: items}
}

// Match accepts only the exact name and yields the carried items.
func (s *Static) Match(candidate string) ([]types.DataItem, bool) {
	if candidate != s.Name {
		return nil, false
	}
	return slices.Clone(s.items), true
}

// Items returns the carried items.
func (s *Static) Items() []types.DataItem {
	return slices.Clone(s.items)
}

func (s *Static) String() string { return s.Name }
