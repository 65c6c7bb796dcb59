package engine

import (
	"slices"

	"github.com/dukaforge/formload/pkg/types"
)

// Branch is the expansion result under one resolved data key.
type Branch struct {
	Key     string
	Items   []types.DataItem   // items extracted from the key itself
	Entries []*types.DataEntry // entries produced by the subtree under the key
}

// Expansion maps each resolved data key to its branch, remembering the
// order keys were resolved in so consolidation is deterministic.
type Expansion struct {
	order    []string
	branches map[string]*Branch
}

func newExpansion() *Expansion {
	return &Expansion{branches: make(map[string]*Branch)}
}

// add appends items and entries to the branch for key, creating it on first
// use. Two rules matching the same key contribute to one branch.
func (x *Expansion) add(key string, items []types.DataItem, entries []*types.DataEntry) {
	br, ok := x.branches[key]
	if !ok {
		br = &Branch{Key: key}
		x.branches[key] = br
		x.order = append(x.order, key)
	}
	br.Items = append(br.Items, items...)
	br.Entries = append(br.Entries, entries...)
}

// Keys returns the resolved keys in resolution order.
func (x *Expansion) Keys() []string {
	return slices.Clone(x.order)
}

// Branch returns the branch resolved for key.
func (x *Expansion) Branch(key string) (*Branch, bool) {
	br, ok := x.branches[key]
	return br, ok
}

// Branches returns all branches in resolution order.
func (x *Expansion) Branches() []*Branch {
	out := make([]*Branch, 0, len(x.order))
	for _, key := range x.order {
		out = append(out, x.branches[key])
	}
	return out
}

// Len returns the number of resolved branches.
func (x *Expansion) Len() int { return len(x.order) }

// Consolidate folds every branch's entry collection into one via the list
// merge, in resolution order, associating sibling entries that share an
// identity value.
func (x *Expansion) Consolidate(reg *types.Registry) ([]*types.DataEntry, error) {
	var result []*types.DataEntry
	for _, key := range x.order {
		merged, err := types.MergeEntryLists(reg, result, x.branches[key].Entries)
		if err != nil {
			return nil, err
		}
		result = merged
	}
	return result, nil
}

// foldDuplicates merges entries sharing a unique value into one entry. A
// subtree legitimately produces several partial records for the same object
// (one per annotation row); they accumulate here so the duplicate-identity
// check in MergeEntryLists only ever sees distinct identities. Matching
// scans unique types in registry declaration order, first hit wins.
func foldDuplicates(reg *types.Registry, entries []*types.DataEntry) ([]*types.DataEntry, error) {
	uniqueTypes := reg.UniqueTypes()
	index := make(map[string]map[string]*types.DataEntry, len(uniqueTypes))
	for _, ut := range uniqueTypes {
		index[ut.Label()] = make(map[string]*types.DataEntry)
	}

	var out []*types.DataEntry
	for _, e := range entries {
		var target *types.DataEntry
		for _, ut := range uniqueTypes {
			v, ok := e.Value(ut.Label())
			if !ok {
				continue
			}
			if hit, found := index[ut.Label()][v]; found {
				target = hit
				break
			}
		}
		if target != nil {
			if err := target.Merge(e); err != nil {
				return nil, err
			}
			continue
		}
		kept := e.Clone()
		out = append(out, kept)
		for _, ut := range uniqueTypes {
			if v, ok := kept.Value(ut.Label()); ok {
				index[ut.Label()][v] = kept
			}
		}
	}
	return out, nil
}

// ApplyPairings partitions entries into records (entries carrying identity
// keys) and context (entries without), broadcasts each context entry onto
// the records sharing one of its items, and returns the records. When no
// entry carries identity keys the input is returned unchanged: the dataset
// is pure context, such as a bare class list.
func ApplyPairings(entries []*types.DataEntry) ([]*types.DataEntry, error) {
	var records, context []*types.DataEntry
	for _, e := range entries {
		if e.IsUnique() {
			records = append(records, e)
		} else {
			context = append(context, e)
		}
	}
	if len(records) == 0 {
		return entries, nil
	}
	for _, c := range context {
		if err := c.ApplyPairing(records...); err != nil {
			return nil, err
		}
	}
	return records, nil
}
