package types

// MergeEntryLists consolidates two entry collections into one, associating
// records that refer to the same real-world object.
//
// Base is indexed once per registered unique type (registry declaration
// order); each incoming entry is then matched against those lookups in the
// same order, merging into the first hit and appended unmatched otherwise.
// The first matching unique type claims an entry, so the declaration order
// is the deterministic tie-break among multiple identity fields.
//
// The result is built from clones: a conflict aborts the whole merge and
// leaves both inputs unchanged. Duplicate values for one unique type within
// base are rejected with a *ConflictError rather than silently letting the
// later entry claim the lookup slot.
func MergeEntryLists(reg *Registry, base, incoming []*DataEntry) ([]*DataEntry, error) {
	result := make([]*DataEntry, 0, len(base)+len(incoming))
	for _, e := range base {
		result = append(result, e.Clone())
	}

	uniqueTypes := reg.UniqueTypes()
	index := make(map[string]map[string]*DataEntry, len(uniqueTypes))
	for _, ut := range uniqueTypes {
		slot := make(map[string]*DataEntry)
		for _, e := range result {
			v, ok := e.Value(ut.label)
			if !ok {
				continue
			}
			if _, dup := slot[v]; dup {
				return nil, &ConflictError{TypeLabel: ut.label, ValueA: v, ValueB: v}
			}
			slot[v] = e
		}
		index[ut.label] = slot
	}

	for _, e := range incoming {
		merged := false
		for _, ut := range uniqueTypes {
			v, ok := e.Value(ut.label)
			if !ok {
				continue
			}
			target, hit := index[ut.label][v]
			if !hit {
				continue
			}
			if err := target.Merge(e); err != nil {
				return nil, err
			}
			merged = true
			break
		}
		if !merged {
			result = append(result, e.Clone())
		}
	}
	return result, nil
}
