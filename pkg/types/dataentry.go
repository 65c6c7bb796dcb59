package types

import (
	"slices"
	"strings"
)

// DataEntry is one logical record: an ordered, keyed set of DataItems with
// at most one item per field, except redundant-storage fields which hold a
// sequence of items. Entries are created by the expansion engine and
// mutated only through Merge, ApplyItems, and ApplyPairing.
type DataEntry struct {
	order  []string
	fields map[string][]DataItem
	unique bool
}

// NewEntry builds an entry from items. A later item with the same label
// replaces an earlier one during construction.
func NewEntry(items ...DataItem) *DataEntry {
	e := &DataEntry{fields: make(map[string][]DataItem)}
	for _, it := range items {
		label := it.Type.label
		if _, ok := e.fields[label]; !ok {
			e.order = append(e.order, label)
		}
		e.fields[label] = []DataItem{it}
		if it.Type.IsUnique() {
			e.unique = true
		}
	}
	return e
}

// IsUnique reports whether any contained field is an identity key. Only
// non-unique entries may be used as pairing sources.
func (e *DataEntry) IsUnique() bool { return e.unique }

// Len returns the number of fields.
func (e *DataEntry) Len() int { return len(e.order) }

// Labels returns the field labels in insertion order.
func (e *DataEntry) Labels() []string {
	return slices.Clone(e.order)
}

// Get returns all values stored for label, in the order stored. The slice
// has length one except for redundant-storage fields.
func (e *DataEntry) Get(label string) ([]DataItem, bool) {
	items, ok := e.fields[label]
	if !ok {
		return nil, false
	}
	return slices.Clone(items), true
}

// Value returns the first stored value for label.
func (e *DataEntry) Value(label string) (string, bool) {
	items, ok := e.fields[label]
	if !ok {
		return "", false
	}
	return items[0].Value, true
}

// Items returns every contained item, fields in insertion order.
func (e *DataEntry) Items() []DataItem {
	var out []DataItem
	for _, label := range e.order {
		out = append(out, e.fields[label]...)
	}
	return out
}

// UniqueItems returns the identity-key items in field insertion order.
func (e *DataEntry) UniqueItems() []DataItem {
	var out []DataItem
	for _, label := range e.order {
		items := e.fields[label]
		if items[0].Type.IsUnique() {
			out = append(out, items[0])
		}
	}
	return out
}

// Clone returns a deep copy sharing no mutable state with e.
func (e *DataEntry) Clone() *DataEntry {
	c := &DataEntry{
		order:  slices.Clone(e.order),
		fields: make(map[string][]DataItem, len(e.fields)),
		unique: e.unique,
	}
	for label, items := range e.fields {
		c.fields[label] = slices.Clone(items)
	}
	return c
}

// Merge folds other's fields into e. Two-phase and all-or-nothing: phase
// one validates that every unique field present on both sides carries equal
// values, returning a *ConflictError otherwise with e untouched; phase two
// inserts absent fields, appends redundant-storage values, and leaves
// existing storage and unique values unchanged (first value wins).
func (e *DataEntry) Merge(other *DataEntry) error {
	for _, label := range other.order {
		incoming := other.fields[label][0]
		if incoming.Type.Kind() != TokenUnique {
			continue
		}
		if held, ok := e.fields[label]; ok && held[0].Value != incoming.Value {
			return &ConflictError{TypeLabel: label, ValueA: held[0].Value, ValueB: incoming.Value}
		}
	}
	for _, label := range other.order {
		incoming := other.fields[label]
		if _, ok := e.fields[label]; !ok {
			e.order = append(e.order, label)
			e.fields[label] = slices.Clone(incoming)
			if incoming[0].Type.IsUnique() {
				e.unique = true
			}
			continue
		}
		if incoming[0].Type.Kind() == TokenRedundant {
			e.fields[label] = append(e.fields[label], incoming...)
		}
	}
	return nil
}

// ApplyItems attaches newly matched items to e under the same two-phase,
// all-or-nothing contract as Merge.
func (e *DataEntry) ApplyItems(items ...DataItem) error {
	for _, it := range items {
		if it.Type.Kind() != TokenUnique {
			continue
		}
		if held, ok := e.fields[it.Type.label]; ok && held[0].Value != it.Value {
			return &ConflictError{TypeLabel: it.Type.label, ValueA: held[0].Value, ValueB: it.Value}
		}
	}
	for _, it := range items {
		label := it.Type.label
		if _, ok := e.fields[label]; !ok {
			e.order = append(e.order, label)
			e.fields[label] = []DataItem{it}
			if it.Type.IsUnique() {
				e.unique = true
			}
			continue
		}
		if it.Type.Kind() == TokenRedundant {
			e.fields[label] = append(e.fields[label], it)
		}
	}
	return nil
}

// ApplyPairing broadcasts e's items onto every candidate entry that shares
// at least one item with e. Only valid for non-unique entries: pairing
// describes shared context such as a class name/id lookup attaching to the
// records that reference it. Returns an *InvalidOperationError when e
// carries identity keys.
func (e *DataEntry) ApplyPairing(entries ...*DataEntry) error {
	if e.unique {
		return &InvalidOperationError{
			Operation: "apply_pairing",
			Reason:    "entry carries unique identifiers",
		}
	}
	for _, cand := range entries {
		if !e.sharesValue(cand) {
			continue
		}
		if err := cand.ApplyItems(e.Items()...); err != nil {
			return err
		}
	}
	return nil
}

// sharesValue reports whether any item of e (same type and value) appears
// among other's items. Matching full items rather than bare values keeps a
// class id from pairing against an unrelated coordinate that happens to
// spell the same number.
func (e *DataEntry) sharesValue(other *DataEntry) bool {
	held := make(map[string]struct{})
	for label, items := range other.fields {
		for _, it := range items {
			held[label+"\x00"+it.Value] = struct{}{}
		}
	}
	for label, items := range e.fields {
		for _, it := range items {
			if _, ok := held[label+"\x00"+it.Value]; ok {
				return true
			}
		}
	}
	return false
}

func (e *DataEntry) String() string {
	var b strings.Builder
	b.WriteString("DataEntry:")
	for _, it := range e.Items() {
		b.WriteString(" ")
		b.WriteString(it.String())
	}
	return b.String()
}
