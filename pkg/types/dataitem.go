package types

// DataItem is one validated (type, value) pair. Items are immutable once
// constructed; equality goes by (label, value).
type DataItem struct {
	Type  *DataType
	Value string
}

// NewItem validates value against the type's token and returns the item.
// Returns a *ValidationError when the token rejects the value. Recording
// tokens remember the value as a side effect of acceptance.
func NewItem(dt *DataType, value string) (DataItem, error) {
	if !dt.token.Accepts(value) {
		return DataItem{}, &ValidationError{TypeLabel: dt.label, Value: value}
	}
	return DataItem{Type: dt, Value: value}, nil
}

// MustItem is NewItem that panics on error. For fixed form definitions and
// tests where the value is known valid.
func MustItem(dt *DataType, value string) DataItem {
	it, err := NewItem(dt, value)
	if err != nil {
		panic(err)
	}
	return it
}

// Equal reports whether two items carry the same type label and value.
func (it DataItem) Equal(other DataItem) bool {
	return it.Type.label == other.Type.label && it.Value == other.Value
}

func (it DataItem) String() string {
	return it.Type.String() + ": " + it.Value
}
