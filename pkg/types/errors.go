package types

import (
	"errors"
	"fmt"
	"strings"
)

// Registry construction errors.
var (
	ErrDuplicateLabel = errors.New("duplicate data type label")
	ErrEmptyLabel     = errors.New("data type label must not be empty")
)

// DatasetError kinds.
const (
	KindIncorrectType = "incorrect_type"
)

// ValidationError reports a value rejected by its data type's token.
type ValidationError struct {
	TypeLabel string
	Value     string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("value %q is invalid for data type <%s>", e.Value, e.TypeLabel)
}

// ConflictError reports two disagreeing values for a unique field during a
// merge. ValueA is the value already held; ValueB is the incoming value.
type ConflictError struct {
	TypeLabel string
	ValueA    string
	ValueB    string
}

func (e *ConflictError) Error() string {
	if e.ValueA == e.ValueB {
		return fmt.Sprintf("duplicate unique value %q for data type <%s>", e.ValueA, e.TypeLabel)
	}
	return fmt.Sprintf("unique identifier conflict for data type <%s>: %q != %q",
		e.TypeLabel, e.ValueA, e.ValueB)
}

// InvalidOperationError reports an operation invoked on an entry that does
// not support it, such as pairing a unique-flagged entry.
type InvalidOperationError struct {
	Operation string
	Reason    string
}

func (e *InvalidOperationError) Error() string {
	return fmt.Sprintf("invalid operation %s: %s", e.Operation, e.Reason)
}

// DatasetError reports that the data under Path did not have the shape the
// form expects. Observed carries the shape actually seen, for diagnostics.
type DatasetError struct {
	Kind     string
	Path     []string
	Observed string
}

func (e *DatasetError) Error() string {
	loc := "/"
	if len(e.Path) > 0 {
		loc = strings.Join(e.Path, "/")
	}
	return fmt.Sprintf("%s at %s: got %s", e.Kind, loc, e.Observed)
}
