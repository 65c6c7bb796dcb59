package form

import "github.com/dukaforge/formload/pkg/types"

// GenericList describes a sequence built from a fixed repeating pattern of
// element forms. The sequence length must be a multiple of the pattern
// length; each consecutive group of pattern-length elements yields one
// record. A single-element pattern therefore applies to every element.
type GenericList struct {
	Pattern []any
}

// NewGenericList builds a list node from the element forms in pattern.
func NewGenericList(pattern ...any) *GenericList {
	return &GenericList{Pattern: pattern}
}

// ImpliedList describes a sequence whose element identity is its position:
// each element's index (offset by Start) is synthesized into a data item of
// the Indexer type before the element form is expanded. This covers layouts
// such as YOLO class lists, where the class id is the line number.
type ImpliedList struct {
	Form    any
	Indexer *types.DataType
	Start   int
}

// NewImpliedList wraps an element form with a positional indexer.
func NewImpliedList(elem any, indexer *types.DataType, start int) *ImpliedList {
	return &ImpliedList{Form: elem, Indexer: indexer, Start: start}
}
