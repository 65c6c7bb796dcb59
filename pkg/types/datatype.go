package types

import "fmt"

// DataType is an immutable descriptor pairing a unique label with an
// identifier token. Two DataTypes with the same label describe the same
// field; equality and map keys go by label alone. DataTypes are created
// through a Registry and never mutated afterwards.
type DataType struct {
	label string
	token *Token
}

// Label returns the unique field label.
func (dt *DataType) Label() string { return dt.label }

// Kind returns the token variant of this type.
func (dt *DataType) Kind() TokenKind { return dt.token.kind }

// Token returns the token carrying this type's recorded values.
func (dt *DataType) Token() *Token { return dt.token }

// IsUnique reports whether this type acts as an identity key.
func (dt *DataType) IsUnique() bool { return dt.token.kind == TokenUnique }

func (dt *DataType) String() string { return "<" + dt.label + ">" }

// Registry owns the DataTypes for one loading run. Declaration order is
// significant: it fixes the tie-break order among unique types during entry
// list merging. The token value-sets hang off the registry's types, so all
// run-scoped recording state is reachable from the registry instance rather
// than living in package globals.
type Registry struct {
	order   []*DataType
	byLabel map[string]*DataType
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byLabel: make(map[string]*DataType)}
}

// Register creates a DataType with the given label and token kind.
// Duplicate labels are rejected with ErrDuplicateLabel: label-based equality
// would silently conflate two registrations that disagree on token kind.
func (r *Registry) Register(label string, kind TokenKind) (*DataType, error) {
	if label == "" {
		return nil, ErrEmptyLabel
	}
	if _, ok := r.byLabel[label]; ok {
		return nil, fmt.Errorf("registering %q: %w", label, ErrDuplicateLabel)
	}
	dt := &DataType{label: label, token: newToken(kind)}
	r.order = append(r.order, dt)
	r.byLabel[label] = dt
	return dt, nil
}

// MustRegister is Register that panics on error. For fixed registries built
// at process start.
func (r *Registry) MustRegister(label string, kind TokenKind) *DataType {
	dt, err := r.Register(label, kind)
	if err != nil {
		panic(err)
	}
	return dt
}

// Lookup returns the DataType registered under label.
func (r *Registry) Lookup(label string) (*DataType, bool) {
	dt, ok := r.byLabel[label]
	return dt, ok
}

// Types returns all registered types in declaration order.
func (r *Registry) Types() []*DataType {
	out := make([]*DataType, len(r.order))
	copy(out, r.order)
	return out
}

// UniqueTypes returns the unique-kind types in declaration order. This is
// the fixed tie-break order MergeEntryLists scans when matching entries.
func (r *Registry) UniqueTypes() []*DataType {
	var out []*DataType
	for _, dt := range r.order {
		if dt.IsUnique() {
			out = append(out, dt)
		}
	}
	return out
}

// Len returns the number of registered types.
func (r *Registry) Len() int { return len(r.order) }

// Standard bundles the well-known field kinds for annotation datasets.
// Image name and id are identity keys; class fields are shared context;
// geometry fields are plain quantities.
type Standard struct {
	Registry *Registry

	ImageSet     *DataType
	ImageSetID   *DataType
	AbsoluteFile *DataType
	RelativeFile *DataType
	ImageName    *DataType
	ImageID      *DataType
	ClassName    *DataType
	ClassID      *DataType
	XMin         *DataType
	YMin         *DataType
	XMax         *DataType
	YMax         *DataType
	Width        *DataType
	Height       *DataType
	Generic      *DataType
}

// NewStandard builds a fresh registry populated with the standard types.
// Each call returns independent token state, so loading runs do not share
// recorded values.
func NewStandard() *Standard {
	r := NewRegistry()
	return &Standard{
		Registry:     r,
		ImageSet:     r.MustRegister("IMAGE_SET", TokenRedundant),
		ImageSetID:   r.MustRegister("IMAGE_SET_ID", TokenRedundant),
		AbsoluteFile: r.MustRegister("ABSOLUTE_FILE", TokenFilename),
		RelativeFile: r.MustRegister("RELATIVE_FILE", TokenFilename),
		ImageName:    r.MustRegister("IMAGE_NAME", TokenUnique),
		ImageID:      r.MustRegister("IMAGE_ID", TokenUnique),
		ClassName:    r.MustRegister("CLASS_NAME", TokenStorage),
		ClassID:      r.MustRegister("CLASS_ID", TokenStorage),
		XMin:         r.MustRegister("XMIN", TokenQuantity),
		YMin:         r.MustRegister("YMIN", TokenQuantity),
		XMax:         r.MustRegister("XMAX", TokenQuantity),
		YMax:         r.MustRegister("YMAX", TokenQuantity),
		Width:        r.MustRegister("WIDTH", TokenQuantity),
		Height:       r.MustRegister("HEIGHT", TokenQuantity),
		Generic:      r.MustRegister("GENERIC", TokenWildcard),
	}
}
