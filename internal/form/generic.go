package form

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dukaforge/formload/pkg/types"
)

// placeholder marks a capture position inside a Generic pattern.
const placeholder = "{}"

// Generic matches a templated pattern such as "{}_{}.jpg" against candidate
// keys or values. Each {} placeholder captures a substring classified by
// the data type at the same position; a capture its type rejects turns the
// whole match into a no-match.
type Generic struct {
	Pattern string
	Types   []*types.DataType

	re *regexp.Regexp
}

// NewGeneric compiles pattern, pairing each {} placeholder with the data
// type at the same position. The placeholder and type counts must agree.
func NewGeneric(pattern string, dts ...*types.DataType) (*Generic, error) {
	literals := strings.Split(pattern, placeholder)
	if len(literals)-1 != len(dts) {
		return nil, fmt.Errorf("pattern %q has %d placeholders but %d data types",
			pattern, len(literals)-1, len(dts))
	}

	var b strings.Builder
	b.WriteString("^")
	for i, lit := range literals {
		if i > 0 {
			b.WriteString("(.+?)")
		}
		b.WriteString(regexp.QuoteMeta(lit))
	}
	b.WriteString("$")

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, fmt.Errorf("compiling pattern %q: %w", pattern, err)
	}
	return &Generic{Pattern: pattern, Types: dts, re: re}, nil
}

// MustGeneric is NewGeneric that panics on error. For fixed form presets.
func MustGeneric(pattern string, dts ...*types.DataType) *Generic {
	g, err := NewGeneric(pattern, dts...)
	if err != nil {
		panic(err)
	}
	return g
}

// Match extracts one data item per placeholder from candidate.
func (g *Generic) Match(candidate string) ([]types.DataItem, bool) {
	sub := g.re.FindStringSubmatch(candidate)
	if sub == nil {
		return nil, false
	}
	items := make([]types.DataItem, 0, len(g.Types))
	for i, dt := range g.Types {
		item, err := types.NewItem(dt, sub[i+1])
		if err != nil {
			return nil, false
		}
		items = append(items, item)
	}
	return items, true
}

func (g *Generic) String() string { return g.Pattern }

// Alias matches several patterns against the same candidate; all must
// match, and their items concatenate. Useful when one substring encodes
// multiple fields, e.g. an image name that is also the image id.
type Alias struct {
	Generics []*Generic
}

// NewAlias builds a choice-over-patterns node from at least one pattern.
func NewAlias(generics ...*Generic) (*Alias, error) {
	if len(generics) == 0 {
		return nil, fmt.Errorf("alias requires at least one pattern")
	}
	return &Alias{Generics: generics}, nil
}

// MustAlias is NewAlias that panics on error.
func MustAlias(generics ...*Generic) *Alias {
	a, err := NewAlias(generics...)
	if err != nil {
		panic(err)
	}
	return a
}

// Match requires every pattern to match candidate and concatenates the
// extracted items in pattern order.
func (a *Alias) Match(candidate string) ([]types.DataItem, bool) {
	var items []types.DataItem
	for _, g := range a.Generics {
		got, ok := g.Match(candidate)
		if !ok {
			return nil, false
		}
		items = append(items, got...)
	}
	return items, true
}

func (a *Alias) String() string {
	parts := make([]string, len(a.Generics))
	for i, g := range a.Generics {
		parts[i] = g.Pattern
	}
	return strings.Join(parts, "|")
}
