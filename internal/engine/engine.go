// Package engine implements the template expansion engine: a recursive
// descent over a declarative form tree and parsed nested dataset data,
// producing consolidated data entries. The engine is stateless across calls
// and evaluates depth-first on a single goroutine; the only shared state is
// the token value-sets owned by the registry it is given.
package engine

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/dukaforge/formload/internal/form"
	"github.com/dukaforge/formload/pkg/types"
)

// ErrNoMatch reports a scalar value that matched none of the patterns the
// form prescribes for its position.
var ErrNoMatch = errors.New("value does not match pattern")

// Rule pairs a matcher key with the sub-form governing the matched data.
// The sub-form may be a nested Form, a *types.DataType leaf, a form.Matcher
// applied to the scalar value, a *form.GenericList, a *form.ImpliedList, or
// nil when the key itself carries all the information.
type Rule struct {
	Key   form.Matcher
	Value any
}

// Form is an ordered set of rules applied at one nesting level. Order is
// significant: it fixes the consolidation order of sibling branches.
type Form []Rule

// Engine expands forms against parsed nested data.
type Engine struct {
	Registry *types.Registry
	Progress Progress
}

// New returns an engine using reg's types and tie-break order.
func New(reg *types.Registry) *Engine {
	return &Engine{Registry: reg}
}

// Expand walks one level of the form against data and recurses into every
// matched key. Data must be an indexable shape (mapping or sequence);
// anything else is a *types.DatasetError carrying the traversal path and
// the observed shape. Depth grows by one per level and is diagnostic only.
func (e *Engine) Expand(path Path, data any, f Form, depth int) (*Expansion, error) {
	keyed, ok := asKeyed(data)
	if !ok {
		return nil, shapeError(path, data)
	}

	x := newExpansion()
	for _, rule := range f {
		for _, pair := range keyed {
			keyItems, ok := rule.Key.Match(pair.key)
			if !ok {
				continue
			}
			childPath := path.Push(pair.key)
			entries, err := e.expandValue(childPath, pair.value, rule.Value, depth+1)
			if err != nil {
				return nil, err
			}
			for _, entry := range entries {
				if err := entry.ApplyItems(keyItems...); err != nil {
					return nil, fmt.Errorf("at %s: %w", childPath, err)
				}
			}
			if len(entries) == 0 && len(keyItems) > 0 {
				entries = []*types.DataEntry{types.NewEntry(keyItems...)}
			}
			entries, err = foldDuplicates(e.Registry, entries)
			if err != nil {
				return nil, fmt.Errorf("at %s: %w", childPath, err)
			}
			x.add(pair.key, keyItems, entries)
			e.tick()
		}
	}
	return x, nil
}

// expandValue resolves the sub-form governing one matched value.
func (e *Engine) expandValue(path Path, data, sub any, depth int) ([]*types.DataEntry, error) {
	switch sf := sub.(type) {
	case nil:
		return nil, nil

	case *types.DataType:
		s, ok := stringify(data)
		if !ok {
			return nil, shapeError(path, data)
		}
		item, err := types.NewItem(sf, s)
		if err != nil {
			return nil, fmt.Errorf("at %s: %w", path, err)
		}
		return []*types.DataEntry{types.NewEntry(item)}, nil

	case Form:
		child, err := e.Expand(path, data, sf, depth)
		if err != nil {
			return nil, err
		}
		entries, err := child.Consolidate(e.Registry)
		if err != nil {
			return nil, fmt.Errorf("at %s: %w", path, err)
		}
		return entries, nil

	case *form.GenericList:
		return e.expandGenericList(path, data, sf, depth)

	case *form.ImpliedList:
		return e.expandImpliedList(path, data, sf, depth)

	case form.Matcher:
		s, ok := stringify(data)
		if !ok {
			return nil, shapeError(path, data)
		}
		items, ok := sf.Match(s)
		if !ok {
			return nil, fmt.Errorf("at %s: value %q: %w", path, s, ErrNoMatch)
		}
		if len(items) == 0 {
			return nil, nil
		}
		return []*types.DataEntry{types.NewEntry(items...)}, nil

	default:
		return nil, fmt.Errorf("at %s: unsupported form node %T", path, sub)
	}
}

// expandGenericList applies a repeating element pattern to a sequence. Each
// group of pattern-length elements merges into one entry.
func (e *Engine) expandGenericList(path Path, data any, gl *form.GenericList, depth int) ([]*types.DataEntry, error) {
	list, ok := data.([]any)
	if !ok {
		return nil, shapeError(path, data)
	}
	n := len(gl.Pattern)
	if n == 0 {
		return nil, fmt.Errorf("at %s: generic list pattern is empty", path)
	}
	if len(list)%n != 0 {
		return nil, shapeErrorObserved(path,
			fmt.Sprintf("sequence of length %d, not a multiple of %d", len(list), n))
	}

	var out []*types.DataEntry
	for i := 0; i < len(list); i += n {
		group := types.NewEntry()
		for j := 0; j < n; j++ {
			childPath := path.Push(strconv.Itoa(i + j))
			entries, err := e.expandValue(childPath, list[i+j], gl.Pattern[j], depth+1)
			if err != nil {
				return nil, err
			}
			for _, entry := range entries {
				if err := group.Merge(entry); err != nil {
					return nil, fmt.Errorf("at %s: %w", childPath, err)
				}
			}
			e.tick()
		}
		if group.Len() > 0 {
			out = append(out, group)
		}
	}
	return out, nil
}

// expandImpliedList expands a sequence whose element identity is its
// position: the index, offset by the configured start, becomes a data item
// of the indexer type on every entry the element produces.
func (e *Engine) expandImpliedList(path Path, data any, il *form.ImpliedList, depth int) ([]*types.DataEntry, error) {
	list, ok := data.([]any)
	if !ok {
		return nil, shapeError(path, data)
	}

	var out []*types.DataEntry
	for i, elem := range list {
		key := strconv.Itoa(il.Start + i)
		childPath := path.Push(key)
		indexItem, err := types.NewItem(il.Indexer, key)
		if err != nil {
			return nil, fmt.Errorf("at %s: %w", childPath, err)
		}
		entries, err := e.expandValue(childPath, elem, il.Form, depth+1)
		if err != nil {
			return nil, err
		}
		if len(entries) == 0 {
			entries = []*types.DataEntry{types.NewEntry()}
		}
		for _, entry := range entries {
			if err := entry.ApplyItems(indexItem); err != nil {
				return nil, fmt.Errorf("at %s: %w", childPath, err)
			}
			out = append(out, entry)
		}
		e.tick()
	}
	return out, nil
}

func (e *Engine) tick() {
	if e.Progress != nil {
		e.Progress.Add(1)
	}
}
