package engine

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/dukaforge/formload/pkg/types"
)

// kv is one key/value pair of a re-indexed collection.
type kv struct {
	key   string
	value any
}

// asKeyed re-indexes data as an ordered keyed collection so mappings and
// sequences share one traversal path. Sequence elements are keyed by their
// position; mapping keys sort lexically for deterministic iteration.
func asKeyed(data any) ([]kv, bool) {
	switch d := data.(type) {
	case map[string]any:
		keys := make([]string, 0, len(d))
		for k := range d {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]kv, 0, len(keys))
		for _, k := range keys {
			out = append(out, kv{key: k, value: d[k]})
		}
		return out, true
	case []any:
		out := make([]kv, 0, len(d))
		for i, v := range d {
			out = append(out, kv{key: strconv.Itoa(i), value: v})
		}
		return out, true
	default:
		return nil, false
	}
}

// stringify converts a scalar leaf value to the string the token predicates
// operate on. json.Number keeps the exact source text, so quantity tokens
// see what the file contained.
func stringify(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	default:
		return "", false
	}
}

// observedShape names the shape of v for shape-error diagnostics.
func observedShape(v any) string {
	switch v.(type) {
	case map[string]any:
		return "mapping"
	case []any:
		return "sequence"
	case string:
		return "string"
	case json.Number, int, int64, float64:
		return "number"
	case bool:
		return "bool"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func shapeError(p Path, v any) error {
	return &types.DatasetError{
		Kind:     types.KindIncorrectType,
		Path:     p.Strings(),
		Observed: observedShape(v),
	}
}

func shapeErrorObserved(p Path, observed string) error {
	return &types.DatasetError{
		Kind:     types.KindIncorrectType,
		Path:     p.Strings(),
		Observed: observed,
	}
}
