package types

import (
	"os"
	"strconv"
)

// TokenKind enumerates the identifier token variants. The set is closed:
// every switch over TokenKind handles all six variants.
type TokenKind int

const (
	// TokenWildcard accepts any value and records nothing.
	TokenWildcard TokenKind = iota
	// TokenQuantity accepts only values parseable as a number.
	TokenQuantity
	// TokenFilename accepts only values naming an existing path, and
	// records each accepted value.
	TokenFilename
	// TokenUnique accepts and records any value. Unique fields act as
	// identity keys: two items of the same type must never carry
	// conflicting values within one merged record.
	TokenUnique
	// TokenStorage accepts and records any value. Not an identity key;
	// on merge the first stored value wins.
	TokenStorage
	// TokenRedundant accepts and records any value. On merge, repeated
	// values for the same field accumulate into a sequence.
	TokenRedundant
)

// String returns the token kind name.
func (k TokenKind) String() string {
	switch k {
	case TokenWildcard:
		return "wildcard"
	case TokenQuantity:
		return "quantity"
	case TokenFilename:
		return "filename"
	case TokenUnique:
		return "unique"
	case TokenStorage:
		return "storage"
	case TokenRedundant:
		return "redundant_storage"
	default:
		return "unknown"
	}
}

// statPath is the filesystem existence check used by filename tokens.
// Overridable in tests.
var statPath = func(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Token carries the validation and identity policy attached to a DataType.
// The recording kinds own a run-scoped set of every value they accepted,
// used for cross-entry uniqueness and existence checks. Tokens are created
// by the registry and live as long as the loading run.
type Token struct {
	kind TokenKind
	seen map[string]struct{}
}

func newToken(kind TokenKind) *Token {
	t := &Token{kind: kind}
	switch kind {
	case TokenFilename, TokenUnique, TokenStorage, TokenRedundant:
		t.seen = make(map[string]struct{})
	}
	return t
}

// Kind returns the token variant.
func (t *Token) Kind() TokenKind { return t.kind }

// Accepts reports whether value is valid for this token. Recording kinds
// remember every accepted value. Acceptance is a pure predicate over the
// value; it never depends on traversal context and never panics.
func (t *Token) Accepts(value string) bool {
	switch t.kind {
	case TokenWildcard:
		return true
	case TokenQuantity:
		_, err := strconv.ParseFloat(value, 64)
		return err == nil
	case TokenFilename:
		if !statPath(value) {
			return false
		}
		t.seen[value] = struct{}{}
		return true
	case TokenUnique, TokenStorage, TokenRedundant:
		t.seen[value] = struct{}{}
		return true
	default:
		return false
	}
}

// Seen reports whether the token has recorded value during this run.
// Always false for non-recording kinds.
func (t *Token) Seen(value string) bool {
	_, ok := t.seen[value]
	return ok
}

// SeenCount returns the number of distinct values recorded during this run.
func (t *Token) SeenCount() int { return len(t.seen) }
