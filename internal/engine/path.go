package engine

import "strings"

// Path tracks the traversal location inside the dataset for diagnostics.
// Every recursive call extends the path with the key or index it consumed,
// so errors report the full location of the offending data.
type Path []string

// Push returns a new path extended with seg. The receiver is not mutated,
// so sibling branches keep independent paths.
func (p Path) Push(seg string) Path {
	next := make(Path, len(p)+1)
	copy(next, p)
	next[len(p)] = seg
	return next
}

// Strings returns the path segments as a fresh slice.
func (p Path) Strings() []string {
	return append([]string(nil), p...)
}

func (p Path) String() string {
	if len(p) == 0 {
		return "/"
	}
	return strings.Join(p, "/")
}
