// Package form provides the declarative template nodes a dataset form is
// built from: exact-match statics, templated patterns, pattern choices, and
// list wrappers. The expansion engine resolves these nodes against parsed
// dataset data; this package only decides whether a candidate key or value
// matches and which data items the match extracts.
package form
