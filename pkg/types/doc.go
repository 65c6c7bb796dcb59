// Package types defines the data model for dataset annotation loading:
// identifier tokens, the data type registry, data items, data entries, and
// the entry list-merge algorithm that consolidates partial records sharing
// identity into unified records.
package types
