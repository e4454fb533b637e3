// Package query compiles CEL expressions into line predicates.
//
// A filter sees one variable binding per buffered line: id (int), size
// (int) and text (string). An empty expression compiles to a filter
// that matches everything, so callers can pass request parameters
// through without special-casing the absent filter.
package query
