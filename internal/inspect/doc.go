// Package inspect renders a ring snapshot as a standalone HTML page.
//
// The page shows every pool cell in a grid, colored by the line that
// owns it, plus a table of the active markers with their decoded data.
// It is a debugging aid exposed behind the debug snapshot endpoint.
package inspect
