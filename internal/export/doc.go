// Package export serializes enriched records for external consumers.
//
// CSV flattens the list-valued detail fields with a pipe separator; JSON
// preserves the full structure. Both writers take an io.Writer so callers
// own file handling.
package export
