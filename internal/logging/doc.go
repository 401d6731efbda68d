// Package logging constructs the slog loggers used across filmdex.
//
// Console output is a compact single-line format with the component name
// folded into the message prefix; JSON output uses lowercase level names and
// RFC3339 timestamps. Attr helpers keep call sites free of direct slog
// imports so the field vocabulary stays consistent.
package logging
