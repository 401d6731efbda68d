// Package lookup wraps the external title metadata service.
//
// The service exposes two operations: a relevance-ranked title search and a
// details fetch by external id. Both are plain HTTP+JSON endpoints with their
// own latency and failure profile; this package only consumes the contract.
// Failures surface as *Error so callers can attach the operation and the
// record that triggered it without losing the underlying cause.
package lookup
