// Package store persists enrichment runs and their results in SQLite.
//
// A run row tracks the resumption cursor (next start index), batch counters,
// and terminal state; result rows hold one enriched record each. SaveBatch
// writes a batch's results and the advanced cursor in a single transaction so
// a crash between batches never leaves the cursor ahead of the data.
//
// The database lives under the configured data directory. Schema changes
// bump schemaVersion; mismatched databases are rejected rather than migrated.
package store
