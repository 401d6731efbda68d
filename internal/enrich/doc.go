// Package enrich drives batched, bounded-concurrency catalog enrichment.
//
// The Scheduler partitions the catalog into fixed-size contiguous batches and
// feeds each batch to a long-lived pool of workers, so the concurrency cap is
// a process-wide invariant rather than a per-batch one. It barrier-waits for
// every dispatched record before advancing, which keeps batch boundaries
// strictly sequential while results accumulate in completion order.
//
// A Worker performs one record's end-to-end enrichment: search the lookup
// service, resolve the single exact match, fetch its details, and assemble an
// EnrichedRecord. Failures from the service are confined to that record; they
// never abort sibling workers or the batch.
//
// The run stops when the remaining catalog is smaller than one batch
// (StateCompleted) or when the configured batch cap is reached first
// (StateCapped). Both are normal stopping conditions; the next start index in
// the Outcome is the resumption point for a later run. A trailing partial
// batch shorter than the batch size is never dispatched.
package enrich
