package enrich

import "filmdex/internal/lookup"

// EnrichedRecord pairs a catalog record with the metadata fetched for its
// resolved candidate. One is produced per record at most, and only when a
// candidate passed exact title and year resolution and its details fetch
// succeeded.
type EnrichedRecord struct {
	MovieID     int64
	Title       string
	Year        int
	CandidateID string
	Details     lookup.Details
}
