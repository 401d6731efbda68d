package match

import (
	"filmdex/internal/catalog"
	"filmdex/internal/lookup"
)

// Resolve picks the candidate whose title and year exactly equal the
// record's, preserving search order. Records with an unknown year can never
// match: a zero year says nothing about the release, so equality against it
// would pair unrelated titles.
func Resolve(record catalog.Record, candidates []lookup.Candidate) *lookup.Candidate {
	if record.Year == catalog.YearUnknown {
		return nil
	}
	for i := range candidates {
		if candidates[i].Title == record.Title && candidates[i].Year == record.Year {
			return &candidates[i]
		}
	}
	return nil
}
