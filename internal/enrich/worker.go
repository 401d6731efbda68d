package enrich

import (
	"context"
	"fmt"

	"filmdex/internal/catalog"
	"filmdex/internal/lookup"
	"filmdex/internal/match"
)

// Worker enriches one catalog record end to end.
type Worker struct {
	service lookup.Service
}

// NewWorker creates a worker backed by the supplied lookup service.
func NewWorker(service lookup.Service) (*Worker, error) {
	if service == nil {
		return nil, fmt.Errorf("lookup service required")
	}
	return &Worker{service: service}, nil
}

// Enrich searches for the record's title, resolves the single exact match,
// and fetches its details. A nil record with a nil error is the no-match
// outcome. A non-nil error means the lookup service failed for this record;
// the caller decides how to report it, and the failure carries no
// consequences for any other record.
func (w *Worker) Enrich(ctx context.Context, record catalog.Record) (*EnrichedRecord, error) {
	candidates, err := w.service.SearchByTitle(ctx, record.Title)
	if err != nil {
		return nil, err
	}

	candidate := match.Resolve(record, candidates)
	if candidate == nil {
		return nil, nil
	}

	details, err := w.service.FetchDetails(ctx, candidate.ID)
	if err != nil {
		return nil, err
	}

	enriched := &EnrichedRecord{
		MovieID:     record.ID,
		Title:       record.Title,
		Year:        record.Year,
		CandidateID: candidate.ID,
	}
	if details != nil {
		enriched.Details = *details
	}
	return enriched, nil
}
