package enrich_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"filmdex/internal/catalog"
	"filmdex/internal/enrich"
	"filmdex/internal/lookup"
)

// fakeService scripts lookup responses per title and per id.
type fakeService struct {
	mu         sync.Mutex
	candidates map[string][]lookup.Candidate
	details    map[string]*lookup.Details
	searchErr  map[string]error
	detailsErr map[string]error
	searches   int
	fetches    int
}

func newFakeService() *fakeService {
	return &fakeService{
		candidates: make(map[string][]lookup.Candidate),
		details:    make(map[string]*lookup.Details),
		searchErr:  make(map[string]error),
		detailsErr: make(map[string]error),
	}
}

func (f *fakeService) SearchByTitle(_ context.Context, title string) ([]lookup.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches++
	if err := f.searchErr[title]; err != nil {
		return nil, err
	}
	return f.candidates[title], nil
}

func (f *fakeService) FetchDetails(_ context.Context, id string) (*lookup.Details, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if err := f.detailsErr[id]; err != nil {
		return nil, err
	}
	return f.details[id], nil
}

func TestWorkerEnrichAssemblesRecord(t *testing.T) {
	service := newFakeService()
	service.candidates["Dune"] = []lookup.Candidate{{ID: "dune2021", Title: "Dune", Year: 2021}}
	rating := 8.1
	service.details["dune2021"] = &lookup.Details{
		Kind:      "movie",
		Genres:    []string{"Science Fiction"},
		Directors: []string{"nm0898288"},
		Rating:    &rating,
		Cast:      []string{"nm3154303"},
	}

	worker, err := enrich.NewWorker(service)
	if err != nil {
		t.Fatalf("NewWorker returned error: %v", err)
	}

	enriched, err := worker.Enrich(context.Background(), catalog.Record{ID: 11, Title: "Dune", Year: 2021})
	if err != nil {
		t.Fatalf("Enrich returned error: %v", err)
	}
	if enriched == nil {
		t.Fatal("expected enriched record")
	}
	if enriched.MovieID != 11 || enriched.CandidateID != "dune2021" {
		t.Fatalf("unexpected record identity: %+v", enriched)
	}
	if enriched.Details.Rating == nil || *enriched.Details.Rating != 8.1 {
		t.Fatalf("unexpected rating: %+v", enriched.Details.Rating)
	}
}

func TestWorkerEnrichNoMatchSkipsDetailsFetch(t *testing.T) {
	service := newFakeService()
	service.candidates["Solaris"] = []lookup.Candidate{{ID: "x", Title: "Solaris", Year: 2002}}

	worker, err := enrich.NewWorker(service)
	if err != nil {
		t.Fatalf("NewWorker returned error: %v", err)
	}

	enriched, err := worker.Enrich(context.Background(), catalog.Record{ID: 5, Title: "Solaris", Year: 1972})
	if err != nil {
		t.Fatalf("Enrich returned error: %v", err)
	}
	if enriched != nil {
		t.Fatalf("expected no-match outcome, got %+v", enriched)
	}
	if service.fetches != 0 {
		t.Fatalf("details fetch should be skipped without a match, got %d fetches", service.fetches)
	}
}

func TestWorkerEnrichPropagatesSearchError(t *testing.T) {
	service := newFakeService()
	wantErr := &lookup.Error{Op: "search", Key: "Stalker", Err: errors.New("timeout")}
	service.searchErr["Stalker"] = wantErr

	worker, err := enrich.NewWorker(service)
	if err != nil {
		t.Fatalf("NewWorker returned error: %v", err)
	}

	enriched, err := worker.Enrich(context.Background(), catalog.Record{ID: 3, Title: "Stalker", Year: 1979})
	if enriched != nil {
		t.Fatalf("expected no record on error, got %+v", enriched)
	}
	var lookupErr *lookup.Error
	if !errors.As(err, &lookupErr) {
		t.Fatalf("expected *lookup.Error, got %T", err)
	}
}

func TestWorkerEnrichNilDetailsDefaultsToZero(t *testing.T) {
	service := newFakeService()
	service.candidates["Pi"] = []lookup.Candidate{{ID: "pi1998", Title: "Pi", Year: 1998}}
	// details map intentionally left empty: the service returns nil, nil.

	worker, err := enrich.NewWorker(service)
	if err != nil {
		t.Fatalf("NewWorker returned error: %v", err)
	}

	enriched, err := worker.Enrich(context.Background(), catalog.Record{ID: 7, Title: "Pi", Year: 1998})
	if err != nil {
		t.Fatalf("Enrich returned error: %v", err)
	}
	if enriched == nil {
		t.Fatal("expected enriched record")
	}
	if enriched.Details.Kind != "" || enriched.Details.Rating != nil {
		t.Fatalf("expected zero details, got %+v", enriched.Details)
	}
}
