package store_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"filmdex/internal/config"
	"filmdex/internal/enrich"
	"filmdex/internal/lookup"
	"filmdex/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	st, err := store.Open(&cfg)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestCreateRunInitializesCursor(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	run, err := st.CreateRun(ctx, "/catalogs/movie_titles.csv", 17770, 30)
	if err != nil {
		t.Fatalf("CreateRun returned error: %v", err)
	}
	if run.ID == "" {
		t.Fatal("expected generated run id")
	}
	if run.Status != store.RunRunning {
		t.Fatalf("expected running status, got %q", run.Status)
	}
	if run.NextStartIndex != 0 || run.BatchesCompleted != 0 {
		t.Fatalf("expected zeroed cursor, got %+v", run)
	}
	if run.CatalogSize != 17770 || run.BatchSize != 30 {
		t.Fatalf("unexpected run shape: %+v", run)
	}
}

func TestGetRunUnknownIDReturnsNotFound(t *testing.T) {
	st := newTestStore(t)
	if _, err := st.GetRun(context.Background(), "nope"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveBatchAdvancesCursorAndStoresResults(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	run, err := st.CreateRun(ctx, "/catalogs/movie_titles.csv", 100, 2)
	if err != nil {
		t.Fatalf("CreateRun returned error: %v", err)
	}

	rating := 7.9
	summary := enrich.BatchSummary{
		Batch:          1,
		StartIndex:     0,
		NextStartIndex: 2,
		LookupErrors:   1,
		Results: []enrich.EnrichedRecord{
			{
				MovieID:     11,
				Title:       "Dune",
				Year:        2021,
				CandidateID: "dune2021",
				Details: lookup.Details{
					Kind:      "movie",
					Genres:    []string{"Science Fiction", "Adventure"},
					Directors: []string{"nm0898288"},
					Rating:    &rating,
				},
			},
		},
	}
	if err := st.SaveBatch(ctx, run.ID, summary); err != nil {
		t.Fatalf("SaveBatch returned error: %v", err)
	}

	updated, err := st.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun returned error: %v", err)
	}
	if updated.NextStartIndex != 2 || updated.BatchesCompleted != 1 {
		t.Fatalf("cursor not advanced: %+v", updated)
	}
	if updated.MatchesFound != 1 || updated.LookupErrors != 1 {
		t.Fatalf("counters not accumulated: %+v", updated)
	}

	records, err := st.ResultsForRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("ResultsForRun returned error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 stored result, got %d", len(records))
	}
	got := records[0]
	if got.MovieID != 11 || got.CandidateID != "dune2021" {
		t.Fatalf("unexpected stored identity: %+v", got)
	}
	if len(got.Details.Genres) != 2 || got.Details.Genres[0] != "Science Fiction" {
		t.Fatalf("genres did not round-trip: %+v", got.Details.Genres)
	}
	if got.Details.Rating == nil || *got.Details.Rating != 7.9 {
		t.Fatalf("rating did not round-trip: %+v", got.Details.Rating)
	}
	if len(got.Details.Cast) != 0 {
		t.Fatalf("expected empty cast, got %+v", got.Details.Cast)
	}
}

func TestSaveBatchUnknownRunReturnsNotFound(t *testing.T) {
	st := newTestStore(t)
	err := st.SaveBatch(context.Background(), "missing", enrich.BatchSummary{NextStartIndex: 2})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFindResumableMatchesCatalogAndBatchSize(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	capped, err := st.CreateRun(ctx, "/catalogs/a.csv", 50, 10)
	if err != nil {
		t.Fatalf("CreateRun returned error: %v", err)
	}
	if err := st.FinishRun(ctx, capped.ID, enrich.StateCapped); err != nil {
		t.Fatalf("FinishRun returned error: %v", err)
	}
	if _, err := st.CreateRun(ctx, "/catalogs/a.csv", 50, 25); err != nil {
		t.Fatalf("CreateRun returned error: %v", err)
	}
	if _, err := st.CreateRun(ctx, "/catalogs/b.csv", 50, 10); err != nil {
		t.Fatalf("CreateRun returned error: %v", err)
	}

	found, err := st.FindResumable(ctx, "/catalogs/a.csv", 10)
	if err != nil {
		t.Fatalf("FindResumable returned error: %v", err)
	}
	if found.ID != capped.ID {
		t.Fatalf("expected capped run %s, got %s", capped.ID, found.ID)
	}
}

func TestFindResumableSkipsCompletedRuns(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	run, err := st.CreateRun(ctx, "/catalogs/a.csv", 50, 10)
	if err != nil {
		t.Fatalf("CreateRun returned error: %v", err)
	}
	if err := st.FinishRun(ctx, run.ID, enrich.StateCompleted); err != nil {
		t.Fatalf("FinishRun returned error: %v", err)
	}

	if _, err := st.FindResumable(ctx, "/catalogs/a.csv", 10); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for completed run, got %v", err)
	}
}

func TestFinishRunRejectsNonTerminalState(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	run, err := st.CreateRun(ctx, "/catalogs/a.csv", 50, 10)
	if err != nil {
		t.Fatalf("CreateRun returned error: %v", err)
	}
	if err := st.FinishRun(ctx, run.ID, enrich.StateRunning); err == nil {
		t.Fatal("expected error for non-terminal state")
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	first, err := st.CreateRun(ctx, "/catalogs/a.csv", 50, 10)
	if err != nil {
		t.Fatalf("CreateRun returned error: %v", err)
	}
	second, err := st.CreateRun(ctx, "/catalogs/b.csv", 60, 10)
	if err != nil {
		t.Fatalf("CreateRun returned error: %v", err)
	}

	runs, err := st.ListRuns(ctx)
	if err != nil {
		t.Fatalf("ListRuns returned error: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != second.ID || runs[1].ID != first.ID {
		t.Fatalf("expected newest-first ordering, got %s then %s", runs[0].ID, runs[1].ID)
	}
}

func TestAcquireLockIsExclusive(t *testing.T) {
	dir := t.TempDir()

	lock, err := store.AcquireLock(dir)
	if err != nil {
		t.Fatalf("AcquireLock returned error: %v", err)
	}

	if _, err := store.AcquireLock(dir); err == nil {
		t.Fatal("expected second lock attempt to fail")
	}

	if err := lock.Unlock(); err != nil {
		t.Fatalf("unlock returned error: %v", err)
	}
	lock, err = store.AcquireLock(dir)
	if err != nil {
		t.Fatalf("expected lock to be reacquirable after unlock: %v", err)
	}
	_ = lock.Unlock()
}
