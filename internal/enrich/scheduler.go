package enrich

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"filmdex/internal/catalog"
	"filmdex/internal/logging"
)

// State describes where a run stopped.
type State string

const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StateCompleted State = "completed"
	StateCapped    State = "capped"
)

// BatchSummary describes one finished batch. NextStartIndex already points
// past the batch; Results hold only this batch's records, in completion
// order.
type BatchSummary struct {
	Batch          int
	StartIndex     int
	NextStartIndex int
	Results        []EnrichedRecord
	LookupErrors   int
}

// BatchFunc runs after each batch barrier, before the next batch starts.
// Returning an error stops the run; the batch's results are already in the
// summary so callers can persist them transactionally.
type BatchFunc func(ctx context.Context, summary BatchSummary) error

// Params configures a Scheduler.
type Params struct {
	// BatchSize is the number of records per batch. Required, positive.
	BatchSize int
	// MaxBatches caps batches processed in this run; 0 means unbounded.
	MaxBatches int
	// Workers bounds concurrently executing enrichments. Required, positive.
	Workers int
	// StartIndex is the catalog offset to begin at, for resumed runs.
	StartIndex int
	// OnProgress, when set, receives (found, total) after every success.
	OnProgress ProgressFunc
	// OnBatchDone, when set, runs after each batch barrier.
	OnBatchDone BatchFunc
}

func (p Params) validate() error {
	if p.BatchSize <= 0 {
		return errors.New("batch size must be positive")
	}
	if p.MaxBatches < 0 {
		return errors.New("max batches must not be negative")
	}
	if p.Workers <= 0 {
		return errors.New("worker count must be positive")
	}
	if p.StartIndex < 0 {
		return errors.New("start index must not be negative")
	}
	return nil
}

// Outcome summarizes a finished or stopped run.
type Outcome struct {
	State             State
	Results           []EnrichedRecord
	StartIndex        int
	NextStartIndex    int
	BatchesCompleted  int
	RecordsDispatched int
	MatchesFound      int
	LookupErrors      int
}

// Scheduler owns batch progression and all run state. Workers only return
// per-record outcomes; every mutation of the accumulated results happens on
// the scheduler goroutine after a batch barrier.
type Scheduler struct {
	worker *Worker
	logger *slog.Logger
	params Params
}

// NewScheduler validates params up front so configuration mistakes surface
// before any batch executes.
func NewScheduler(worker *Worker, logger *slog.Logger, params Params) (*Scheduler, error) {
	if worker == nil {
		return nil, errors.New("worker required")
	}
	if err := params.validate(); err != nil {
		return nil, fmt.Errorf("scheduler params: %w", err)
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Scheduler{
		worker: worker,
		logger: logging.WithComponent(logger, "scheduler"),
		params: params,
	}, nil
}

type itemResult struct {
	record   catalog.Record
	enriched *EnrichedRecord
	err      error
}

// Run processes the catalog from the configured start index until the
// remaining catalog is smaller than one batch or the batch cap is hit. The
// cap is checked only at batch boundaries; a batch that has started always
// runs to completion, including on context cancellation (cancellation makes
// in-flight lookups fail as per-record errors, and the loop exits at the
// next boundary).
func (s *Scheduler) Run(ctx context.Context, cat *catalog.Catalog) (*Outcome, error) {
	total := cat.Len()
	outcome := &Outcome{
		State:          StateRunning,
		StartIndex:     s.params.StartIndex,
		NextStartIndex: s.params.StartIndex,
	}

	jobs := make(chan catalog.Record)
	results := make(chan itemResult)
	var wg sync.WaitGroup
	for i := 0; i < s.params.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for record := range jobs {
				enriched, err := s.worker.Enrich(ctx, record)
				results <- itemResult{record: record, enriched: enriched, err: err}
			}
		}()
	}
	defer func() {
		close(jobs)
		wg.Wait()
	}()

	s.logger.Info("run starting",
		logging.Int("catalog_size", total),
		logging.Int("start_index", outcome.StartIndex),
		logging.Int("batch_size", s.params.BatchSize),
		logging.Int("max_batches", s.params.MaxBatches),
		logging.Int("workers", s.params.Workers),
	)

	for {
		if outcome.NextStartIndex+s.params.BatchSize > total {
			// The trailing partial batch is never dispatched.
			outcome.State = StateCompleted
			break
		}
		if s.params.MaxBatches > 0 && outcome.BatchesCompleted >= s.params.MaxBatches {
			outcome.State = StateCapped
			break
		}
		if err := ctx.Err(); err != nil {
			return outcome, err
		}

		summary := s.runBatch(cat, outcome, jobs, results, total)

		s.logger.Info("batch complete",
			logging.Int("batch", summary.Batch),
			logging.Int("matched", len(summary.Results)),
			logging.Int("lookup_errors", summary.LookupErrors),
			logging.Int("next_start_index", summary.NextStartIndex),
		)

		if s.params.OnBatchDone != nil {
			if err := s.params.OnBatchDone(ctx, summary); err != nil {
				return outcome, fmt.Errorf("batch %d: %w", summary.Batch, err)
			}
		}
	}

	s.logger.Info("run finished",
		logging.String("state", string(outcome.State)),
		logging.Int("batches", outcome.BatchesCompleted),
		logging.Int("dispatched", outcome.RecordsDispatched),
		logging.Int("matched", outcome.MatchesFound),
		logging.Int("lookup_errors", outcome.LookupErrors),
	)
	return outcome, nil
}

func (s *Scheduler) runBatch(cat *catalog.Catalog, outcome *Outcome, jobs chan<- catalog.Record, results <-chan itemResult, total int) BatchSummary {
	start := outcome.NextStartIndex
	batch := cat.Slice(start, start+s.params.BatchSize)

	go func() {
		for _, record := range batch {
			jobs <- record
		}
	}()

	summary := BatchSummary{
		Batch:      outcome.BatchesCompleted + 1,
		StartIndex: start,
	}
	// Barrier: every dispatched record reports back before the batch ends.
	for range batch {
		item := <-results
		outcome.RecordsDispatched++
		switch {
		case item.err != nil:
			outcome.LookupErrors++
			summary.LookupErrors++
			s.logger.Warn("record lookup failed",
				logging.Int64("movie_id", item.record.ID),
				logging.String("title", item.record.Title),
				logging.Error(item.err),
			)
		case item.enriched != nil:
			outcome.Results = append(outcome.Results, *item.enriched)
			summary.Results = append(summary.Results, *item.enriched)
			outcome.MatchesFound++
			if s.params.OnProgress != nil {
				s.params.OnProgress(outcome.MatchesFound, total)
			}
		default:
			// No match is a legitimate outcome, not an error.
		}
	}

	outcome.NextStartIndex = start + s.params.BatchSize
	outcome.BatchesCompleted++
	summary.NextStartIndex = outcome.NextStartIndex
	return summary
}
