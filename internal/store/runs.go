package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"filmdex/internal/enrich"
	"filmdex/internal/lookup"
)

// CreateRun inserts a new run for the catalog and returns it.
func (s *Store) CreateRun(ctx context.Context, catalogPath string, catalogSize, batchSize int) (*Run, error) {
	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)
	id := uuid.NewString()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (
            id, catalog_path, catalog_size, batch_size,
            next_start_index, batches_completed, matches_found, lookup_errors,
            status, created_at, updated_at
        ) VALUES (?, ?, ?, ?, 0, 0, 0, 0, ?, ?, ?)`,
		id, catalogPath, catalogSize, batchSize, RunRunning, timestamp, timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return s.GetRun(ctx, id)
}

// FindResumable returns the most recent non-completed run for the catalog
// with a matching batch size, or ErrNotFound. Batch size must match because
// the resumption cursor only lands on batch boundaries of the size that
// produced it.
func (s *Store) FindResumable(ctx context.Context, catalogPath string, batchSize int) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+runColumns+` FROM runs
         WHERE catalog_path = ? AND batch_size = ? AND status IN (?, ?)
         ORDER BY created_at DESC LIMIT 1`,
		catalogPath, batchSize, RunRunning, RunCapped,
	)
	return scanRun(row)
}

// GetRun fetches a run by id.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	return scanRun(row)
}

// ListRuns returns all runs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRunRow(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// SaveBatch persists one batch's results and the advanced cursor in a single
// transaction.
func (s *Store) SaveBatch(ctx context.Context, runID string, summary enrich.BatchSummary) error {
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, record := range summary.Results {
		genres, directors, cast, err := marshalDetailLists(record.Details)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO results (
                run_id, movie_id, title, year, candidate_id,
                kind, rating, genres_json, directors_json, cast_json, created_at
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, record.MovieID, record.Title, record.Year, record.CandidateID,
			record.Details.Kind, nullableFloat(record.Details.Rating),
			genres, directors, cast, timestamp,
		); err != nil {
			return fmt.Errorf("insert result for movie %d: %w", record.MovieID, err)
		}
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE runs SET
            next_start_index = ?,
            batches_completed = batches_completed + 1,
            matches_found = matches_found + ?,
            lookup_errors = lookup_errors + ?,
            updated_at = ?
         WHERE id = ?`,
		summary.NextStartIndex, len(summary.Results), summary.LookupErrors, timestamp, runID,
	)
	if err != nil {
		return fmt.Errorf("update run cursor: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

// FinishRun records the terminal state of a run.
func (s *Store) FinishRun(ctx context.Context, runID string, state enrich.State) error {
	var status RunStatus
	switch state {
	case enrich.StateCompleted:
		status = RunCompleted
	case enrich.StateCapped:
		status = RunCapped
	default:
		return fmt.Errorf("state %q is not terminal", state)
	}

	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, updated_at = ? WHERE id = ?`,
		status, timestamp, runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ResultsForRun returns the run's enriched records in insertion order.
func (s *Store) ResultsForRun(ctx context.Context, runID string) ([]enrich.EnrichedRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT movie_id, title, year, candidate_id, kind, rating,
                genres_json, directors_json, cast_json
         FROM results WHERE run_id = ? ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var records []enrich.EnrichedRecord
	for rows.Next() {
		var (
			record  enrich.EnrichedRecord
			rating  sql.NullFloat64
			genres  string
			dirs    string
			cast    string
			details lookup.Details
		)
		if err := rows.Scan(
			&record.MovieID, &record.Title, &record.Year, &record.CandidateID,
			&details.Kind, &rating, &genres, &dirs, &cast,
		); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		if rating.Valid {
			v := rating.Float64
			details.Rating = &v
		}
		if err := unmarshalDetailLists(genres, dirs, cast, &details); err != nil {
			return nil, err
		}
		record.Details = details
		records = append(records, record)
	}
	return records, rows.Err()
}

const runColumns = `id, catalog_path, catalog_size, batch_size,
    next_start_index, batches_completed, matches_found, lookup_errors,
    status, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row *sql.Row) (*Run, error) {
	run, err := scanRunRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return run, nil
}

func scanRunRow(scanner rowScanner) (*Run, error) {
	var (
		run       Run
		createdAt string
		updatedAt string
	)
	if err := scanner.Scan(
		&run.ID, &run.CatalogPath, &run.CatalogSize, &run.BatchSize,
		&run.NextStartIndex, &run.BatchesCompleted, &run.MatchesFound, &run.LookupErrors,
		&run.Status, &createdAt, &updatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan run: %w", err)
	}
	run.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	run.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	return &run, nil
}

func marshalDetailLists(details lookup.Details) (string, string, string, error) {
	genres, err := marshalStringList(details.Genres)
	if err != nil {
		return "", "", "", fmt.Errorf("marshal genres: %w", err)
	}
	directors, err := marshalStringList(details.Directors)
	if err != nil {
		return "", "", "", fmt.Errorf("marshal directors: %w", err)
	}
	cast, err := marshalStringList(details.Cast)
	if err != nil {
		return "", "", "", fmt.Errorf("marshal cast: %w", err)
	}
	return genres, directors, cast, nil
}

func unmarshalDetailLists(genres, directors, cast string, details *lookup.Details) error {
	if err := json.Unmarshal([]byte(genres), &details.Genres); err != nil {
		return fmt.Errorf("unmarshal genres: %w", err)
	}
	if err := json.Unmarshal([]byte(directors), &details.Directors); err != nil {
		return fmt.Errorf("unmarshal directors: %w", err)
	}
	if err := json.Unmarshal([]byte(cast), &details.Cast); err != nil {
		return fmt.Errorf("unmarshal cast: %w", err)
	}
	return nil
}

func marshalStringList(values []string) (string, error) {
	if len(values) == 0 {
		return "[]", nil
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func nullableFloat(value *float64) any {
	if value == nil {
		return nil
	}
	return *value
}
