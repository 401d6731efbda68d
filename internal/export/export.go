package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"filmdex/internal/enrich"
)

// listSeparator joins multi-valued fields inside a single CSV cell.
const listSeparator = "|"

// WriteCSV writes one row per enriched record with a header row.
func WriteCSV(w io.Writer, records []enrich.EnrichedRecord) error {
	writer := csv.NewWriter(w)
	header := []string{"movie_id", "title", "year", "candidate_id", "kind", "rating", "genres", "directors", "cast"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, record := range records {
		rating := ""
		if record.Details.Rating != nil {
			rating = strconv.FormatFloat(*record.Details.Rating, 'f', 1, 64)
		}
		row := []string{
			strconv.FormatInt(record.MovieID, 10),
			record.Title,
			strconv.Itoa(record.Year),
			record.CandidateID,
			record.Details.Kind,
			rating,
			strings.Join(record.Details.Genres, listSeparator),
			strings.Join(record.Details.Directors, listSeparator),
			strings.Join(record.Details.Cast, listSeparator),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write row for movie %d: %w", record.MovieID, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

type jsonRecord struct {
	MovieID     int64    `json:"movie_id"`
	Title       string   `json:"title"`
	Year        int      `json:"year"`
	CandidateID string   `json:"candidate_id"`
	Kind        string   `json:"kind"`
	Rating      *float64 `json:"rating,omitempty"`
	Genres      []string `json:"genres"`
	Directors   []string `json:"directors"`
	Cast        []string `json:"cast"`
}

// WriteJSON writes the records as an indented JSON array.
func WriteJSON(w io.Writer, records []enrich.EnrichedRecord) error {
	out := make([]jsonRecord, 0, len(records))
	for _, record := range records {
		out = append(out, jsonRecord{
			MovieID:     record.MovieID,
			Title:       record.Title,
			Year:        record.Year,
			CandidateID: record.CandidateID,
			Kind:        record.Details.Kind,
			Rating:      record.Details.Rating,
			Genres:      emptyIfNil(record.Details.Genres),
			Directors:   emptyIfNil(record.Details.Directors),
			Cast:        emptyIfNil(record.Details.Cast),
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	return nil
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
