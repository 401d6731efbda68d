package catalog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// ParseFile reads a movie_titles.csv style file from disk.
func ParseFile(path string) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer file.Close()

	cat, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return cat, nil
}

// Parse decodes Latin-1 catalog lines from the reader. Each line is split on
// the first two commas only, so titles may contain commas. Missing fields are
// padded with empty strings before conversion; a year that is not all digits
// becomes YearUnknown.
func Parse(r io.Reader) (*Catalog, error) {
	decoded := transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	scanner := bufio.NewScanner(decoded)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var records []Record
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		record, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return NewCatalog(records), nil
}

func parseLine(line string) (Record, error) {
	parts := strings.SplitN(line, ",", 3)
	for len(parts) < 3 {
		parts = append(parts, "")
	}

	id, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("movie id %q: %w", parts[0], err)
	}

	year := YearUnknown
	if field := strings.TrimSpace(parts[1]); isDigits(field) {
		year, _ = strconv.Atoi(field)
	}

	return Record{ID: id, Title: parts[2], Year: year}, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
