package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"filmdex/internal/logging"
)

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestConsoleOutputFoldsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.WithComponent(logger, "scheduler").Info("batch complete",
		logging.Int("batch", 4),
		logging.Int("matched", 17),
	)

	line := strings.TrimSpace(buf.String())
	if !strings.Contains(line, " INFO scheduler: batch complete") {
		t.Fatalf("unexpected console line: %q", line)
	}
	if !strings.HasSuffix(line, "batch=4 matched=17") {
		t.Fatalf("expected trailing key=value pairs, got %q", line)
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component should not repeat as key=value: %q", line)
	}
}

func TestConsoleQuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("lookup failed", logging.String("title", "The Matrix"))
	if !strings.Contains(buf.String(), `title="The Matrix"`) {
		t.Fatalf("expected quoted value, got %q", buf.String())
	}
}

func TestConsoleHonorsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "warn", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("suppressed")
	logger.Warn("kept")
	if strings.Contains(buf.String(), "suppressed") {
		t.Fatalf("info record should be filtered at warn level: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "kept") {
		t.Fatalf("warn record missing: %q", buf.String())
	}
}

func TestJSONOutputUsesTSAndLowercaseLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "debug", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Debug("starting run", logging.String("run_id", "abc"))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("parse json record: %v", err)
	}
	if _, ok := record["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", record)
	}
	if record["level"] != "debug" {
		t.Fatalf("expected lowercase level, got %v", record["level"])
	}
	if record["run_id"] != "abc" {
		t.Fatalf("attr missing: %v", record)
	}
}
