package lookup_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"filmdex/internal/lookup"
)

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := lookup.New("", "https://example.com", "en-US"); err == nil {
		t.Fatal("expected error when api key missing")
	}
}

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := lookup.New("key", "", "en-US"); err == nil {
		t.Fatal("expected error when base url missing")
	}
}

func TestSearchByTitleSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/title" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.URL.Query().Get("api_key") != "key" {
			t.Fatalf("expected api_key query parameter, got %q", r.URL.RawQuery)
		}
		if r.URL.Query().Get("query") != "Dune" {
			t.Fatalf("expected query Dune, got %q", r.URL.Query().Get("query"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"id":"dune2021","title":"Dune","year":2021},{"id":"dune1984","title":"Dune","year":1984}],"total_results":2}`))
	}))
	t.Cleanup(server.Close)

	client, err := lookup.New("key", server.URL, "en-US")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	candidates, err := client.SearchByTitle(context.Background(), "Dune")
	if err != nil {
		t.Fatalf("SearchByTitle returned error: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}
	if candidates[0].ID != "dune2021" || candidates[0].Year != 2021 {
		t.Fatalf("unexpected first candidate: %+v", candidates[0])
	}
}

func TestSearchByTitleHTTPErrorIsLookupError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	client, err := lookup.New("key", server.URL, "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	_, err = client.SearchByTitle(context.Background(), "fail")
	if err == nil {
		t.Fatal("expected error when service returns non-200")
	}
	var lookupErr *lookup.Error
	if !errors.As(err, &lookupErr) {
		t.Fatalf("expected *lookup.Error, got %T", err)
	}
	if lookupErr.Op != "search" || lookupErr.Key != "fail" {
		t.Fatalf("unexpected error fields: %+v", lookupErr)
	}
}

func TestSearchByTitleEmptyQuery(t *testing.T) {
	client, err := lookup.New("key", "https://example.com", "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.SearchByTitle(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty title")
	}
}

func TestFetchDetailsDefaultsOptionalFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/title/tt123" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"kind":"movie"}`))
	}))
	t.Cleanup(server.Close)

	client, err := lookup.New("key", server.URL, "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	details, err := client.FetchDetails(context.Background(), "tt123")
	if err != nil {
		t.Fatalf("FetchDetails returned error: %v", err)
	}
	if details.Kind != "movie" {
		t.Fatalf("expected kind movie, got %q", details.Kind)
	}
	if details.Rating != nil {
		t.Fatalf("expected absent rating, got %v", *details.Rating)
	}
	if len(details.Genres) != 0 || len(details.Directors) != 0 || len(details.Cast) != 0 {
		t.Fatalf("expected empty optional lists, got %+v", details)
	}
}

func TestFetchDetailsMalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"kind":`))
	}))
	t.Cleanup(server.Close)

	client, err := lookup.New("key", server.URL, "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.FetchDetails(context.Background(), "tt9"); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}
