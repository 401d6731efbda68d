package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Service defines the lookup operations consumed by enrichment.
type Service interface {
	SearchByTitle(ctx context.Context, title string) ([]Candidate, error)
	FetchDetails(ctx context.Context, id string) (*Details, error)
}

// Client provides access to the metadata service over HTTP.
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *http.Client
}

var _ Service = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a lookup client.
func New(apiKey, baseURL, language string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("lookup api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("lookup base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   strings.TrimSpace(language),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// SearchByTitle queries the service for candidates matching the title. The
// result order is the service's relevance ranking and is preserved.
func (c *Client) SearchByTitle(ctx context.Context, title string) ([]Candidate, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, newError("search", title, errors.New("title must not be empty"))
	}
	endpoint, err := url.Parse(c.baseURL + "/search/title")
	if err != nil {
		return nil, newError("search", title, fmt.Errorf("parse service url: %w", err))
	}
	params := url.Values{}
	params.Set("query", title)
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	endpoint.RawQuery = params.Encode()

	var payload searchResponse
	if err := c.getJSON(ctx, endpoint.String(), &payload); err != nil {
		return nil, newError("search", title, err)
	}
	return payload.Results, nil
}

// FetchDetails retrieves full metadata for one external id.
func (c *Client) FetchDetails(ctx context.Context, id string) (*Details, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, newError("details", id, errors.New("id must not be empty"))
	}
	endpoint, err := url.Parse(c.baseURL + "/title/" + url.PathEscape(id))
	if err != nil {
		return nil, newError("details", id, fmt.Errorf("parse service url: %w", err))
	}
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	endpoint.RawQuery = params.Encode()

	var payload Details
	if err := c.getJSON(ctx, endpoint.String(), &payload); err != nil {
		return nil, newError("details", id, err)
	}
	return &payload, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service returned %d (latency=%v)", resp.StatusCode, latency)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
