package lookup

// Candidate is a single search result for a title query. Candidates are
// transient: the enrichment worker that fetched them discards them once a
// match is resolved.
type Candidate struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Year  int    `json:"year"`
}

// searchResponse models the paginated search payload.
type searchResponse struct {
	Results      []Candidate `json:"results"`
	TotalResults int         `json:"total_results"`
}

// Details is the full metadata for one external id. Every field beyond Kind
// is optional in the service payload; absent fields decode to their zero
// value rather than failing.
type Details struct {
	Kind      string   `json:"kind"`
	Genres    []string `json:"genres"`
	Directors []string `json:"directors"`
	Rating    *float64 `json:"rating"`
	Cast      []string `json:"cast"`
}
