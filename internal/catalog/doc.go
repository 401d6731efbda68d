// Package catalog parses and holds the input catalog of titled movie records.
//
// The on-disk format is the Netflix Prize movie_titles.csv layout: one record
// per line as "id,year,title", Latin-1 encoded, with titles allowed to contain
// further commas. Years that fail to parse are recorded as 0 (unknown) rather
// than rejected, so a single malformed row never aborts an enrichment run.
//
// The parsed catalog is an ordered, read-only sequence. Batch slicing and all
// enrichment bookkeeping happen downstream in internal/enrich.
package catalog
