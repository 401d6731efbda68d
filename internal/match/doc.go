// Package match selects the single best lookup candidate for a catalog
// record.
//
// The policy is strict equality: a candidate matches only when its title and
// year both equal the record's, and the first such candidate in search order
// wins (the service ranks by relevance, so no secondary ranking is applied).
// A nil result is the legitimate no-match outcome, not an error.
package match
