package enrich

// ProgressFunc receives one observation per successful enrichment:
// (matchesFoundSoFar, totalRecordsInCatalog). The scheduler never renders
// progress itself; callers decide whether and how to display it.
type ProgressFunc func(found, total int)
