package catalog

// YearUnknown marks records whose release year could not be parsed.
const YearUnknown = 0

// Record is a single catalog entry awaiting enrichment.
type Record struct {
	ID    int64
	Title string
	Year  int
}

// Catalog is an ordered, immutable sequence of records.
type Catalog struct {
	records []Record
}

// NewCatalog wraps the supplied records. The slice is not copied; callers
// hand over ownership.
func NewCatalog(records []Record) *Catalog {
	return &Catalog{records: records}
}

// Len reports the number of records in the catalog.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.records)
}

// Slice returns the records in [start, end). Bounds are clamped to the
// catalog length so callers can slice past the tail safely.
func (c *Catalog) Slice(start, end int) []Record {
	if c == nil || start < 0 || start >= len(c.records) {
		return nil
	}
	if end > len(c.records) {
		end = len(c.records)
	}
	if end <= start {
		return nil
	}
	return c.records[start:end]
}

// Records returns the full ordered sequence.
func (c *Catalog) Records() []Record {
	if c == nil {
		return nil
	}
	return c.records
}
