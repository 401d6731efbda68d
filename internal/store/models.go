package store

import "time"

// RunStatus is the lifecycle of a persisted run.
type RunStatus string

const (
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunCapped    RunStatus = "capped"
)

// Run is one enrichment run over a catalog. A capped run keeps status
// RunCapped and is picked up again by FindResumable on the next invocation.
type Run struct {
	ID               string
	CatalogPath      string
	CatalogSize      int
	BatchSize        int
	NextStartIndex   int
	BatchesCompleted int
	MatchesFound     int
	LookupErrors     int
	Status           RunStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
