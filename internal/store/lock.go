package store

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

// AcquireLock takes the data-directory lock that keeps two runs from
// advancing the same run cursor. Callers must Unlock when the run finishes.
func AcquireLock(dataDir string) (*flock.Flock, error) {
	lock := flock.New(filepath.Join(dataDir, "filmdex.lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, errors.New("another filmdex run is already using this data directory")
	}
	return lock, nil
}
