package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/flowtop/flowtop/internal/fileflows"
)

// Snapshot represents the latest server data available to the UI.
type Snapshot struct {
	Data                *fileflows.Snapshot
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive poll failures
}

// HasData reports whether at least one poll cycle has succeeded.
func (s Snapshot) HasData() bool {
	return s.Data != nil
}

// IsOffline returns true when the server has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored snapshot wholesale. When err is non-nil the
// previous data is kept but the error is recorded for visibility.
func (s *Store) Update(data *fileflows.Snapshot, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Data = data
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot. The Data pointer is shared
// with the store, but updates never mutate a published snapshot in place, so
// readers see a consistent poll cycle.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
