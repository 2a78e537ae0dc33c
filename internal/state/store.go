package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/lotwatch/internal/parking"
)

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Cubicles            []parking.Cubicle
	Search              string // term that produced Cubicles
	HasData             bool
	Seq                 uint64 // sequence of the last applied fetch
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive poll failures
}

// IsOffline returns true when the API has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Counts tallies cubicles by state.
func (s Snapshot) Counts() map[parking.State]int {
	counts := make(map[parking.State]int, 3)
	for _, c := range s.Cubicles {
		counts[c.State]++
	}
	return counts
}

// Store coordinates concurrent updates to the snapshot. Fetches are tagged
// with a sequence number from Begin so that a slow response can never
// overwrite a newer one.
type Store struct {
	mu       sync.RWMutex
	issued   uint64
	snapshot Snapshot
}

// Begin reserves the sequence number for a fetch about to start.
func (s *Store) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// Update applies the result of fetch seq. Results older than the last applied
// one are dropped and Update reports false. When err is non-nil the previous
// data is kept but the error is recorded for visibility.
func (s *Store) Update(seq uint64, search string, cubicles []parking.Cubicle, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq <= s.snapshot.Seq {
		return false
	}
	s.snapshot.Seq = seq

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return true
	}

	s.snapshot.Cubicles = cloneCubicles(cubicles)
	s.snapshot.Search = search
	s.snapshot.HasData = true
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
	return true
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Cubicles = cloneCubicles(s.snapshot.Cubicles)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneCubicles(items []parking.Cubicle) []parking.Cubicle {
	if len(items) == 0 {
		return nil
	}
	dup := make([]parking.Cubicle, len(items))
	copy(dup, items)
	return dup
}
