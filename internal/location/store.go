// Package location keeps per-user location preferences in memory.
package location

import (
	"sync"

	"github.com/mysolah/solah-bot/pkg/metrics"
)

// Location identifies a place for prayer-times queries. Values are replaced
// wholesale on update, never mutated field by field.
type Location struct {
	City    string
	Country string
}

// Store maps Telegram user IDs to their last shared location. Entries live
// until the process restarts; losing them on restart is intentional.
type Store struct {
	mu       sync.RWMutex
	byUser   map[int64]Location
	fallback Location
}

// NewStore creates a Store that answers fallback for unknown users.
func NewStore(fallback Location) *Store {
	return &Store{
		byUser:   make(map[int64]Location),
		fallback: fallback,
	}
}

// Save stores the location for the user, overwriting any previous value.
func (s *Store) Save(userID int64, loc Location) {
	s.mu.Lock()
	s.byUser[userID] = loc
	size := len(s.byUser)
	s.mu.Unlock()

	metrics.SetKnownUsers(size)
}

// Get returns the stored location for the user, or the fallback when the
// user never shared one.
func (s *Store) Get(userID int64) Location {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if loc, ok := s.byUser[userID]; ok {
		return loc
	}

	return s.fallback
}

// Has reports whether the user has a stored location.
func (s *Store) Has(userID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.byUser[userID]
	return ok
}
