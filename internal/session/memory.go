package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore keeps view state in process memory. States are stored
// encoded so callers never share a mutable value.
type MemoryStore struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]memoryEntry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) Load(_ context.Context, visitorID string) (*State, error) {
	s.mu.Lock()
	entry, ok := s.entries[visitorID]
	if ok && !s.now().Before(entry.expiresAt) {
		delete(s.entries, visitorID)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return NewState(), nil
	}
	return decode(entry.data)
}

func (s *MemoryStore) Save(_ context.Context, visitorID string, st *State) error {
	data, err := encode(st)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[visitorID] = memoryEntry{
		data:      data,
		expiresAt: s.now().Add(s.ttl),
	}
	return nil
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

// Sweep drops expired entries and returns how many were removed
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, entry := range s.entries {
		if !now.Before(entry.expiresAt) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored entries, expired ones included
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
