package cache

import (
	"context"
	"sync"

	"github.com/ZaguanLabs/readlai"
)

// MemoryStore keeps the snapshot in process memory.
// Load and Save exchange deep copies, so callers never share a map with the
// store and each translation call still works on its own snapshot.
type MemoryStore struct {
	snap  *Snapshot
	mu    sync.RWMutex
	loads int
	saves int
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snap: readlai.NewSnapshot()}
}

// Load returns a copy of the stored snapshot.
func (s *MemoryStore) Load(ctx context.Context) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads++
	return s.snap.Clone(), nil
}

// Save replaces the stored snapshot with a copy of snap.
func (s *MemoryStore) Save(ctx context.Context, snap *Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	s.snap = snap.Clone()
	return nil
}

// Len returns the number of stored entries.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Len()
}

// Entries returns a copy of all stored entries.
func (s *MemoryStore) Entries() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Clone().Entries
}

// Stats returns how many times Load and Save were called.
func (s *MemoryStore) Stats() (loads, saves int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loads, s.saves
}

// Verify MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)
