// Package memory provides an in-memory SaveStore, useful for tests and
// ephemeral play sessions.
package memory

import (
	"context"
	"sync"

	"github.com/aretw0/nous/pkg/domain"
)

// Store implements ports.SaveStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string][]byte
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string][]byte),
	}
}

// Save persists the payload in memory.
func (s *Store) Save(ctx context.Context, slot string, data []byte) error {
	// Copy so the caller's buffer can't mutate stored bytes.
	copied := append([]byte(nil), data...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[slot] = copied
	return nil
}

// Load retrieves the payload from memory.
func (s *Store) Load(ctx context.Context, slot string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.data[slot]
	if !ok {
		return nil, domain.ErrSlotNotFound
	}

	return append([]byte(nil), data...), nil
}

// Delete removes the slot.
func (s *Store) Delete(ctx context.Context, slot string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, slot)
	return nil
}

// List returns existing slot names.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	slots := make([]string, 0, len(s.data))
	for slot := range s.data {
		slots = append(slots, slot)
	}
	return slots, nil
}
