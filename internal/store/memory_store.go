package store

import (
	"sync"

	"yatra/internal/domain"
)

// MemoryStore keeps credentials in process memory only.
type MemoryStore struct {
	mu    sync.Mutex
	slots map[domain.CredentialSlot]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[domain.CredentialSlot]string)}
}

// Get returns the value in slot.
func (s *MemoryStore) Get(slot domain.CredentialSlot) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.slots[slot]
	return v, ok && v != "", nil
}

// Set stores value in slot. An empty value removes the slot.
func (s *MemoryStore) Set(slot domain.CredentialSlot, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if value == "" {
		delete(s.slots, slot)
		return nil
	}
	s.slots[slot] = value
	return nil
}

// Clear forgets every slot.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots = make(map[domain.CredentialSlot]string)
	return nil
}

var _ domain.CredentialStore = (*MemoryStore)(nil)
