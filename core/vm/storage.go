package vm

import "sync"

// Storage is the persistent key-value state consulted by storage opcodes.
// This interpreter does not execute SLOAD or SSTORE; embedders that add them
// supply an implementation.
type Storage interface {
	Load(key Word) Word
	Store(key, value Word)
}

// MemoryStorage is an in-memory Storage. Unset keys read as zero. It is safe
// for concurrent use.
type MemoryStorage struct {
	mu    sync.RWMutex
	slots map[Word]Word
}

// NewMemoryStorage returns an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{slots: make(map[Word]Word)}
}

// Load returns the value stored under key.
func (s *MemoryStorage) Load(key Word) Word {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.slots[key]
}

// Store sets key to value. Storing zero deletes the slot.
func (s *MemoryStorage) Store(key, value Word) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if value.IsZero() {
		delete(s.slots, key)
		return
	}
	s.slots[key] = value
}

// Len returns the number of non-zero slots.
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.slots)
}
