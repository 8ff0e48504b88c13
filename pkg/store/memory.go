package store

import "sync"

// Memory is a minimal in-memory Store implementation intended for tests and
// examples. It makes no persistence assumptions.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]any
}

// NewMemory constructs an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{entries: map[string]any{}}
}

func (s *Memory) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.entries[key]
	return value, ok
}

func (s *Memory) GetAll() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneEntries(s.entries)
}

func (s *Memory) SetAll(entries map[string]any) {
	next := cloneEntries(entries)
	s.mu.Lock()
	s.entries = next
	s.mu.Unlock()
}

func (s *Memory) Clear() {
	s.mu.Lock()
	s.entries = map[string]any{}
	s.mu.Unlock()
}
