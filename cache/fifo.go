package cache

import (
	"sync"

	"ft-server/metrics"
)

// FIFOStore is an in-process Store.
type FIFOStore struct {
	name     string
	capacity int

	mu      sync.Mutex
	entries map[string][]byte
	order   []string
}

// NewFIFOStore builds a store; capacity <= 0 uses DEFAULT_CAPACITY.
func NewFIFOStore(name string, capacity int) *FIFOStore {
	if capacity <= 0 {
		capacity = DEFAULT_CAPACITY
	}
	return &FIFOStore{
		name:     name,
		capacity: capacity,
		entries:  make(map[string][]byte),
	}
}

func (s *FIFOStore) Name() string { return s.name }

func (s *FIFOStore) Get(key string) ([]byte, bool, error) {
	s.mu.Lock()
	v, ok := s.entries[key]
	s.mu.Unlock()
	metrics.RecordCacheLookup(s.name, ok)
	return v, ok, nil
}

func (s *FIFOStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; ok {
		s.entries[key] = value
		return nil
	}
	for len(s.order) >= s.capacity {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.entries, oldest)
		metrics.RecordCacheEviction(s.name)
	}
	s.entries[key] = value
	s.order = append(s.order, key)
	return nil
}

func (s *FIFOStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string][]byte)
	s.order = nil
	return nil
}

func (s *FIFOStore) Len() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries), nil
}

// Keys returns the cached keys, oldest first.
func (s *FIFOStore) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.order...)
}
