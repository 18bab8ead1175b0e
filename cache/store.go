// Package cache holds bounded, insertion-ordered caches for generated payloads.
package cache

import (
	"fmt"

	"github.com/goccy/go-json"
)

const DEFAULT_CAPACITY = 500

// Store is a bounded key/value cache. When full, the oldest inserted key is
// evicted first. Setting an existing key replaces its value but keeps its age.
type Store interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Clear() error
	Len() (int, error)
	Name() string
}

// GetJSON decodes a cached value into a new T.
func GetJSON[T any](s Store, key string) (*T, bool, error) {
	raw, ok, err := s.Get(key)
	if err != nil || !ok {
		return nil, false, err
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, false, fmt.Errorf("decoding %s entry %q: %w", s.Name(), key, err)
	}
	return &v, true, nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s entry %q: %w", s.Name(), key, err)
	}
	return s.Set(key, raw)
}
