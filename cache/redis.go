package cache

import (
	"errors"
	"fmt"

	"ft-server/db"
	"ft-server/metrics"
)

const CACHE_VALUE_KEY_FORMAT_V1 = "ft_cache_v1:%s:%s"
const CACHE_ORDER_KEY_FORMAT_V1 = "ft_cache_order_v1:%s"

// RedisStore keeps entries in Redis so several server instances share them.
// Values live under CACHE_VALUE_KEY_FORMAT_V1 and insertion order in a list.
// Eviction is not atomic across writers; a racing writer may briefly push
// the store over capacity.
type RedisStore struct {
	name     string
	capacity int
	client   db.RedisClient
}

func NewRedisStore(name string, capacity int, client db.RedisClient) *RedisStore {
	if capacity <= 0 {
		capacity = DEFAULT_CAPACITY
	}
	return &RedisStore{name: name, capacity: capacity, client: client}
}

func (s *RedisStore) Name() string { return s.name }

func (s *RedisStore) valueKey(key string) string {
	return fmt.Sprintf(CACHE_VALUE_KEY_FORMAT_V1, s.name, key)
}

func (s *RedisStore) orderKey() string {
	return fmt.Sprintf(CACHE_ORDER_KEY_FORMAT_V1, s.name)
}

func (s *RedisStore) Get(key string) ([]byte, bool, error) {
	v, err := s.client.Get(s.valueKey(key))
	if errors.Is(err, db.ErrKeyNotFound) {
		metrics.RecordCacheLookup(s.name, false)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading %s entry %q: %w", s.name, key, err)
	}
	metrics.RecordCacheLookup(s.name, true)
	return []byte(v), true, nil
}

func (s *RedisStore) Set(key string, value []byte) error {
	vk := s.valueKey(key)
	existed, err := s.client.Exists(vk)
	if err != nil {
		return fmt.Errorf("checking %s entry %q: %w", s.name, key, err)
	}
	if err := s.client.Set(vk, string(value)); err != nil {
		return fmt.Errorf("writing %s entry %q: %w", s.name, key, err)
	}
	if existed {
		return nil
	}
	if err := s.client.RPush(s.orderKey(), key); err != nil {
		return fmt.Errorf("recording %s order: %w", s.name, err)
	}
	return s.evict()
}

func (s *RedisStore) evict() error {
	n, err := s.client.LLen(s.orderKey())
	if err != nil {
		return err
	}
	for ; n > int64(s.capacity); n-- {
		oldest, err := s.client.LPop(s.orderKey())
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("evicting from %s: %w", s.name, err)
		}
		if err := s.client.Del(s.valueKey(oldest)); err != nil {
			return fmt.Errorf("evicting %s entry %q: %w", s.name, oldest, err)
		}
		metrics.RecordCacheEviction(s.name)
	}
	return nil
}

func (s *RedisStore) Clear() error {
	keys, err := s.client.Keys(fmt.Sprintf(CACHE_VALUE_KEY_FORMAT_V1, s.name, "*"))
	if err != nil {
		return fmt.Errorf("listing %s entries: %w", s.name, err)
	}
	return s.client.Del(append(keys, s.orderKey())...)
}

func (s *RedisStore) Len() (int, error) {
	n, err := s.client.LLen(s.orderKey())
	return int(n), err
}
