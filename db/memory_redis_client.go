package db

import (
	"context"
	"fmt"
	"path"
	"sort"
	"sync"

	"github.com/goccy/go-json"
	"github.com/golang/geo/s2"
)

// EARTH_RADIUS_KM matches the radius Redis uses for GEO commands.
const EARTH_RADIUS_KM = 6372.7975608

// MemoryRedisClient keeps everything in process. It backs tests and the
// memory cache backend.
type MemoryRedisClient struct {
	mu      sync.RWMutex
	data    map[string]string
	lists   map[string][]string
	geoData map[string]map[string]s2.LatLng
	ctx     context.Context
}

func NewMemoryRedisClient(ctx context.Context) *MemoryRedisClient {
	return &MemoryRedisClient{
		data:    make(map[string]string),
		lists:   make(map[string][]string),
		geoData: make(map[string]map[string]s2.LatLng),
		ctx:     ctx,
	}
}

func (m *MemoryRedisClient) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryRedisClient) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.data[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return value, nil
}

func (m *MemoryRedisClient) Del(keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
		delete(m.lists, k)
		delete(m.geoData, k)
	}
	return nil
}

// Keys matches glob patterns the way KEYS does for the common *, ? and [] forms.
func (m *MemoryRedisClient) Keys(pattern string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var keys []string
	for k := range m.keySet() {
		ok, err := path.Match(pattern, k)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		if ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *MemoryRedisClient) keySet() map[string]struct{} {
	set := make(map[string]struct{}, len(m.data)+len(m.lists)+len(m.geoData))
	for k := range m.data {
		set[k] = struct{}{}
	}
	for k := range m.lists {
		set[k] = struct{}{}
	}
	for k := range m.geoData {
		set[k] = struct{}{}
	}
	return set
}

func (m *MemoryRedisClient) Exists(key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.keySet()[key]
	return ok, nil
}

func (m *MemoryRedisClient) RPush(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists[key] = append(m.lists[key], value)
	return nil
}

func (m *MemoryRedisClient) LPop(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.lists[key]
	if len(list) == 0 {
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	head := list[0]
	if len(list) == 1 {
		delete(m.lists, key)
	} else {
		m.lists[key] = list[1:]
	}
	return head, nil
}

func (m *MemoryRedisClient) LLen(key string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.lists[key])), nil
}

func (m *MemoryRedisClient) AddLocationWithJSON(ctx context.Context, geoKey, memberKey string, lat, lon float64, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.geoData[geoKey]; !ok {
		m.geoData[geoKey] = make(map[string]s2.LatLng)
	}
	m.geoData[geoKey][memberKey] = s2.LatLngFromDegrees(lat, lon)
	m.data[memberKey] = string(jsonData)
	return nil
}

// GetLocationsWithinRadius filters members by great-circle distance in kilometers.
func (m *MemoryRedisClient) GetLocationsWithinRadius(key string, lat, lon, radius float64) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	origin := s2.LatLngFromDegrees(lat, lon)
	type hit struct {
		member string
		km     float64
	}
	var hits []hit
	for member, pos := range m.geoData[key] {
		km := origin.Distance(pos).Radians() * EARTH_RADIUS_KM
		if km <= radius {
			hits = append(hits, hit{member, km})
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].km == hits[j].km {
			return hits[i].member < hits[j].member
		}
		return hits[i].km < hits[j].km
	})

	results := make([]string, 0, len(hits))
	for _, h := range hits {
		if data, ok := m.data[h.member]; ok {
			results = append(results, data)
		}
	}
	return results, nil
}

func (m *MemoryRedisClient) GetContext() context.Context {
	return m.ctx
}

func (m *MemoryRedisClient) Ping() error {
	return nil
}
