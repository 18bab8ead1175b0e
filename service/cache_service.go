package services

import (
	"errors"

	"ft-server/cache"
	"ft-server/logging"
)

// CacheService groups the stores that clear-cache and health report on.
type CacheService struct {
	stores []cache.Store
}

func NewCacheService(stores ...cache.Store) *CacheService {
	return &CacheService{stores: stores}
}

// ClearAll empties every store, attempting all of them even if one fails.
func (cs *CacheService) ClearAll() error {
	var errs []error
	for _, s := range cs.stores {
		if err := s.Clear(); err != nil {
			errs = append(errs, err)
			continue
		}
		logging.Info().Str("component", "CacheService").Str("cache", s.Name()).Msg("cache cleared")
	}
	return errors.Join(errs...)
}

// Sizes reports entry counts per store name. Stores that fail report -1.
func (cs *CacheService) Sizes() map[string]int {
	out := make(map[string]int, len(cs.stores))
	for _, s := range cs.stores {
		n, err := s.Len()
		if err != nil {
			n = -1
		}
		out[s.Name()] = n
	}
	return out
}
