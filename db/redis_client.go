package db

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get and LPop when the key holds nothing.
var ErrKeyNotFound = errors.New("key not found")

// RedisClient is the subset of Redis the cache and POI index rely on.
type RedisClient interface {
	Set(key, value string) error
	Get(key string) (string, error)
	Del(keys ...string) error
	Keys(pattern string) ([]string, error)
	Exists(key string) (bool, error)

	RPush(key, value string) error
	LPop(key string) (string, error)
	LLen(key string) (int64, error)

	AddLocationWithJSON(ctx context.Context, geoKey, memberKey string, lat, lon float64, data interface{}) error
	// GetLocationsWithinRadius returns the JSON stored for members within
	// radius kilometers, nearest first.
	GetLocationsWithinRadius(key string, lat, lon, radius float64) ([]string, error)

	GetContext() context.Context
	Ping() error
}
