package db

import (
	"context"
	"errors"
	"fmt"

	"ft-server/logging"

	"github.com/go-redis/redis/v8"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// GeoRedisClient implements RedisClient over a go-redis connection.
type GeoRedisClient struct {
	client *redis.Client
	ctx    context.Context
	log    zerolog.Logger
}

// NewGeoRedisClient checks the connection before returning the client.
func NewGeoRedisClient(ctx context.Context, client *redis.Client) (*GeoRedisClient, error) {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("could not connect to redis at %s: %w", client.Options().Addr, err)
	}
	r := &GeoRedisClient{
		client: client,
		ctx:    ctx,
		log:    logging.WithComponent("GeoRedisClient"),
	}
	r.log.Info().Str("addr", client.Options().Addr).Msg("connected to redis")
	return r, nil
}

func notFound(err error) error {
	if errors.Is(err, redis.Nil) {
		return ErrKeyNotFound
	}
	return err
}

func (r *GeoRedisClient) Set(key, value string) error {
	return r.client.Set(r.ctx, key, value, 0).Err()
}

func (r *GeoRedisClient) Get(key string) (string, error) {
	v, err := r.client.Get(r.ctx, key).Result()
	return v, notFound(err)
}

func (r *GeoRedisClient) Del(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(r.ctx, keys...).Err()
}

// Keys uses SCAN rather than KEYS to avoid blocking the server.
func (r *GeoRedisClient) Keys(pattern string) ([]string, error) {
	var keys []string
	iter := r.client.Scan(r.ctx, 0, pattern, 500).Iterator()
	for iter.Next(r.ctx) {
		keys = append(keys, iter.Val())
	}
	return keys, iter.Err()
}

func (r *GeoRedisClient) Exists(key string) (bool, error) {
	n, err := r.client.Exists(r.ctx, key).Result()
	return n > 0, err
}

func (r *GeoRedisClient) RPush(key, value string) error {
	return r.client.RPush(r.ctx, key, value).Err()
}

func (r *GeoRedisClient) LPop(key string) (string, error) {
	v, err := r.client.LPop(r.ctx, key).Result()
	return v, notFound(err)
}

func (r *GeoRedisClient) LLen(key string) (int64, error) {
	return r.client.LLen(r.ctx, key).Result()
}

// AddLocationWithJSON stores the member position with GEOADD and its JSON under memberKey.
func (r *GeoRedisClient) AddLocationWithJSON(ctx context.Context, geoKey, memberKey string, lat, lon float64, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if err := r.client.GeoAdd(ctx, geoKey, &redis.GeoLocation{
		Name:      memberKey,
		Latitude:  lat,
		Longitude: lon,
	}).Err(); err != nil {
		return fmt.Errorf("failed to add geolocation: %w", err)
	}

	if err := r.client.Set(ctx, memberKey, jsonData, 0).Err(); err != nil {
		return fmt.Errorf("failed to set JSON data: %w", err)
	}

	r.log.Debug().Str("member", memberKey).Msg("added geolocation")
	return nil
}

func (r *GeoRedisClient) GetLocationsWithinRadius(key string, lat, lon, radius float64) ([]string, error) {
	results, err := r.client.GeoRadius(r.ctx, key, lon, lat, &redis.GeoRadiusQuery{
		Radius: radius,
		Unit:   "km",
		Sort:   "ASC",
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get nearby locations: %w", err)
	}

	objects := make([]string, 0, len(results))
	for _, loc := range results {
		data, err := r.client.Get(r.ctx, loc.Name).Result()
		if err != nil {
			r.log.Warn().Err(err).Str("member", loc.Name).Msg("skipping member without JSON")
			continue
		}
		objects = append(objects, data)
	}
	return objects, nil
}

func (r *GeoRedisClient) GetContext() context.Context {
	return r.ctx
}

func (r *GeoRedisClient) Ping() error {
	return r.client.Ping(r.ctx).Err()
}
