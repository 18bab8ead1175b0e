package services

import (
	"context"
	"fmt"
	"time"

	"ft-server/cache"
	"ft-server/field"
	"ft-server/hexagg"
	"ft-server/logging"
	"ft-server/metrics"
	"ft-server/models"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

const DENSITY_CACHE_KEY_FORMAT = "density-%d-%d-%d-%s"

// CacheMinute floors minute to its 5-minute bucket.
func CacheMinute(minute int) int {
	return minute / field.JitterBucketMinutes * field.JitterBucketMinutes
}

// DensityCacheKey keys a frame by day, hour, bucket and resolved tier name.
func DensityCacheKey(day, hour, bucket int, tier string) string {
	return fmt.Sprintf(DENSITY_CACHE_KEY_FORMAT, day, hour, bucket, tier)
}

// DensityService serves density fields, one generation per 5-minute bucket and tier.
type DensityService struct {
	generator  *field.Generator
	aggregator *hexagg.Aggregator
	store      cache.Store
	inflight   singleflight.Group
	log        zerolog.Logger
}

func NewDensityService(generator *field.Generator, aggregator *hexagg.Aggregator, store cache.Store) *DensityService {
	return &DensityService{
		generator:  generator,
		aggregator: aggregator,
		store:      store,
		log:        logging.WithComponent("DensityService"),
	}
}

// Density returns the field for q. The field is generated at the start of
// the minute bucket; the reply carries the requested minute and the bucket
// it was served from.
func (s *DensityService) Density(ctx context.Context, q models.DensityQuery) (*models.DensityField, error) {
	_, tier := field.TierStep(q.Resolution)
	bucket := CacheMinute(q.Minute)
	key := DensityCacheKey(q.Day, q.Hour, bucket, tier)

	cached, ok, err := cache.GetJSON[models.DensityField](s.store, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache read failed, regenerating")
	}
	if !ok {
		cached, err = shared(ctx, &s.inflight, key, func(ctx context.Context) (*models.DensityField, error) {
			return s.generate(ctx, key, models.DensityQuery{Hour: q.Hour, Day: q.Day, Minute: bucket, Resolution: tier})
		})
		if err != nil {
			return nil, err
		}
	}

	out := *cached
	out.Metadata.Minute = q.Minute
	out.Metadata.ActualCacheMinute = &bucket
	return &out, nil
}

func (s *DensityService) generate(ctx context.Context, key string, q models.DensityQuery) (*models.DensityField, error) {
	start := time.Now()
	f, err := s.generator.Generate(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("generating density field %s: %w", key, err)
	}
	elapsed := time.Since(start)
	metrics.RecordGeneration("density", elapsed, len(f.Points))
	s.log.Info().
		Str("key", key).
		Int("points", f.Metadata.TotalPoints).
		Dur("elapsed", elapsed).
		Msg("density field generated")

	if err := cache.SetJSON(s.store, key, f); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
	return f, nil
}

// DensityHexagons aggregates the field for q into cells at res, weighting
// each sample by its density.
func (s *DensityService) DensityHexagons(ctx context.Context, q models.DensityQuery, res int) ([]models.Hexagon, *models.DensityMetadata, error) {
	f, err := s.Density(ctx, q)
	if err != nil {
		return nil, nil, err
	}
	hexagons, err := s.aggregator.Aggregate(hexagg.FromSamples(f.Points), res)
	if err != nil {
		return nil, nil, fmt.Errorf("aggregating density field: %w", err)
	}
	return hexagons, &f.Metadata, nil
}

// Aggregate buckets arbitrary points at res.
func (s *DensityService) Aggregate(points []models.WeightedPoint, res int) ([]models.Hexagon, error) {
	return s.aggregator.Aggregate(points, res)
}

// Index exposes the spatial index used for aggregation.
func (s *DensityService) Index() hexagg.Index {
	return s.aggregator.Index()
}
