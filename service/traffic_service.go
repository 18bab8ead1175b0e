package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ft-server/cache"
	"ft-server/catalog"
	"ft-server/field"
	"ft-server/hexagg"
	"ft-server/logging"
	"ft-server/metrics"
	"ft-server/models"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

const (
	LEGACY_RESOLUTION = 9
	LEGACY_RING_COUNT = 20
	HOURS_PER_DAY     = 24
)

// ErrHexagonNotFound is returned when a cell is absent from the payload.
var ErrHexagonNotFound = errors.New("hexagon not found")

// TrafficCacheKey keys the legacy payload by day then hour.
func TrafficCacheKey(hour, day int) string {
	return fmt.Sprintf("%d-%d", day, hour)
}

// TrafficService builds the legacy hexagon payload: a disk of cells around
// the Paris center, each scored by the legacy evaluator.
type TrafficService struct {
	evaluator *field.LegacyEvaluator
	index     hexagg.Index
	bounds    catalog.Bounds
	store     cache.Store
	now       func() time.Time
	inflight  singleflight.Group
	log       zerolog.Logger
}

func NewTrafficService(evaluator *field.LegacyEvaluator, index hexagg.Index, bounds catalog.Bounds, store cache.Store) *TrafficService {
	return &TrafficService{
		evaluator: evaluator,
		index:     index,
		bounds:    bounds,
		store:     store,
		now:       time.Now,
		log:       logging.WithComponent("TrafficService"),
	}
}

// Generate builds an uncached payload for hour and day.
func (s *TrafficService) Generate(ctx context.Context, hour, day int) (*models.TrafficData, error) {
	start := time.Now()
	center, err := s.index.CellFor(catalog.PARIS_CENTER_LAT, catalog.PARIS_CENTER_LNG, LEGACY_RESOLUTION)
	if err != nil {
		return nil, err
	}
	cells, err := s.index.Disk(center, LEGACY_RING_COUNT)
	if err != nil {
		return nil, err
	}

	hexagons := make([]models.TrafficHexagon, 0, len(cells))
	for _, cell := range cells {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c, err := s.index.Center(cell)
		if err != nil {
			return nil, err
		}
		if !s.bounds.Contains(c.Lat(), c.Lng()) {
			continue
		}
		boundary, err := s.index.Boundary(cell)
		if err != nil {
			return nil, err
		}

		hex := models.TrafficHexagon{
			CellID:   cell,
			Center:   c,
			Boundary: boundary,
			Density:  s.evaluator.DensityAt(c.Lat(), c.Lng(), hour, day),
			ZoneName: "Zone " + prefix(cell, 8),
			ZoneType: "general",
		}
		if name, cat, ok := s.evaluator.Zone(c.Lat(), c.Lng()); ok {
			hex.ZoneName = name
			hex.ZoneType = string(cat)
		}
		hexagons = append(hexagons, hex)
	}

	metrics.RecordGeneration("traffic", time.Since(start), len(hexagons))
	return &models.TrafficData{
		Hexagons: hexagons,
		Metadata: models.TrafficMetadata{
			Hour:         hour,
			Day:          day,
			DayName:      models.DayName(day),
			Resolution:   LEGACY_RESOLUTION,
			HexagonCount: len(hexagons),
			GeneratedAt:  s.now().UTC(),
		},
	}, nil
}

func prefix(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}

// Traffic returns the cached payload for hour and day, generating it on a miss.
func (s *TrafficService) Traffic(ctx context.Context, hour, day int) (*models.TrafficData, error) {
	key := TrafficCacheKey(hour, day)
	data, ok, err := cache.GetJSON[models.TrafficData](s.store, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache read failed, regenerating")
	}
	if ok {
		return data, nil
	}

	return shared(ctx, &s.inflight, key, func(ctx context.Context) (*models.TrafficData, error) {
		data, err := s.Generate(ctx, hour, day)
		if err != nil {
			return nil, fmt.Errorf("generating traffic %s: %w", key, err)
		}
		if err := cache.SetJSON(s.store, key, data); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("cache write failed")
		}
		s.log.Info().Str("key", key).Int("hexagons", len(data.Hexagons)).Msg("traffic generated")
		return data, nil
	})
}

// Day returns all 24 hourly payloads of day, keyed by hour.
func (s *TrafficService) Day(ctx context.Context, day int) (map[int]*models.TrafficData, error) {
	out := make(map[int]*models.TrafficData, HOURS_PER_DAY)
	for hour := 0; hour < HOURS_PER_DAY; hour++ {
		data, err := s.Traffic(ctx, hour, day)
		if err != nil {
			return nil, err
		}
		out[hour] = data
	}
	return out, nil
}

// Hexagon looks cellID up in the payload for hour and day.
func (s *TrafficService) Hexagon(ctx context.Context, cellID string, hour, day int) (*models.TrafficHexagon, error) {
	data, err := s.Traffic(ctx, hour, day)
	if err != nil {
		return nil, err
	}
	for i := range data.Hexagons {
		if data.Hexagons[i].CellID == cellID {
			return &data.Hexagons[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrHexagonNotFound, cellID)
}

// Stats summarizes an already cached payload and never generates one.
func (s *TrafficService) Stats(hour, day int) (*models.TrafficStats, error) {
	data, ok, err := cache.GetJSON[models.TrafficData](s.store, TrafficCacheKey(hour, day))
	if err != nil {
		return nil, err
	}
	if !ok {
		return &models.TrafficStats{Cached: false, Message: "Data not yet generated for this time"}, nil
	}

	stats := &models.TrafficStats{Cached: true, HexagonCount: len(data.Hexagons), Hour: &hour, Day: &day}
	if len(data.Hexagons) == 0 {
		return stats, nil
	}
	sum := 0.0
	maxD, minD := data.Hexagons[0].Density, data.Hexagons[0].Density
	for _, h := range data.Hexagons {
		sum += h.Density
		maxD = max(maxD, h.Density)
		minD = min(minD, h.Density)
	}
	avg := sum / float64(len(data.Hexagons))
	stats.AvgDensity, stats.MaxDensity, stats.MinDensity = &avg, &maxD, &minD
	return stats, nil
}
