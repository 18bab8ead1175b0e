package services

import (
	"context"
	"errors"
	"time"

	"ft-server/logging"
	"ft-server/metrics"
	"ft-server/models"

	"github.com/rs/zerolog"
)

// CacheWarmerService periodically pre-generates the frames for the current
// local hour so the first viewers don't pay for generation.
type CacheWarmerService struct {
	density  *DensityService
	traffic  *TrafficService
	tier     string
	location *time.Location
	now      func() time.Time
	log      zerolog.Logger
}

func NewCacheWarmerService(density *DensityService, traffic *TrafficService, tier string, location *time.Location) *CacheWarmerService {
	if location == nil {
		location = time.UTC
	}
	return &CacheWarmerService{
		density:  density,
		traffic:  traffic,
		tier:     tier,
		location: location,
		now:      time.Now,
		log:      logging.WithComponent("CacheWarmerService"),
	}
}

// StartPeriodicJob warms once immediately, then every interval until ctx is done.
func (w *CacheWarmerService) StartPeriodicJob(ctx context.Context, interval time.Duration) {
	go w.startPeriodicJob(ctx, interval)
}

func (w *CacheWarmerService) startPeriodicJob(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		w.log.Info().Msg("running cache warmer job")
		err := w.WarmCurrentHour(ctx)
		metrics.RecordWarmerRun(err)
		if err != nil && !errors.Is(err, context.Canceled) {
			w.log.Error().Err(err).Msg("cache warmer job failed")
		}

		select {
		case <-ctx.Done():
			w.log.Info().Msg("cache warmer stopped")
			return
		case <-ticker.C:
		}
	}
}

// WarmCurrentHour generates every 5-minute bucket of the current hour at the
// warmer tier plus the legacy payload for that hour.
func (w *CacheWarmerService) WarmCurrentHour(ctx context.Context) error {
	now := w.now().In(w.location)
	hour, day := now.Hour(), int(now.Weekday())

	for minute := 0; minute < 60; minute += 5 {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := w.density.Density(ctx, models.DensityQuery{Hour: hour, Day: day, Minute: minute, Resolution: w.tier}); err != nil {
			return err
		}
	}
	if _, err := w.traffic.Traffic(ctx, hour, day); err != nil {
		return err
	}
	w.log.Info().Int("hour", hour).Int("day", day).Str("tier", w.tier).Msg("cache warmed")
	return nil
}
