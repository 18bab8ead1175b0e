package traffic

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ft-server/models"
)

// TrafficApiClientMock serves a small canned field and records density queries.
type TrafficApiClientMock struct {
	mu      sync.Mutex
	queries []models.DensityQuery
	cleared int
}

func NewTrafficApiClientMock() *TrafficApiClientMock {
	return &TrafficApiClientMock{}
}

var mockPoints = []models.SamplePoint{
	models.NewSamplePoint(48.8584, 2.2945, 92),
	models.NewSamplePoint(48.8606, 2.3376, 74),
	models.NewSamplePoint(48.8530, 2.3499, 41),
}

func (c *TrafficApiClientMock) Density(_ context.Context, q models.DensityQuery) (*models.DensityField, error) {
	c.mu.Lock()
	c.queries = append(c.queries, q)
	c.mu.Unlock()

	bucket := q.Minute / 5 * 5
	return &models.DensityField{
		Points: append([]models.SamplePoint(nil), mockPoints...),
		Metadata: models.DensityMetadata{
			Hour:              q.Hour,
			Minute:            q.Minute,
			Day:               q.Day,
			DayName:           models.DayName(q.Day),
			Resolution:        q.Resolution,
			TotalPoints:       len(mockPoints),
			AvgDensity:        69,
			MaxDensity:        92,
			MinDensity:        41,
			GeneratedAt:       time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			ActualCacheMinute: &bucket,
		},
	}, nil
}

func (c *TrafficApiClientMock) Traffic(_ context.Context, hour, day int) (*models.TrafficData, error) {
	return &models.TrafficData{
		Hexagons: []models.TrafficHexagon{},
		Metadata: models.TrafficMetadata{Hour: hour, Day: day, DayName: models.DayName(day), Resolution: 9},
	}, nil
}

func (c *TrafficApiClientMock) Hexagon(_ context.Context, cellID string, _, _ int) (*models.TrafficHexagon, error) {
	return nil, fmt.Errorf("hexagon %s not found", cellID)
}

func (c *TrafficApiClientMock) Stats(_ context.Context, _, _ int) (*models.TrafficStats, error) {
	return &models.TrafficStats{Cached: false, Message: "Data not yet generated for this time"}, nil
}

func (c *TrafficApiClientMock) ClearCache(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cleared++
	return nil
}

// Queries returns the density queries received so far.
func (c *TrafficApiClientMock) Queries() []models.DensityQuery {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.DensityQuery(nil), c.queries...)
}
