// Package traffic is a typed client for the /api/traffic endpoints.
package traffic

import (
	"context"

	"ft-server/models"
)

// TrafficAPI is implemented by the HTTP client and its mock.
type TrafficAPI interface {
	Density(ctx context.Context, q models.DensityQuery) (*models.DensityField, error)
	Traffic(ctx context.Context, hour, day int) (*models.TrafficData, error)
	Hexagon(ctx context.Context, cellID string, hour, day int) (*models.TrafficHexagon, error)
	Stats(ctx context.Context, hour, day int) (*models.TrafficStats, error)
	ClearCache(ctx context.Context) error
}
