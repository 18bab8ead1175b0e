package traffic

import (
	"context"
	"net/url"
	"strconv"

	"ft-server/api"
	"ft-server/models"
)

const TRAFFIC_ENDPOINT_BASE = "/api/traffic"

// TrafficApiClient embeds the common HTTPClient.
type TrafficApiClient struct {
	*api.HTTPClient
}

func NewTrafficApiClient(httpClient *api.HTTPClient) *TrafficApiClient {
	return &TrafficApiClient{HTTPClient: httpClient}
}

func hourDay(hour, day int) url.Values {
	return url.Values{
		"hour": {strconv.Itoa(hour)},
		"day":  {strconv.Itoa(day)},
	}
}

func (c *TrafficApiClient) Density(ctx context.Context, q models.DensityQuery) (*models.DensityField, error) {
	params := hourDay(q.Hour, q.Day)
	params.Set("minute", strconv.Itoa(q.Minute))
	if q.Resolution != "" {
		params.Set("resolution", q.Resolution)
	}
	var response models.DensityField
	if err := c.Request(ctx, "GET", TRAFFIC_ENDPOINT_BASE+"/density", params, nil, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func (c *TrafficApiClient) Traffic(ctx context.Context, hour, day int) (*models.TrafficData, error) {
	var response models.TrafficData
	if err := c.Request(ctx, "GET", TRAFFIC_ENDPOINT_BASE, hourDay(hour, day), nil, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func (c *TrafficApiClient) Hexagon(ctx context.Context, cellID string, hour, day int) (*models.TrafficHexagon, error) {
	var response models.TrafficHexagon
	endpoint := TRAFFIC_ENDPOINT_BASE + "/hexagon/" + url.PathEscape(cellID)
	if err := c.Request(ctx, "GET", endpoint, hourDay(hour, day), nil, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func (c *TrafficApiClient) Stats(ctx context.Context, hour, day int) (*models.TrafficStats, error) {
	var response models.TrafficStats
	if err := c.Request(ctx, "GET", TRAFFIC_ENDPOINT_BASE+"/stats", hourDay(hour, day), nil, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func (c *TrafficApiClient) ClearCache(ctx context.Context) error {
	return c.Request(ctx, "POST", TRAFFIC_ENDPOINT_BASE+"/clear-cache", nil, nil, nil)
}
