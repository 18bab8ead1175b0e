package catalog

import (
	"ft-server/models"

	"github.com/golang/geo/s2"
)

// Bounds is the rectangular area of interest swept by the rasterizer.
type Bounds struct {
	models.BoundingBox
	rect s2.Rect
}

// NewBounds builds a Bounds from its corner degrees.
func NewBounds(latMin, latMax, lngMin, lngMax float64) Bounds {
	rect := s2.RectFromLatLng(s2.LatLngFromDegrees(latMin, lngMin))
	rect = rect.AddPoint(s2.LatLngFromDegrees(latMax, lngMax))
	return Bounds{
		BoundingBox: models.BoundingBox{LatMin: latMin, LatMax: latMax, LngMin: lngMin, LngMax: lngMax},
		rect:        rect,
	}
}

// Contains reports whether the point lies inside the bounds, edges included.
func (b Bounds) Contains(lat, lng float64) bool {
	return b.rect.ContainsLatLng(s2.LatLngFromDegrees(lat, lng))
}

// Center returns the midpoint of the bounds.
func (b Bounds) Center() (lat, lng float64) {
	c := b.rect.Center()
	return c.Lat.Degrees(), c.Lng.Degrees()
}

var (
	// ParisBounds is swept by the density grid.
	ParisBounds = NewBounds(48.815, 48.905, 2.22, 2.47)

	// LegacyBounds filters cells of the legacy hexagon payload.
	LegacyBounds = NewBounds(48.80, 48.92, 2.20, 2.48)
)

const (
	PARIS_CENTER_LAT = 48.8566
	PARIS_CENTER_LNG = 2.3522
)
