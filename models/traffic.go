package models

import "time"

// TrafficHexagon is a cell of the legacy hexagon-based traffic payload.
type TrafficHexagon struct {
	CellID   string   `json:"h3Index"`
	Center   LngLat   `json:"center"`
	Boundary []LngLat `json:"boundary"`
	Density  float64  `json:"density"`
	ZoneName string   `json:"zoneName"`
	ZoneType string   `json:"zoneType"`
}

type TrafficMetadata struct {
	Hour         int       `json:"hour"`
	Day          int       `json:"day"`
	DayName      string    `json:"dayName"`
	Resolution   int       `json:"resolution"`
	HexagonCount int       `json:"hexagonCount"`
	GeneratedAt  time.Time `json:"generatedAt"`
}

// TrafficData is the legacy per-hour payload.
type TrafficData struct {
	Hexagons []TrafficHexagon `json:"hexagons"`
	Metadata TrafficMetadata  `json:"metadata"`
}

// TrafficStats is returned by /stats. Only Cached and Message are set on a miss.
type TrafficStats struct {
	Cached       bool     `json:"cached"`
	Message      string   `json:"message,omitempty"`
	HexagonCount int      `json:"hexagonCount,omitempty"`
	AvgDensity   *float64 `json:"avgDensity,omitempty"`
	MaxDensity   *float64 `json:"maxDensity,omitempty"`
	MinDensity   *float64 `json:"minDensity,omitempty"`
	Hour         *int     `json:"hour,omitempty"`
	Day          *int     `json:"day,omitempty"`
}
