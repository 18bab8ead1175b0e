package models

// Hexagon is one aggregated spatial-index cell.
type Hexagon struct {
	CellID     string   `json:"h3Index"`
	Center     LngLat   `json:"center"`
	Boundary   []LngLat `json:"boundary"`
	PointCount int      `json:"pointCount"`
	TotalValue float64  `json:"totalValue"`
	Density    float64  `json:"density"`
}

// CellNeighbors describes a cell and its first k-ring.
type CellNeighbors struct {
	CellID     string   `json:"h3Index"`
	Resolution int      `json:"resolution"`
	AreaM2     float64  `json:"areaM2"`
	EdgeLength string   `json:"edgeLength"`
	Area       string   `json:"area"`
	Neighbors  []string `json:"neighbors"`
}
