// Package hexagg buckets weighted points into hexagonal spatial-index cells.
package hexagg

import (
	"errors"
	"fmt"

	"ft-server/models"
)

const (
	DEFAULT_RESOLUTION = 9
	MIN_RESOLUTION     = 0
	MAX_RESOLUTION     = 15
)

// ErrInvalidCell is returned for identifiers that do not name a cell.
var ErrInvalidCell = errors.New("invalid cell id")

// Index is the hierarchical hexagonal index capability the aggregator and
// the legacy traffic payload depend on. Coordinates are degrees.
type Index interface {
	CellFor(lat, lng float64, res int) (string, error)
	// Center returns the cell centroid as [lng, lat].
	Center(cell string) (models.LngLat, error)
	// Boundary returns the open vertex ring as [lng, lat] pairs.
	Boundary(cell string) ([]models.LngLat, error)
	// Disk returns all cells within k steps, origin included.
	Disk(cell string, k int) ([]string, error)
	// Neighbors returns the first ring, origin excluded.
	Neighbors(cell string) ([]string, error)
	AreaM2(cell string) (float64, error)
	Resolution(cell string) (int, error)
}

// ValidateResolution rejects resolutions the index cannot represent.
func ValidateResolution(res int) error {
	if res < MIN_RESOLUTION || res > MAX_RESOLUTION {
		return fmt.Errorf("resolution %d out of range [%d,%d]", res, MIN_RESOLUTION, MAX_RESOLUTION)
	}
	return nil
}

// Info is the human-readable size of cells at one resolution.
type Info struct {
	EdgeLength string `json:"edgeLength"`
	Area       string `json:"area"`
}

var resolutionInfo = map[int]Info{
	7:  {EdgeLength: "1.22 km", Area: "5.16 km²"},
	8:  {EdgeLength: "461 m", Area: "0.74 km²"},
	9:  {EdgeLength: "174 m", Area: "0.11 km²"},
	10: {EdgeLength: "66 m", Area: "0.015 km²"},
	11: {EdgeLength: "25 m", Area: "0.002 km²"},
}

// ResolutionInfo describes resolutions 7 to 11; others are "Unknown".
func ResolutionInfo(res int) Info {
	if info, ok := resolutionInfo[res]; ok {
		return info
	}
	return Info{EdgeLength: "Unknown", Area: "Unknown"}
}

// Describe gathers everything the neighbors endpoint reports about a cell.
func Describe(idx Index, cell string) (*models.CellNeighbors, error) {
	res, err := idx.Resolution(cell)
	if err != nil {
		return nil, err
	}
	neighbors, err := idx.Neighbors(cell)
	if err != nil {
		return nil, err
	}
	area, err := idx.AreaM2(cell)
	if err != nil {
		return nil, err
	}
	info := ResolutionInfo(res)
	return &models.CellNeighbors{
		CellID:     cell,
		Resolution: res,
		AreaM2:     area,
		EdgeLength: info.EdgeLength,
		Area:       info.Area,
		Neighbors:  neighbors,
	}, nil
}
