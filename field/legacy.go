package field

import (
	"math"

	"ft-server/catalog"
	"ft-server/models"
	"ft-server/modulation"
)

const (
	// LegacyBaseDensity and LegacyBaseNoise give every cell 5 to 15 before hotspots.
	LegacyBaseDensity = 5.0
	LegacyBaseNoise   = 10.0
	// LegacyHotspotNoise is the full width of the noise added per contributing hotspot.
	LegacyHotspotNoise = 10.0
	// ZoneRadius is how close a cell center must be to a hotspot to take its name.
	ZoneRadius = 0.02
)

// LegacyEvaluator is the linear-falloff model behind the hexagon traffic
// payload. Hotspot Spread is its radius and Intensity its base population.
// Distances are plain euclidean degrees.
type LegacyEvaluator struct {
	hotspots catalog.Catalog
	table    modulation.Table
	noise    NoiseSource
}

// NewLegacyEvaluator builds the evaluator. noise must be safe for concurrent use.
func NewLegacyEvaluator(hotspots catalog.Catalog, table modulation.Table, noise NoiseSource) *LegacyEvaluator {
	if noise == nil {
		noise = RandomNoise
	}
	return &LegacyEvaluator{hotspots: hotspots, table: table, noise: noise}
}

func euclid(lat1, lng1, lat2, lng2 float64) float64 {
	return math.Hypot(lat1-lat2, lng1-lng2)
}

// DensityAt returns the clamped legacy density for an integral hour.
func (e *LegacyEvaluator) DensityAt(lat, lng float64, hour, day int) float64 {
	total := LegacyBaseDensity + e.noise()*LegacyBaseNoise

	for i := range e.hotspots {
		h := &e.hotspots[i]
		d := euclid(lat, lng, h.Lat, h.Lng)
		if d >= h.Spread*2 {
			continue
		}
		influence := math.Max(0, 1-d/(h.Spread*1.5))
		contribution := h.Intensity * influence * e.table.HourValue(h.Category, hour) * e.table.DayMultiplier(h.Category, day)
		total += contribution + (e.noise()-0.5)*LegacyHotspotNoise
	}

	return math.Min(MaxDensity, math.Max(MinDensity, total))
}

// Zone names a location after the nearest hotspot within ZoneRadius. ok is
// false when no hotspot is close enough.
func (e *LegacyEvaluator) Zone(lat, lng float64) (name string, cat models.Category, ok bool) {
	best := math.Inf(1)
	var nearest *models.PointOfInterest
	for i := range e.hotspots {
		if d := euclid(lat, lng, e.hotspots[i].Lat, e.hotspots[i].Lng); d < best {
			best = d
			nearest = &e.hotspots[i]
		}
	}
	if nearest == nil || best >= ZoneRadius {
		return "", "", false
	}
	return nearest.Name, nearest.Category, true
}
