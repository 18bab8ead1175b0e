// Package field synthesizes the foot-traffic density field: a sum of
// gaussian kernels around each point of interest, modulated by time of day
// and day of week, sampled over a jittered lattice and around each hotspot.
package field

import (
	"math"
	"math/rand/v2"

	"ft-server/catalog"
	"ft-server/modulation"
)

const (
	// SupportRadius truncates a kernel beyond this many spreads.
	SupportRadius = 3.0
	// SigmaFactor scales a POI spread into the gaussian sigma.
	SigmaFactor = 0.6
	// NoiseAmplitude is the full width of the uniform noise band added to each sample.
	NoiseAmplitude = 2.0

	MinDensity = 0.0
	MaxDensity = 100.0
)

// NoiseSource returns uniform values in [0,1).
type NoiseSource func() float64

// RandomNoise draws from the shared math/rand/v2 source.
func RandomNoise() float64 {
	return rand.Float64()
}

// FixedNoise always returns v. FixedNoise(0.5) adds no noise at all.
func FixedNoise(v float64) NoiseSource {
	return func() float64 { return v }
}

// SeededNoise returns a reproducible source. It is not safe for concurrent use.
func SeededNoise(seed uint64) NoiseSource {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return r.Float64
}

// Evaluator computes the density at a point for a given time.
type Evaluator struct {
	catalog catalog.Catalog
	table   modulation.Table
	noise   NoiseSource
}

// NewEvaluator builds an evaluator. A nil noise source defaults to RandomNoise.
func NewEvaluator(c catalog.Catalog, table modulation.Table, noise NoiseSource) *Evaluator {
	if noise == nil {
		noise = RandomNoise
	}
	return &Evaluator{catalog: c, table: table, noise: noise}
}

func (e *Evaluator) Catalog() catalog.Catalog { return e.catalog }

func (e *Evaluator) Table() modulation.Table { return e.table }

// DensityAt returns the clamped density in [0,100] at (lat,lng) for the given
// hour (0-23), day (0-6, Sunday first) and minute.
func (e *Evaluator) DensityAt(lat, lng float64, hour, day int, minute float64) float64 {
	total := 0.0
	for i := range e.catalog {
		p := &e.catalog[i]
		d := PlanarDistance(lat, lng, p.Lat, p.Lng)
		if d >= p.Spread*SupportRadius {
			continue
		}
		base := p.Intensity * Gaussian(d, p.Spread*SigmaFactor)
		total += base * e.table.HourMultiplier(p.Category, hour, minute) * e.table.DayMultiplier(p.Category, day)
	}

	total += (e.noise() - 0.5) * NoiseAmplitude

	return math.Min(MaxDensity, math.Max(MinDensity, total))
}

// Gaussian is exp(-d²/(2σ²)).
func Gaussian(d, sigma float64) float64 {
	return math.Exp(-(d * d) / (2 * sigma * sigma))
}

// PlanarDistance is an equirectangular distance in degrees, with the longitude
// delta scaled by the cosine of the mean latitude. Only valid over small extents.
func PlanarDistance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := lat1 - lat2
	dLng := (lng1 - lng2) * math.Cos((lat1+lat2)/2*math.Pi/180)
	return math.Sqrt(dLat*dLat + dLng*dLng)
}
