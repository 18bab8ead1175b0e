package models

// LngLat is a [longitude, latitude] pair, the order map renderers expect.
type LngLat [2]float64

func (p LngLat) Lng() float64 { return p[0] }
func (p LngLat) Lat() float64 { return p[1] }

// SamplePoint is one emitted sample of the density field.
type SamplePoint struct {
	Position LngLat  `json:"position"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Density  float64 `json:"density"`
	Weight   float64 `json:"weight"`
}

// NewSamplePoint builds a sample with weight derived from density.
func NewSamplePoint(lat, lng, density float64) SamplePoint {
	return SamplePoint{
		Position: LngLat{lng, lat},
		Lat:      lat,
		Lng:      lng,
		Density:  density,
		Weight:   density / 100,
	}
}

// WeightedPoint is an input point for hexagon aggregation. A nil Value counts as 1.
type WeightedPoint struct {
	Lat   float64  `json:"lat"`
	Lng   float64  `json:"lng"`
	Value *float64 `json:"value,omitempty"`
}
