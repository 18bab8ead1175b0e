package field

import (
	"math"

	"ft-server/models"
)

const (
	ClusterRings         = 6
	ClusterPointsPerRing = 16
	// ClusterThreshold drops ring samples at or below this density.
	ClusterThreshold = 5.0
	// ClusterJitterFraction scales the per-point radial jitter.
	ClusterJitterFraction = 0.3
)

// Densifier adds ring samples around hotspots.
type Densifier struct {
	evaluator *Evaluator
}

func NewDensifier(e *Evaluator) *Densifier {
	return &Densifier{evaluator: e}
}

// ringJitter is a position-derived value in [0,1), stable across calls.
// Negative sums wrap back into [0,1) on purpose.
func ringJitter(lat, lng float64, ring, i int) float64 {
	v := math.Mod(lat*1000+lng*1000+float64(ring)*100+float64(i), 1)
	if v < 0 {
		v++
	}
	return v
}

// DensifyAround samples concentric rings around p, radii from spread/6 to spread.
func (d *Densifier) DensifyAround(p models.PointOfInterest, hour, day, minute int) []models.SamplePoint {
	var points []models.SamplePoint
	cosLat := math.Cos(p.Lat * math.Pi / 180)

	for ring := 1; ring <= ClusterRings; ring++ {
		radius := p.Spread * float64(ring) / ClusterRings
		for i := 0; i < ClusterPointsPerRing; i++ {
			angle := float64(i) / ClusterPointsPerRing * 2 * math.Pi
			jitter := (ringJitter(p.Lat, p.Lng, ring, i) - 0.5) * radius * ClusterJitterFraction

			lat := p.Lat + math.Cos(angle)*(radius+jitter)
			lng := p.Lng + math.Sin(angle)*(radius+jitter)/cosLat

			density := d.evaluator.DensityAt(lat, lng, hour, day, float64(minute))
			if density > ClusterThreshold {
				points = append(points, models.NewSamplePoint(lat, lng, density))
			}
		}
	}
	return points
}
