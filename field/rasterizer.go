package field

import (
	"context"
	"math"
	"runtime"

	"ft-server/catalog"
	"ft-server/models"

	"golang.org/x/sync/errgroup"
)

// Resolution tiers, coarsest first.
const (
	TierLow     = "low"
	TierMedium  = "medium"
	TierHigh    = "high"
	TierUltra   = "ultra"
	TierExtreme = "extreme"

	DefaultTier = TierHigh
)

const (
	// GridThreshold drops lattice samples at or below this density.
	GridThreshold = 3.0
	// JitterFraction is the span of the jitter relative to the lattice step.
	JitterFraction = 0.4
	// JitterBucketMinutes is how long a jitter pattern stays stable.
	JitterBucketMinutes = 5
)

// Step is a lattice pitch in degrees.
type Step struct {
	Lat float64
	Lng float64
}

// Approximate pitches: low ~300m, medium ~200m, high ~120m, ultra ~80m, extreme ~60m.
var tierSteps = map[string]Step{
	TierLow:     {Lat: 0.003, Lng: 0.004},
	TierMedium:  {Lat: 0.002, Lng: 0.0025},
	TierHigh:    {Lat: 0.0012, Lng: 0.0015},
	TierUltra:   {Lat: 0.0008, Lng: 0.001},
	TierExtreme: {Lat: 0.0006, Lng: 0.00075},
}

// Tiers lists tier names from coarsest to finest.
func Tiers() []string {
	return []string{TierLow, TierMedium, TierHigh, TierUltra, TierExtreme}
}

// TierStep resolves a tier name, falling back to the high tier for unknown names.
// The returned name is the tier actually used.
func TierStep(name string) (Step, string) {
	if s, ok := tierSteps[name]; ok {
		return s, name
	}
	return tierSteps[DefaultTier], DefaultTier
}

// JitterSeed keeps the jitter pattern frame-stable within a 5-minute bucket.
func JitterSeed(hour, minute int) uint64 {
	return uint64((hour*60 + minute/JitterBucketMinutes) % 1000)
}

// lcg is the classic 31-bit linear congruential generator.
type lcg struct {
	state uint64
}

func (g *lcg) next() float64 {
	g.state = (g.state*1103515245 + 12345) % 2147483648
	return float64(g.state) / 2147483648
}

// Rasterizer samples the field over a jittered regular lattice.
type Rasterizer struct {
	evaluator *Evaluator
	bounds    catalog.Bounds
	workers   int
}

// NewRasterizer builds a rasterizer. workers <= 0 uses GOMAXPROCS.
func NewRasterizer(e *Evaluator, bounds catalog.Bounds, workers int) *Rasterizer {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Rasterizer{evaluator: e, bounds: bounds, workers: workers}
}

func latticeSize(min, max, step float64) int {
	return int(math.Floor((max-min)/step+1e-9)) + 1
}

// Lattice returns the jittered sample positions in sweep order: latitude
// outer, longitude inner. Each entry is (lat, lng).
func (r *Rasterizer) Lattice(hour, minute int, tier string) [][2]float64 {
	step, _ := TierStep(tier)
	b := r.bounds
	rows := latticeSize(b.LatMin, b.LatMax, step.Lat)
	cols := latticeSize(b.LngMin, b.LngMax, step.Lng)

	g := &lcg{state: JitterSeed(hour, minute)}
	out := make([][2]float64, 0, rows*cols)
	for i := 0; i < rows; i++ {
		lat := b.LatMin + float64(i)*step.Lat
		for j := 0; j < cols; j++ {
			lng := b.LngMin + float64(j)*step.Lng
			jLat := lat + (g.next()-0.5)*step.Lat*JitterFraction
			jLng := lng + (g.next()-0.5)*step.Lng*JitterFraction
			out = append(out, [2]float64{jLat, jLng})
		}
	}
	return out
}

// Rasterize evaluates the field at every lattice position and keeps samples
// above GridThreshold, in sweep order.
func (r *Rasterizer) Rasterize(ctx context.Context, hour, day, minute int, tier string) ([]models.SamplePoint, error) {
	positions := r.Lattice(hour, minute, tier)
	densities := make([]float64, len(positions))

	chunk := (len(positions) + r.workers - 1) / r.workers
	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < len(positions); start += chunk {
		start, end := start, min(start+chunk, len(positions))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if (i-start)%512 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				densities[i] = r.evaluator.DensityAt(positions[i][0], positions[i][1], hour, day, float64(minute))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	points := make([]models.SamplePoint, 0, len(positions)/2)
	for i, d := range densities {
		if d > GridThreshold {
			points = append(points, models.NewSamplePoint(positions[i][0], positions[i][1], d))
		}
	}
	return points, nil
}
