package field

import (
	"context"
	"math"
	"time"

	"ft-server/models"

	"golang.org/x/sync/errgroup"
)

// Generator assembles a full DensityField: lattice samples first, then the
// ring samples of each catalog entry in catalog order.
type Generator struct {
	rasterizer *Rasterizer
	densifier  *Densifier
	now        func() time.Time
}

func NewGenerator(r *Rasterizer, d *Densifier) *Generator {
	return &Generator{rasterizer: r, densifier: d, now: time.Now}
}

// WithClock overrides the clock stamped into generatedAt.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate builds the field for q. Unknown resolutions use the high tier.
func (g *Generator) Generate(ctx context.Context, q models.DensityQuery) (*models.DensityField, error) {
	_, tier := TierStep(q.Resolution)

	points, err := g.rasterizer.Rasterize(ctx, q.Hour, q.Day, q.Minute, tier)
	if err != nil {
		return nil, err
	}

	pois := g.densifier.evaluator.Catalog()
	clusters := make([][]models.SamplePoint, len(pois))
	eg, _ := errgroup.WithContext(ctx)
	eg.SetLimit(g.rasterizer.workers)
	for i := range pois {
		i := i
		eg.Go(func() error {
			clusters[i] = g.densifier.DensifyAround(pois[i], q.Hour, q.Day, q.Minute)
			return nil
		})
	}
	_ = eg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, c := range clusters {
		points = append(points, c...)
	}

	avg, maxD, minD := Summarize(points)
	return &models.DensityField{
		Points: points,
		Metadata: models.DensityMetadata{
			Hour:        q.Hour,
			Minute:      q.Minute,
			Day:         q.Day,
			DayName:     models.DayName(q.Day),
			Resolution:  tier,
			TotalPoints: len(points),
			AvgDensity:  math.Round(avg),
			MaxDensity:  math.Round(maxD),
			MinDensity:  math.Round(minD),
			GeneratedAt: g.now().UTC(),
		},
	}, nil
}

// Summarize returns mean, max and min density. All are zero for no points.
func Summarize(points []models.SamplePoint) (avg, max, min float64) {
	if len(points) == 0 {
		return 0, 0, 0
	}
	max, min = math.Inf(-1), math.Inf(1)
	sum := 0.0
	for _, p := range points {
		sum += p.Density
		max = math.Max(max, p.Density)
		min = math.Min(min, p.Density)
	}
	return sum / float64(len(points)), max, min
}
