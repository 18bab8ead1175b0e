package hexagg

import (
	"fmt"

	"ft-server/models"
)

// Aggregator buckets points per cell and normalizes the totals of one batch.
type Aggregator struct {
	index Index
}

func NewAggregator(index Index) *Aggregator {
	return &Aggregator{index: index}
}

func (a *Aggregator) Index() Index { return a.index }

type bucket struct {
	cell  string
	count int
	total float64
}

// Aggregate groups points by cell at res. Hexagons come out in the order their
// cell was first seen. Density is 100 x total / the batch maximum total.
func (a *Aggregator) Aggregate(points []models.WeightedPoint, res int) ([]models.Hexagon, error) {
	if len(points) == 0 {
		return []models.Hexagon{}, nil
	}

	byCell := make(map[string]*bucket)
	var order []*bucket
	for _, p := range points {
		cell, err := a.index.CellFor(p.Lat, p.Lng, res)
		if err != nil {
			return nil, fmt.Errorf("locating point (%f,%f): %w", p.Lat, p.Lng, err)
		}
		b, ok := byCell[cell]
		if !ok {
			b = &bucket{cell: cell}
			byCell[cell] = b
			order = append(order, b)
		}
		b.count++
		if p.Value != nil {
			b.total += *p.Value
		} else {
			b.total++
		}
	}

	maxTotal := order[0].total
	for _, b := range order[1:] {
		maxTotal = max(maxTotal, b.total)
	}

	hexagons := make([]models.Hexagon, 0, len(order))
	for _, b := range order {
		center, err := a.index.Center(b.cell)
		if err != nil {
			return nil, err
		}
		boundary, err := a.index.Boundary(b.cell)
		if err != nil {
			return nil, err
		}
		density := 0.0
		if maxTotal > 0 {
			density = b.total / maxTotal * 100
		}
		hexagons = append(hexagons, models.Hexagon{
			CellID:     b.cell,
			Center:     center,
			Boundary:   boundary,
			PointCount: b.count,
			TotalValue: b.total,
			Density:    density,
		})
	}
	return hexagons, nil
}

// FromSamples weights each sample by its density.
func FromSamples(samples []models.SamplePoint) []models.WeightedPoint {
	out := make([]models.WeightedPoint, len(samples))
	for i := range samples {
		v := samples[i].Density
		out[i] = models.WeightedPoint{Lat: samples[i].Lat, Lng: samples[i].Lng, Value: &v}
	}
	return out
}
