package util

import (
	"fmt"
	"io"
	"math"

	"ft-server/models"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const HEATMAP_ROWS = 45
const HEATMAP_COLS = 60

// DensityGrid bins samples into rows x cols over box, keeping the highest
// density seen per bin. Row 0 is the southern edge.
func DensityGrid(points []models.SamplePoint, box models.BoundingBox, rows, cols int) [][]float64 {
	grid := make([][]float64, rows)
	for i := range grid {
		grid[i] = make([]float64, cols)
	}
	latSpan := box.LatMax - box.LatMin
	lngSpan := box.LngMax - box.LngMin
	if latSpan <= 0 || lngSpan <= 0 {
		return grid
	}
	for _, p := range points {
		if p.Lat < box.LatMin || p.Lat > box.LatMax || p.Lng < box.LngMin || p.Lng > box.LngMax {
			continue
		}
		r := min(rows-1, int((p.Lat-box.LatMin)/latSpan*float64(rows)))
		c := min(cols-1, int((p.Lng-box.LngMin)/lngSpan*float64(cols)))
		grid[r][c] = math.Max(grid[r][c], p.Density)
	}
	return grid
}

// PlotDensityField renders the field as an HTML heatmap into w.
func PlotDensityField(f *models.DensityField, box models.BoundingBox, w io.Writer) error {
	grid := DensityGrid(f.Points, box, HEATMAP_ROWS, HEATMAP_COLS)

	xs := make([]string, HEATMAP_COLS)
	for c := range xs {
		xs[c] = fmt.Sprintf("%.3f", box.LngMin+(float64(c)+0.5)*(box.LngMax-box.LngMin)/HEATMAP_COLS)
	}
	ys := make([]string, HEATMAP_ROWS)
	for r := range ys {
		ys[r] = fmt.Sprintf("%.3f", box.LatMin+(float64(r)+0.5)*(box.LatMax-box.LatMin)/HEATMAP_ROWS)
	}

	data := make([]opts.HeatMapData, 0, HEATMAP_ROWS*HEATMAP_COLS)
	for r, row := range grid {
		for c, v := range row {
			if v == 0 {
				continue
			}
			data = append(data, opts.HeatMapData{Value: [3]interface{}{c, r, math.Round(v)}})
		}
	}

	md := f.Metadata
	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Paris foot traffic",
			Width:     "1100px",
			Height:    "800px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s %02d:%02d", md.DayName, md.Hour, md.Minute),
			Subtitle: fmt.Sprintf("%d points, resolution %s, avg %.0f, max %.0f", md.TotalPoints, md.Resolution, md.AvgDensity, md.MaxDensity),
		}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: xs}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: ys}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Min: 0,
			Max: 100,
			InRange: &opts.VisualMapInRange{
				Color: []string{"#313695", "#4575b4", "#74add1", "#fee090", "#f46d43", "#a50026"},
			},
		}),
	)
	hm.AddSeries("density", data)

	if err := hm.Render(w); err != nil {
		return fmt.Errorf("failed to render heatmap: %w", err)
	}
	return nil
}
