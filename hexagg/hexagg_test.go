package hexagg

import (
	"fmt"
	"math"
	"testing"

	"ft-server/models"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bandIndex puts every point in a 0.01-degree latitude band.
type bandIndex struct{}

func (bandIndex) CellFor(lat, _ float64, res int) (string, error) {
	if err := ValidateResolution(res); err != nil {
		return "", err
	}
	return fmt.Sprintf("band-%d", int(math.Floor(lat*100))), nil
}
func (bandIndex) Center(string) (models.LngLat, error) { return models.LngLat{2.35, 48.85}, nil }
func (bandIndex) Boundary(string) ([]models.LngLat, error) {
	return []models.LngLat{{2.34, 48.84}, {2.36, 48.84}, {2.36, 48.86}, {2.34, 48.86}}, nil
}
func (bandIndex) Disk(c string, _ int) ([]string, error) { return []string{c}, nil }
func (bandIndex) Neighbors(string) ([]string, error)     { return nil, nil }
func (bandIndex) AreaM2(string) (float64, error)         { return 1, nil }
func (bandIndex) Resolution(string) (int, error)         { return 9, nil }

func value(v float64) *float64 { return &v }

func TestAggregate_Empty(t *testing.T) {
	hexes, err := NewAggregator(bandIndex{}).Aggregate(nil, DEFAULT_RESOLUTION)
	require.NoError(t, err)
	assert.NotNil(t, hexes)
	assert.Empty(t, hexes)
}

func TestAggregate_FirstSeenOrderAndNormalization(t *testing.T) {
	points := []models.WeightedPoint{
		{Lat: 48.855, Lng: 2.3, Value: value(10)},
		{Lat: 48.865, Lng: 2.3, Value: value(40)},
		{Lat: 48.851, Lng: 2.3, Value: value(10)},
		{Lat: 48.845, Lng: 2.3},
	}

	hexes, err := NewAggregator(bandIndex{}).Aggregate(points, DEFAULT_RESOLUTION)
	require.NoError(t, err)
	require.Len(t, hexes, 3)

	assert.Equal(t, "band-4885", hexes[0].CellID)
	assert.Equal(t, "band-4886", hexes[1].CellID)
	assert.Equal(t, "band-4884", hexes[2].CellID)

	assert.Equal(t, 2, hexes[0].PointCount)
	assert.Equal(t, 20.0, hexes[0].TotalValue)
	assert.Equal(t, 50.0, hexes[0].Density)
	assert.Equal(t, 100.0, hexes[1].Density)
	// missing values count as one
	assert.Equal(t, 1.0, hexes[2].TotalValue)
	assert.Equal(t, 2.5, hexes[2].Density)
}

func TestAggregate_ZeroTotals(t *testing.T) {
	points := []models.WeightedPoint{{Lat: 48.85, Lng: 2.3, Value: value(0)}}
	hexes, err := NewAggregator(bandIndex{}).Aggregate(points, DEFAULT_RESOLUTION)
	require.NoError(t, err)
	require.Len(t, hexes, 1)
	assert.Equal(t, 0.0, hexes[0].Density)
}

func TestAggregate_BadResolution(t *testing.T) {
	_, err := NewAggregator(bandIndex{}).Aggregate([]models.WeightedPoint{{Lat: 48.85, Lng: 2.3}}, 16)
	assert.Error(t, err)
}

func TestAggregate_H3MaxIsHundred(t *testing.T) {
	points := []models.WeightedPoint{
		{Lat: 48.8584, Lng: 2.2945, Value: value(90)},
		{Lat: 48.8584, Lng: 2.2945, Value: value(30)},
		{Lat: 48.8606, Lng: 2.3376, Value: value(60)},
		{Lat: 48.8867, Lng: 2.3431, Value: value(20)},
	}

	hexes, err := NewAggregator(NewH3Index()).Aggregate(points, DEFAULT_RESOLUTION)
	require.NoError(t, err)
	require.Len(t, hexes, 3)

	maxDensity := 0.0
	for _, h := range hexes {
		maxDensity = math.Max(maxDensity, h.Density)
		assert.Len(t, h.Boundary, 6)
	}
	assert.Equal(t, 100.0, maxDensity)
	assert.Equal(t, 100.0, hexes[0].Density)
	assert.Equal(t, 2, hexes[0].PointCount)
	assert.Equal(t, 50.0, hexes[1].Density)
}

func TestH3Index_CellOperations(t *testing.T) {
	idx := NewH3Index()
	cell, err := idx.CellFor(48.8566, 2.3522, 9)
	require.NoError(t, err)

	res, err := idx.Resolution(cell)
	require.NoError(t, err)
	assert.Equal(t, 9, res)

	center, err := idx.Center(cell)
	require.NoError(t, err)
	assert.InDelta(t, 2.3522, center.Lng(), 0.005)
	assert.InDelta(t, 48.8566, center.Lat(), 0.005)

	neighbors, err := idx.Neighbors(cell)
	require.NoError(t, err)
	assert.Len(t, neighbors, 6)
	assert.NotContains(t, neighbors, cell)

	disk, err := idx.Disk(cell, 2)
	require.NoError(t, err)
	assert.Len(t, disk, 19)

	area, err := idx.AreaM2(cell)
	require.NoError(t, err)
	assert.InDelta(t, 105000, area, 45000)
}

func TestH3Index_InvalidCell(t *testing.T) {
	idx := NewH3Index()
	for _, id := range []string{"nonexistent", "", "0"} {
		_, err := idx.Center(id)
		assert.ErrorIs(t, err, ErrInvalidCell, id)
		_, err = idx.Neighbors(id)
		assert.ErrorIs(t, err, ErrInvalidCell, id)
	}
}

func TestToFeatureCollection_ClosesRings(t *testing.T) {
	hexes, err := NewAggregator(NewH3Index()).Aggregate([]models.WeightedPoint{{Lat: 48.8584, Lng: 2.2945}}, 9)
	require.NoError(t, err)

	fc := ToFeatureCollection(hexes)
	require.Len(t, fc.Features, 1)

	poly, ok := fc.Features[0].Geometry.(orb.Polygon)
	require.True(t, ok)
	ring := poly[0]
	assert.Len(t, ring, 7)
	assert.Equal(t, ring[0], ring[len(ring)-1])
	assert.Equal(t, hexes[0].CellID, fc.Features[0].Properties["h3Index"])
	assert.Equal(t, 100.0, fc.Features[0].Properties["density"])
}

func TestResolutionInfo(t *testing.T) {
	assert.Equal(t, Info{EdgeLength: "174 m", Area: "0.11 km²"}, ResolutionInfo(9))
	assert.Equal(t, Info{EdgeLength: "Unknown", Area: "Unknown"}, ResolutionInfo(12))
}

func TestDescribe(t *testing.T) {
	idx := NewH3Index()
	cell, err := idx.CellFor(48.8566, 2.3522, 10)
	require.NoError(t, err)

	d, err := Describe(idx, cell)
	require.NoError(t, err)
	assert.Equal(t, 10, d.Resolution)
	assert.Equal(t, "66 m", d.EdgeLength)
	assert.Len(t, d.Neighbors, 6)

	_, err = Describe(idx, "nonexistent")
	assert.ErrorIs(t, err, ErrInvalidCell)
}
