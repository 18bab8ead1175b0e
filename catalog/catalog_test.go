package catalog

import (
	"testing"

	"ft-server/models"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type onlyTourist struct{}

func (onlyTourist) Has(cat models.Category) bool { return cat == models.CategoryTourist }

func TestDefault(t *testing.T) {
	c := Default()
	require.Len(t, c, 56)

	first := c[0]
	assert.Equal(t, "Tour Eiffel", first.Name)
	assert.Equal(t, 48.8584, first.Lat)
	assert.Equal(t, 2.2945, first.Lng)
	assert.Equal(t, 100.0, first.Intensity)
	assert.Equal(t, 0.008, first.Spread)

	validate := validator.New()
	ids := make(map[string]bool, len(c))
	for _, p := range c {
		require.NoError(t, validate.Struct(p), p.Name)
		assert.True(t, ParisBounds.Contains(p.Lat, p.Lng), p.Name)
		assert.False(t, ids[p.ID], "duplicate id for %s", p.Name)
		ids[p.ID] = true
	}
	assert.ElementsMatch(t, models.Categories, c.Categories())
}

func TestLegacy(t *testing.T) {
	c := Legacy()
	require.Len(t, c, 28)
	for _, p := range c {
		assert.True(t, LegacyBounds.Contains(p.Lat, p.Lng), p.Name)
	}
}

func TestWithIDs(t *testing.T) {
	c := Catalog{{Name: "Bercy"}, {ID: "fixed", Name: "Nation"}}
	got := c.WithIDs()

	assert.Equal(t, POIID("Bercy"), got[0].ID)
	assert.Equal(t, "fixed", got[1].ID)
	assert.Empty(t, c[0].ID)
	assert.Equal(t, POIID("Bercy"), POIID("Bercy"))
	assert.NotEqual(t, POIID("Bercy"), POIID("Nation"))
}

func TestMissingCategories(t *testing.T) {
	c := Catalog{
		{Name: "a", Category: models.CategoryTourist},
		{Name: "b", Category: models.CategoryPark},
		{Name: "c", Category: models.CategoryPark},
		{Name: "d", Category: models.CategoryNightlife},
	}
	assert.Equal(t, []models.Category{models.CategoryPark, models.CategoryNightlife}, c.MissingCategories(onlyTourist{}))
}

func TestBounds(t *testing.T) {
	b := NewBounds(48.8, 48.9, 2.2, 2.4)
	assert.True(t, b.Contains(48.85, 2.3))
	assert.True(t, b.Contains(48.8, 2.2))
	assert.False(t, b.Contains(48.95, 2.3))
	assert.False(t, b.Contains(48.85, 2.5))

	lat, lng := b.Center()
	assert.InDelta(t, 48.85, lat, 1e-9)
	assert.InDelta(t, 2.3, lng, 1e-9)
}
