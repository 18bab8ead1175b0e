package redis

import (
	"context"
	"testing"

	"ft-server/catalog"
	"ft-server/db"
	"ft-server/models"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisPoiDAO_UpsertPOI_Success(t *testing.T) {
	client := db.NewMemoryRedisClient(context.Background())
	dao := NewRedisPoiDAO(client)

	eiffel := catalog.Default()[0]
	require.NoError(t, dao.UpsertPOI(eiffel))

	stored, err := client.Get("pois_geo_place_v1:" + eiffel.ID)
	require.NoError(t, err)

	var got models.PointOfInterest
	require.NoError(t, json.Unmarshal([]byte(stored), &got))
	assert.Equal(t, eiffel, got)
}

func TestRedisPoiDAO_UpsertPOI_RequiresID(t *testing.T) {
	dao := NewRedisPoiDAO(db.NewMemoryRedisClient(context.Background()))
	err := dao.UpsertPOI(models.PointOfInterest{Name: "anonymous"})
	assert.Error(t, err)
}

func TestRedisPoiDAO_GetNearbyPOIs(t *testing.T) {
	dao := NewRedisPoiDAO(db.NewMemoryRedisClient(context.Background()))
	for _, p := range catalog.Default() {
		require.NoError(t, dao.UpsertPOI(p))
	}

	pois, err := dao.GetNearbyPOIs(48.8584, 2.2945, 1)
	require.NoError(t, err)
	require.NotEmpty(t, pois)
	assert.Equal(t, "Tour Eiffel", pois[0].Name)

	none, err := dao.GetNearbyPOIs(48.75, 2.10, 1)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRedisPoiDAO_ListPOIIDs(t *testing.T) {
	dao := NewRedisPoiDAO(db.NewMemoryRedisClient(context.Background()))
	c := catalog.Default()[:3]
	for _, p := range c {
		require.NoError(t, dao.UpsertPOI(p))
	}

	ids, err := dao.ListPOIIDs()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{c[0].ID, c[1].ID, c[2].ID}, ids)
}
