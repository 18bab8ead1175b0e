package di

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ft-server/config"
	"ft-server/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContainer_MemoryBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Mapbox.Token = "pk.test"

	c, err := NewContainer(context.Background(), cfg)
	require.NoError(t, err)

	_, ok := c.RedisClient.(*db.MemoryRedisClient)
	assert.True(t, ok)
	assert.Len(t, c.Catalog, 56)

	ids, err := c.RedisPoiDao.ListPOIIDs()
	require.NoError(t, err)
	assert.Len(t, ids, 56)

	rr := httptest.NewRecorder()
	c.MuxRouter.ServeHTTP(rr, httptest.NewRequest("GET", "/api/config", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"mapboxToken":"pk.test"}`, rr.Body.String())

	assert.Equal(t, map[string]int{"density": 0, "traffic": 0}, c.CacheService.Sizes())
}

func TestNewContainer_CatalogOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pois.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"name":"Tour Eiffel","lat":48.8584,"lng":2.2945,"type":"tourist","intensity":100,"spread":0.008},
		{"name":"Louvre","lat":48.8606,"lng":2.3376,"type":"tourist","intensity":95,"spread":0.012}
	]`), 0o600))

	cfg := config.Default()
	cfg.Catalog.Path = path

	c, err := NewContainer(context.Background(), cfg)
	require.NoError(t, err)
	assert.Len(t, c.Catalog, 2)
	assert.NotEmpty(t, c.Catalog[0].ID)

	cfg.Catalog.Path = filepath.Join(t.TempDir(), "missing.json")
	_, err = NewContainer(context.Background(), cfg)
	assert.Error(t, err)
}

func TestLoadLocation(t *testing.T) {
	assert.Equal(t, time.UTC, loadLocation("Not/AZone"))
	assert.Equal(t, "UTC", loadLocation("UTC").String())
}
