package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ft-server/cache"
	"ft-server/catalog"
	"ft-server/dao/redis"
	"ft-server/db"
	"ft-server/field"
	"ft-server/hexagg"
	"ft-server/models"
	"ft-server/modulation"
	services "ft-server/service"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testBounds = catalog.NewBounds(48.850, 48.866, 2.285, 2.305)

type fixture struct {
	traffic      *TrafficHandler
	pois         *PoiHandler
	densityStore *cache.FIFOStore
	trafficStore *cache.FIFOStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	e := field.NewEvaluator(catalog.Default(), modulation.Default(), field.FixedNoise(0.5))
	gen := field.NewGenerator(field.NewRasterizer(e, testBounds, 2), field.NewDensifier(e))
	densityStore := cache.NewFIFOStore("density", cache.DEFAULT_CAPACITY)
	density := services.NewDensityService(gen, hexagg.NewAggregator(hexagg.NewH3Index()), densityStore)

	legacy := field.NewLegacyEvaluator(catalog.Legacy(), modulation.Legacy(), field.FixedNoise(0.5))
	trafficStore := cache.NewFIFOStore("traffic", cache.DEFAULT_CAPACITY)
	traffic := services.NewTrafficService(legacy, hexagg.NewH3Index(), catalog.LegacyBounds, trafficStore)

	dao := redis.NewRedisPoiDAO(db.NewMemoryRedisClient(context.Background()))
	catalogService := services.NewCatalogService(dao, catalog.Default())
	_, err := catalogService.Publish()
	require.NoError(t, err)

	return &fixture{
		traffic:      NewTrafficHandler(density, traffic, services.NewCacheService(densityStore, trafficStore), testBounds.BoundingBox),
		pois:         NewPoiHandler(catalogService),
		densityStore: densityStore,
		trafficStore: trafficStore,
	}
}

func serve(h http.HandlerFunc, method, target string, vars map[string]string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var e errorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &e))
	return e.Error
}

func TestParseDensityQuery(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    models.DensityQuery
		wantErr string
	}{
		{name: "defaults", query: "", want: models.DensityQuery{Hour: 14, Day: 5, Minute: 0, Resolution: field.TierHigh}},
		{name: "explicit zeros", query: "hour=0&day=0&minute=0&resolution=low", want: models.DensityQuery{Resolution: field.TierLow}},
		{name: "unknown tier", query: "resolution=huge", want: models.DensityQuery{Hour: 14, Day: 5, Resolution: field.TierHigh}},
		{name: "hour range", query: "hour=25", wantErr: "Hour must be between 0 and 23"},
		{name: "negative day", query: "day=-1", wantErr: "Day must be between 0 (Sunday) and 6 (Saturday)"},
		{name: "minute range", query: "minute=60", wantErr: "Minute must be between 0 and 59"},
		{name: "not an integer", query: "hour=abc", wantErr: "Hour must be an integer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			got, err := parseDensityQuery(req.URL.Query())
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, isParamError(err))
				assert.Equal(t, tt.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetDensity(t *testing.T) {
	f := newFixture(t)

	rr := serve(f.traffic.GetDensity, http.MethodGet, "/api/traffic/density?hour=14&day=5&minute=7&resolution=low", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var got models.DensityField
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, 7, got.Metadata.Minute)
	require.NotNil(t, got.Metadata.ActualCacheMinute)
	assert.Equal(t, 5, *got.Metadata.ActualCacheMinute)
	assert.Equal(t, "Vendredi", got.Metadata.DayName)
	assert.Equal(t, got.Metadata.TotalPoints, len(got.Points))
	for _, p := range got.Points {
		assert.GreaterOrEqual(t, p.Density, 0.0)
		assert.LessOrEqual(t, p.Density, 100.0)
	}

	_, ok, _ := f.densityStore.Get("density-5-14-5-low")
	assert.True(t, ok)
}

func TestGetDensity_BadHour(t *testing.T) {
	f := newFixture(t)

	rr := serve(f.traffic.GetDensity, http.MethodGet, "/api/traffic/density?hour=25", nil, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, decodeError(t, rr), "Hour")
	n, _ := f.densityStore.Len()
	assert.Equal(t, 0, n)
}

func TestGetDensityHexagons(t *testing.T) {
	f := newFixture(t)

	rr := serve(f.traffic.GetDensityHexagons, http.MethodGet, "/api/traffic/density/hexagons?resolution=low&h3res=8", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var got DensityHexagonsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, 8, got.H3Resolution)
	require.NotEmpty(t, got.Hexagons)
	top := 0.0
	for _, h := range got.Hexagons {
		top = max(top, h.Density)
	}
	assert.InDelta(t, 100, top, 1e-9)

	rr = serve(f.traffic.GetDensityHexagons, http.MethodGet, "/api/traffic/density/hexagons?resolution=low&format=geojson", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"FeatureCollection"`)

	rr = serve(f.traffic.GetDensityHexagons, http.MethodGet, "/api/traffic/density/hexagons?h3res=16", nil, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetDensityChart(t *testing.T) {
	f := newFixture(t)

	rr := serve(f.traffic.GetDensityChart, http.MethodGet, "/api/traffic/density/chart?resolution=low", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rr.Body.String(), "echarts")
}

func TestGetTrafficAndHexagon(t *testing.T) {
	f := newFixture(t)

	rr := serve(f.traffic.GetTraffic, http.MethodGet, "/api/traffic?hour=9&day=1", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var data models.TrafficData
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &data))
	require.NotEmpty(t, data.Hexagons)
	assert.Equal(t, "Lundi", data.Metadata.DayName)

	want := data.Hexagons[0]
	rr = serve(f.traffic.GetHexagon, http.MethodGet, "/api/traffic/hexagon/x?hour=9&day=1",
		map[string]string{CELL_ID_PATH_VAR: want.CellID}, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var hex models.TrafficHexagon
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &hex))
	assert.Equal(t, want.CellID, hex.CellID)

	rr = serve(f.traffic.GetHexagon, http.MethodGet, "/api/traffic/hexagon/nonexistent",
		map[string]string{CELL_ID_PATH_VAR: "nonexistent"}, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, HEXAGON_NOT_FOUND, decodeError(t, rr))
}

func TestGetHexagonNeighbors(t *testing.T) {
	f := newFixture(t)
	cell, err := hexagg.NewH3Index().CellFor(48.8584, 2.2945, 9)
	require.NoError(t, err)

	rr := serve(f.traffic.GetHexagonNeighbors, http.MethodGet, "/", map[string]string{CELL_ID_PATH_VAR: cell}, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var got models.CellNeighbors
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, 9, got.Resolution)
	assert.Len(t, got.Neighbors, 6)
	assert.Equal(t, "174 m", got.EdgeLength)

	rr = serve(f.traffic.GetHexagonNeighbors, http.MethodGet, "/", map[string]string{CELL_ID_PATH_VAR: "zzz"}, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetAll(t *testing.T) {
	f := newFixture(t)

	rr := serve(f.traffic.GetAll, http.MethodGet, "/api/traffic/all?day=0", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var all map[string]models.TrafficData
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &all))
	assert.Len(t, all, 24)
	assert.Equal(t, 23, all["23"].Metadata.Hour)
}

func TestPostAggregate(t *testing.T) {
	f := newFixture(t)
	body := `{"points":[{"lat":48.8584,"lng":2.2945},{"lat":48.8584,"lng":2.2945,"value":3},{"lat":48.8606,"lng":2.3376}]}`

	rr := serve(f.traffic.PostAggregate, http.MethodPost, "/api/traffic/aggregate?resolution=9", nil, body)
	require.Equal(t, http.StatusOK, rr.Code)
	var hexagons []models.Hexagon
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &hexagons))
	require.Len(t, hexagons, 2)
	assert.Equal(t, 2, hexagons[0].PointCount)
	assert.InDelta(t, 4, hexagons[0].TotalValue, 1e-9)
	assert.InDelta(t, 100, hexagons[0].Density, 1e-9)
	assert.InDelta(t, 25, hexagons[1].Density, 1e-9)

	rr = serve(f.traffic.PostAggregate, http.MethodPost, "/api/traffic/aggregate", nil, `{"points":[]}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())

	rr = serve(f.traffic.PostAggregate, http.MethodPost, "/api/traffic/aggregate", nil, `not json`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestClearCacheAndStats(t *testing.T) {
	f := newFixture(t)

	rr := serve(f.traffic.GetStats, http.MethodGet, "/api/traffic/stats?hour=10&day=2", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"cached":false,"message":"Data not yet generated for this time"}`, rr.Body.String())

	serve(f.traffic.GetTraffic, http.MethodGet, "/api/traffic?hour=10&day=2", nil, "")
	serve(f.traffic.GetDensity, http.MethodGet, "/api/traffic/density?resolution=low", nil, "")

	rr = serve(f.traffic.GetStats, http.MethodGet, "/api/traffic/stats?hour=10&day=2", nil, "")
	var stats models.TrafficStats
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stats))
	assert.True(t, stats.Cached)
	assert.Positive(t, stats.HexagonCount)

	rr = serve(f.traffic.PostClearCache, http.MethodPost, "/api/traffic/clear-cache", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Cache cleared successfully"}`, rr.Body.String())

	for _, s := range []*cache.FIFOStore{f.densityStore, f.trafficStore} {
		n, _ := s.Len()
		assert.Equal(t, 0, n, s.Name())
	}
}

func TestGetPOIsNearby(t *testing.T) {
	f := newFixture(t)

	rr := serve(f.pois.GetPOIsNearby, http.MethodGet, "/api/pois/nearby?lat=48.8584&lng=2.2945&radius=0.5", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var got NearbyPOIsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.NotEmpty(t, got.POIs)
	assert.Equal(t, len(got.POIs), got.Count)
	assert.Equal(t, "Tour Eiffel", got.POIs[0].Name)

	tests := map[string]string{
		"missing lat":  "/api/pois/nearby?lng=2.29",
		"bad lng":      "/api/pois/nearby?lat=48.85&lng=east",
		"lat range":    "/api/pois/nearby?lat=120&lng=2.29",
		"radius range": "/api/pois/nearby?lat=48.85&lng=2.29&radius=0",
	}
	for name, target := range tests {
		t.Run(name, func(t *testing.T) {
			rr := serve(f.pois.GetPOIsNearby, http.MethodGet, target, nil, "")
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestHealthHandler(t *testing.T) {
	h := NewHealthHandler("")
	h.now = func() time.Time { return time.Date(2026, 3, 6, 12, 0, 0, 0, time.UTC) }

	rr := serve(h.GetHealth, http.MethodGet, "/api/health", nil, "")
	assert.JSONEq(t, `{"status":"ok","timestamp":"2026-03-06T12:00:00Z","service":"Paris Traffic API"}`, rr.Body.String())

	rr = serve(h.GetConfig, http.MethodGet, "/api/config", nil, "")
	assert.JSONEq(t, `{"mapboxToken":null}`, rr.Body.String())

	rr = serve(NewHealthHandler("pk.abc").GetConfig, http.MethodGet, "/api/config", nil, "")
	assert.JSONEq(t, `{"mapboxToken":"pk.abc"}`, rr.Body.String())
}
