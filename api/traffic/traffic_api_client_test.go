package traffic

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"ft-server/api"
	"ft-server/models"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ TrafficAPI = (*TrafficApiClient)(nil)
var _ TrafficAPI = (*TrafficApiClientMock)(nil)

func TestDensity(t *testing.T) {
	bucket := 5
	want := models.DensityField{
		Points:   []models.SamplePoint{models.NewSamplePoint(48.85, 2.35, 50)},
		Metadata: models.DensityMetadata{Hour: 9, Minute: 7, Day: 2, DayName: "Mardi", Resolution: "low", TotalPoints: 1, ActualCacheMinute: &bucket},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/api/traffic/density", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "9", q.Get("hour"))
		assert.Equal(t, "2", q.Get("day"))
		assert.Equal(t, "7", q.Get("minute"))
		assert.Equal(t, "low", q.Get("resolution"))
		json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	client := NewTrafficApiClient(api.NewHTTPClient(srv.URL))
	got, err := client.Density(context.Background(), models.DensityQuery{Hour: 9, Day: 2, Minute: 7, Resolution: "low"})
	require.NoError(t, err)
	assert.Equal(t, want.Points, got.Points)
	assert.Equal(t, 5, *got.Metadata.ActualCacheMinute)
}

func TestHexagon_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/traffic/hexagon/nonexistent", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Hexagon not found"}`))
	}))
	defer srv.Close()

	_, err := NewTrafficApiClient(api.NewHTTPClient(srv.URL)).Hexagon(context.Background(), "nonexistent", 14, 5)
	var se *api.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.Equal(t, "Hexagon not found", se.Message)
}

func TestStatsAndClearCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/traffic/stats":
			w.Write([]byte(`{"cached":false,"message":"Data not yet generated for this time"}`))
		case "/api/traffic/clear-cache":
			assert.Equal(t, "POST", r.Method)
			w.Write([]byte(`{"message":"Cache cleared successfully"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := NewTrafficApiClient(api.NewHTTPClient(srv.URL))
	stats, err := client.Stats(context.Background(), 14, 5)
	require.NoError(t, err)
	assert.False(t, stats.Cached)

	assert.NoError(t, client.ClearCache(context.Background()))
}

func TestMock_RecordsQueries(t *testing.T) {
	mock := NewTrafficApiClientMock()
	f, err := mock.Density(context.Background(), models.DensityQuery{Hour: 8, Day: 1, Minute: 13, Resolution: "high"})
	require.NoError(t, err)

	assert.Equal(t, 10, *f.Metadata.ActualCacheMinute)
	assert.Equal(t, "Lundi", f.Metadata.DayName)
	assert.Len(t, mock.Queries(), 1)
}
