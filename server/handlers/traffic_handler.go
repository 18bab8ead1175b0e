package handlers

import (
	"errors"
	"net/http"

	"ft-server/hexagg"
	"ft-server/logging"
	"ft-server/models"
	services "ft-server/service"
	"ft-server/util"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
)

const (
	CELL_ID_PATH_VAR     = "cellId"
	MAX_AGGREGATE_BYTES  = 8 << 20
	GENERATE_TRAFFIC_ERR = "Failed to generate traffic data"
	GENERATE_DENSITY_ERR = "Failed to generate density data"
	FETCH_HEXAGON_ERR    = "Failed to fetch hexagon data"
	HEXAGON_NOT_FOUND    = "Hexagon not found"
)

// DensityHexagonsResponse is the /density/hexagons payload.
type DensityHexagonsResponse struct {
	Hexagons     []models.Hexagon        `json:"hexagons"`
	Metadata     *models.DensityMetadata `json:"metadata"`
	H3Resolution int                     `json:"h3Resolution"`
}

// AggregateRequest is the /aggregate body.
type AggregateRequest struct {
	Points []models.WeightedPoint `json:"points"`
}

type TrafficHandler struct {
	density *services.DensityService
	traffic *services.TrafficService
	caches  *services.CacheService
	bounds  models.BoundingBox
}

func NewTrafficHandler(
	density *services.DensityService,
	traffic *services.TrafficService,
	caches *services.CacheService,
	bounds models.BoundingBox) *TrafficHandler {
	return &TrafficHandler{density: density, traffic: traffic, caches: caches, bounds: bounds}
}

// GetTraffic handles GET /api/traffic
func (h *TrafficHandler) GetTraffic(w http.ResponseWriter, r *http.Request) {
	hour, day, err := parseHourDay(r.URL.Query())
	if err != nil {
		writeFailure(w, r, err, GENERATE_TRAFFIC_ERR)
		return
	}
	data, err := h.traffic.Traffic(r.Context(), hour, day)
	if err != nil {
		writeFailure(w, r, err, GENERATE_TRAFFIC_ERR)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// GetAll handles GET /api/traffic/all
func (h *TrafficHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	day, err := parseDay(r.URL.Query())
	if err != nil {
		writeFailure(w, r, err, GENERATE_TRAFFIC_ERR)
		return
	}
	all, err := h.traffic.Day(r.Context(), day)
	if err != nil {
		writeFailure(w, r, err, GENERATE_TRAFFIC_ERR)
		return
	}
	writeJSON(w, http.StatusOK, all)
}

// GetDensity handles GET /api/traffic/density
func (h *TrafficHandler) GetDensity(w http.ResponseWriter, r *http.Request) {
	q, err := parseDensityQuery(r.URL.Query())
	if err != nil {
		writeFailure(w, r, err, GENERATE_DENSITY_ERR)
		return
	}
	f, err := h.density.Density(r.Context(), q)
	if err != nil {
		writeFailure(w, r, err, GENERATE_DENSITY_ERR)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

// GetDensityHexagons handles GET /api/traffic/density/hexagons. With
// format=geojson the reply is a FeatureCollection.
func (h *TrafficHandler) GetDensityHexagons(w http.ResponseWriter, r *http.Request) {
	vals := r.URL.Query()
	q, err := parseDensityQuery(vals)
	if err != nil {
		writeFailure(w, r, err, GENERATE_DENSITY_ERR)
		return
	}
	res, err := parseCellResolution(vals, H3RES_QUERY_ARG)
	if err != nil {
		writeFailure(w, r, err, GENERATE_DENSITY_ERR)
		return
	}
	hexagons, md, err := h.density.DensityHexagons(r.Context(), q, res)
	if err != nil {
		writeFailure(w, r, err, GENERATE_DENSITY_ERR)
		return
	}
	if vals.Get(FORMAT_QUERY_ARG) == FORMAT_GEOJSON {
		writeJSON(w, http.StatusOK, hexagg.ToFeatureCollection(hexagons))
		return
	}
	writeJSON(w, http.StatusOK, DensityHexagonsResponse{Hexagons: hexagons, Metadata: md, H3Resolution: res})
}

// GetDensityChart handles GET /api/traffic/density/chart and renders the
// field as an HTML heatmap.
func (h *TrafficHandler) GetDensityChart(w http.ResponseWriter, r *http.Request) {
	q, err := parseDensityQuery(r.URL.Query())
	if err != nil {
		writeFailure(w, r, err, GENERATE_DENSITY_ERR)
		return
	}
	f, err := h.density.Density(r.Context(), q)
	if err != nil {
		writeFailure(w, r, err, GENERATE_DENSITY_ERR)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := util.PlotDensityField(f, h.bounds, w); err != nil {
		logging.Error().Err(err).Msg("error rendering density chart")
	}
}

// GetHexagon handles GET /api/traffic/hexagon/{cellId}
func (h *TrafficHandler) GetHexagon(w http.ResponseWriter, r *http.Request) {
	hour, day, err := parseHourDay(r.URL.Query())
	if err != nil {
		writeFailure(w, r, err, FETCH_HEXAGON_ERR)
		return
	}
	hex, err := h.traffic.Hexagon(r.Context(), mux.Vars(r)[CELL_ID_PATH_VAR], hour, day)
	if errors.Is(err, services.ErrHexagonNotFound) {
		writeError(w, http.StatusNotFound, HEXAGON_NOT_FOUND)
		return
	}
	if err != nil {
		writeFailure(w, r, err, FETCH_HEXAGON_ERR)
		return
	}
	writeJSON(w, http.StatusOK, hex)
}

// GetHexagonNeighbors handles GET /api/traffic/hexagon/{cellId}/neighbors
func (h *TrafficHandler) GetHexagonNeighbors(w http.ResponseWriter, r *http.Request) {
	info, err := hexagg.Describe(h.density.Index(), mux.Vars(r)[CELL_ID_PATH_VAR])
	if errors.Is(err, hexagg.ErrInvalidCell) {
		writeError(w, http.StatusNotFound, HEXAGON_NOT_FOUND)
		return
	}
	if err != nil {
		writeFailure(w, r, err, FETCH_HEXAGON_ERR)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// PostAggregate handles POST /api/traffic/aggregate
func (h *TrafficHandler) PostAggregate(w http.ResponseWriter, r *http.Request) {
	vals := r.URL.Query()
	res, err := parseCellResolution(vals, RESOLUTION_QUERY_ARG)
	if err != nil {
		writeFailure(w, r, err, GENERATE_DENSITY_ERR)
		return
	}
	var body AggregateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MAX_AGGREGATE_BYTES)).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	hexagons, err := h.density.Aggregate(body.Points, res)
	if err != nil {
		writeFailure(w, r, err, GENERATE_DENSITY_ERR)
		return
	}
	if vals.Get(FORMAT_QUERY_ARG) == FORMAT_GEOJSON {
		writeJSON(w, http.StatusOK, hexagg.ToFeatureCollection(hexagons))
		return
	}
	writeJSON(w, http.StatusOK, hexagons)
}

// PostClearCache handles POST /api/traffic/clear-cache
func (h *TrafficHandler) PostClearCache(w http.ResponseWriter, r *http.Request) {
	if err := h.caches.ClearAll(); err != nil {
		logging.Error().Err(err).Msg("error clearing caches")
		writeError(w, http.StatusInternalServerError, "Failed to clear cache")
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Cache cleared successfully"})
}

// GetStats handles GET /api/traffic/stats
func (h *TrafficHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	hour, day, err := parseHourDay(r.URL.Query())
	if err != nil {
		writeFailure(w, r, err, GENERATE_TRAFFIC_ERR)
		return
	}
	stats, err := h.traffic.Stats(hour, day)
	if err != nil {
		writeFailure(w, r, err, GENERATE_TRAFFIC_ERR)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
