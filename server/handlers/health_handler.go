package handlers

import (
	"net/http"
	"time"
)

const SERVICE_NAME = "Paris Traffic API"

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
}

// ConfigResponse exposes client settings. MapboxToken is null when unset.
type ConfigResponse struct {
	MapboxToken *string `json:"mapboxToken"`
}

type HealthHandler struct {
	mapboxToken string
	now         func() time.Time
}

func NewHealthHandler(mapboxToken string) *HealthHandler {
	return &HealthHandler{mapboxToken: mapboxToken, now: time.Now}
}

// GetHealth handles GET /api/health
func (h *HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: h.now().UTC(),
		Service:   SERVICE_NAME,
	})
}

// GetConfig handles GET /api/config
func (h *HealthHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	resp := ConfigResponse{}
	if h.mapboxToken != "" {
		token := h.mapboxToken
		resp.MapboxToken = &token
	}
	writeJSON(w, http.StatusOK, resp)
}

// Ping handles GET /ping
func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "pong"})
}
