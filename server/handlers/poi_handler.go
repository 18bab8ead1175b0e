package handlers

import (
	"net/http"

	"ft-server/models"
	services "ft-server/service"
)

// NearbyPOIsResponse is the /pois/nearby payload.
type NearbyPOIsResponse struct {
	Count int                `json:"count"`
	POIs  []models.NearbyPOI `json:"pois"`
}

type PoiHandler struct {
	catalogService *services.CatalogService
}

func NewPoiHandler(catalogService *services.CatalogService) *PoiHandler {
	return &PoiHandler{catalogService: catalogService}
}

// GetPOIsNearby handles GET /api/pois/nearby?lat=&lng=&radius= (radius in km).
func (h *PoiHandler) GetPOIsNearby(w http.ResponseWriter, r *http.Request) {
	q, err := parseNearbyQuery(r.URL.Query())
	if err != nil {
		writeFailure(w, r, err, "Failed to fetch points of interest")
		return
	}
	pois, err := h.catalogService.Nearby(q.Lat, q.Lng, q.RadiusKm)
	if err != nil {
		writeFailure(w, r, err, "Failed to fetch points of interest")
		return
	}
	writeJSON(w, http.StatusOK, NearbyPOIsResponse{Count: len(pois), POIs: pois})
}
