package server

import (
	"net/http"

	"ft-server/server/handlers"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const TRAFFIC_ROUTE_PREFIX = "/api/traffic"

type Router struct {
	trafficHandler *handlers.TrafficHandler
	poiHandler     *handlers.PoiHandler
	healthHandler  *handlers.HealthHandler
	router         *mux.Router
}

// NewRouter creates a router with the app’s routes.
func NewRouter(
	trafficHandler *handlers.TrafficHandler,
	poiHandler *handlers.PoiHandler,
	healthHandler *handlers.HealthHandler,
	router *mux.Router) *Router {
	return &Router{
		trafficHandler: trafficHandler,
		poiHandler:     poiHandler,
		healthHandler:  healthHandler,
		router:         router,
	}
}

func (r *Router) RegisterRoutes() {
	r.router.Use(AccessLog)

	// Root-level routes: a method mismatch on a known path replies 405.
	traffic := func(path string, h http.HandlerFunc, method string) {
		r.router.HandleFunc(TRAFFIC_ROUTE_PREFIX+path, h).Methods(method)
	}
	// expects ?hour={0-23}&day={0-6}
	traffic("", r.trafficHandler.GetTraffic, "GET")
	traffic("/", r.trafficHandler.GetTraffic, "GET")
	traffic("/all", r.trafficHandler.GetAll, "GET")
	// expects ?hour&day&minute={0-59}&resolution={low|medium|high|ultra|extreme}
	traffic("/density", r.trafficHandler.GetDensity, "GET")
	traffic("/density/hexagons", r.trafficHandler.GetDensityHexagons, "GET")
	traffic("/density/chart", r.trafficHandler.GetDensityChart, "GET")
	traffic("/hexagon/{cellId}", r.trafficHandler.GetHexagon, "GET")
	traffic("/hexagon/{cellId}/neighbors", r.trafficHandler.GetHexagonNeighbors, "GET")
	traffic("/aggregate", r.trafficHandler.PostAggregate, "POST")
	traffic("/clear-cache", r.trafficHandler.PostClearCache, "POST")
	traffic("/stats", r.trafficHandler.GetStats, "GET")

	// expects ?lat={latitude(float)}&lng={longitude(float)}&radius={km(float)}
	r.router.HandleFunc("/api/pois/nearby", r.poiHandler.GetPOIsNearby).Methods("GET")
	r.router.HandleFunc("/api/health", r.healthHandler.GetHealth).Methods("GET")
	r.router.HandleFunc("/api/config", r.healthHandler.GetConfig).Methods("GET")

	r.router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.router.HandleFunc("/ping", r.healthHandler.Ping).Methods("GET")
}

// Handler wraps the registered routes with the cross-cutting middleware.
// CORS runs first so preflight requests never reach the method matchers.
func (r *Router) Handler(corsOrigins []string, limiter *RateLimiter) http.Handler {
	var h http.Handler = r.router
	if limiter != nil {
		h = limiter.Middleware(h)
	}
	return CORS(corsOrigins)(RequestID(h))
}
