package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

type handlerFunc func(w http.ResponseWriter, r *http.Request)

func validateAPIKey(api *RestAPI, finalHandler handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		finalHandler(w, r)
	})
}

// route registers an API-key protected, instrumented handler.
func (api *RestAPI) route(router *httprouter.Router, method, path, name string, h handlerFunc) {
	router.Handler(method, path, api.Metrics.Instrument(name, validateAPIKey(api, h)))
}

func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	api.route(router, http.MethodGet, "/api/current-time.json", "current_time", api.currentTimeHandler)

	api.route(router, http.MethodGet, "/api/simulator/defaults.json", "defaults", api.defaultsHandler)
	api.route(router, http.MethodGet, "/api/simulator/grid.json", "grid", api.gridHandler)
	api.route(router, http.MethodGet, "/api/simulator/derive/:category", "derive", api.deriveHandler)
	api.route(router, http.MethodGet, "/api/simulator/density/:category", "density", api.densityHandler)
	api.route(router, http.MethodPost, "/api/simulator/simulate.json", "simulate", api.simulateHandler)
	api.route(router, http.MethodPost, "/api/simulator/comparison/:category", "comparison", api.comparisonHandler)
	api.route(router, http.MethodPost, "/api/simulator/chart/:category", "chart", api.chartHandler)

	api.route(router, http.MethodGet, "/api/annotations.json", "annotations", api.annotationsHandler)
	api.route(router, http.MethodPost, "/api/annotations/export.csv", "annotations_export", api.annotationsExportHandler)
	api.route(router, http.MethodPost, "/api/annotations/summary.json", "annotations_summary", api.annotationsSummaryHandler)

	router.Handler(http.MethodGet, "/metrics", api.Metrics.Handler())
	router.NotFound = http.HandlerFunc(api.notFoundResponse)
}

// NewRouter returns a router with every API route registered.
func (api *RestAPI) NewRouter() *httprouter.Router {
	router := httprouter.New()
	api.SetRoutes(router)
	return router
}

// WithMiddleware wraps handler in the standard middleware chain, outermost first:
// request logging, security headers, compression, rate limiting.
func (api *RestAPI) WithMiddleware(handler http.Handler) http.Handler {
	handler = api.rateLimiter.Handler(handler)
	handler = CompressionMiddleware(handler)
	handler = securityHeaders(handler)
	return NewRequestLoggingMiddleware(api.Logger)(handler)
}
