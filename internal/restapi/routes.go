package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
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

// Routes assembles the planner's HTTP surface: the journey-planning
// endpoint behind API-key validation and per-key rate limiting, and the
// Prometheus scrape endpoint, all wrapped in the shared middleware stack
// (request logging, gzip, security headers).
func (api *RestAPI) Routes(registry *prometheus.Registry) http.Handler {
	router := httprouter.New()

	router.Handler(http.MethodGet, "/api/plan/:stopId",
		api.rateLimiter(validateAPIKey(api, api.planHandler)))

	router.Handler(http.MethodGet, "/metrics",
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	var handler http.Handler = router
	handler = CompressionMiddleware(handler)
	handler = NewRequestLoggingMiddleware(api.Logger)(handler)
	handler = api.WithSecurityHeaders(handler)
	return handler
}
