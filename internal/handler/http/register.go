package http

import (
	"net/http"
)

// Routes are the handlers served by the web server.
type Routes struct {
	Form   *FormHandler
	Health *HealthHandler
	// Limiter throttles form submissions; nil disables throttling.
	Limiter *ClientRateLimiter
}

// Register registers the form, health and metrics endpoints with the given mux.
func Register(mux *http.ServeMux, routes Routes) {
	var submit http.Handler = routes.Form
	if routes.Limiter != nil {
		submit = routes.Limiter.Middleware(submit)
	}

	mux.Handle("GET /{$}", routes.Form)
	mux.Handle("POST /summarize", submit)

	mux.Handle("GET /health", routes.Health)
	mux.Handle("GET /live", &LiveHandler{})
	mux.Handle("GET /metrics", MetricsHandler())
}
