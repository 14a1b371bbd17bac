package http

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"article-summarizer/internal/handler/http/responsewriter"
	"article-summarizer/internal/observability/metrics"
)

// knownRoutes bounds the path label of HTTP metrics; anything else is reported as "other".
var knownRoutes = map[string]bool{
	"/":          true,
	"/summarize": true,
	"/health":    true,
	"/live":      true,
	"/metrics":   true,
}

// routeLabel maps a request path to a low-cardinality metrics label.
func routeLabel(path string) string {
	if knownRoutes[path] {
		return path
	}
	return "other"
}

// MetricsMiddleware records HTTP request metrics including duration, size and status
// codes, and tracks in-flight requests.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		wrapped := responsewriter.Wrap(w)
		next.ServeHTTP(wrapped, r)

		metrics.RecordHTTPRequest(
			r.Method,
			routeLabel(r.URL.Path),
			wrapped.StatusCode(),
			time.Since(start),
			r.ContentLength,
			wrapped.BytesWritten(),
		)
	})
}

// MetricsHandler exposes the default Prometheus registry.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
