package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"article-summarizer/internal/observability/metrics"
)

func TestRouteLabel(t *testing.T) {
	tests := map[string]string{
		"/":              "/",
		"/summarize":     "/summarize",
		"/health":        "/health",
		"/metrics":       "/metrics",
		"/wp-admin.php":  "other",
		"/summarize/123": "other",
	}
	for path, want := range tests {
		assert.Equal(t, want, routeLabel(path), path)
	}
}

func TestMetricsMiddleware(t *testing.T) {
	h := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.GreaterOrEqual(t, testutil.ToFloat64(metrics.HTTPRequestsInFlight), 1.0)
		w.WriteHeader(http.StatusBadGateway)
	}))

	counter := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodPost, "/summarize", "502")
	before := testutil.ToFloat64(counter)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/summarize", nil))

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestMetricsHandler(t *testing.T) {
	metrics.RecordHTTPRequest(http.MethodGet, "/", http.StatusOK, 0, 0, 0)

	rec := httptest.NewRecorder()
	MetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "http_requests_total"))
}
