// Package http provides the web form handlers, health and metrics endpoints, and the
// middleware chain of the web server.
package http

import (
	"context"
	"net/http"
	"time"

	"article-summarizer/internal/handler/http/respond"
	"article-summarizer/internal/resilience/circuitbreaker"
)

// Health check statuses.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy", "degraded" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // ISO 8601 format
	Checks    map[string]CheckStatus `json:"checks"`    // Status of each check item
	Version   string                 `json:"version"`   // Application version
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string         `json:"status"`            // "healthy", "degraded" or "unhealthy"
	Message string         `json:"message,omitempty"` // Optional status message
	Details map[string]any `json:"details,omitempty"` // Optional additional details
}

// HealthCheck reports the status of one dependency.
type HealthCheck func(ctx context.Context) CheckStatus

// HealthHandler runs every registered check and reports the aggregate status.
// A degraded check marks the service degraded but still answers 200; an unhealthy one
// returns 503.
type HealthHandler struct {
	Version string
	Checks  map[string]HealthCheck
}

// ServeHTTP implements http.Handler.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]CheckStatus, len(h.Checks))
	status := StatusHealthy
	for name, check := range h.Checks {
		cs := check(ctx)
		checks[name] = cs
		switch {
		case cs.Status == StatusUnhealthy:
			status = StatusUnhealthy
		case cs.Status == StatusDegraded && status == StatusHealthy:
			status = StatusDegraded
		}
	}

	statusCode := http.StatusOK
	if status == StatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, statusCode, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

// CircuitBreakerCheck reports a breaker's state. An open breaker is degraded, not
// unhealthy: the form still renders and reports the model error.
func CircuitBreakerCheck(cb *circuitbreaker.CircuitBreaker) HealthCheck {
	return func(context.Context) CheckStatus {
		details := map[string]any{
			"name":  cb.Name(),
			"state": cb.State().String(),
		}
		if cb.IsOpen() {
			return CheckStatus{Status: StatusDegraded, Message: "circuit breaker open", Details: details}
		}
		return CheckStatus{Status: StatusHealthy, Details: details}
	}
}

// Pinger is a dependency that can be probed.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingCheck reports unhealthy when p cannot be reached.
func PingCheck(p Pinger) HealthCheck {
	return func(ctx context.Context) CheckStatus {
		if err := p.Ping(ctx); err != nil {
			return CheckStatus{Status: StatusUnhealthy, Message: respond.SanitizeError(err)}
		}
		return CheckStatus{Status: StatusHealthy}
	}
}

// LiveHandler handles liveness probes. It always returns 200 OK while the process can
// serve requests.
type LiveHandler struct{}

// ServeHTTP implements http.Handler.
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("alive"))
}
