package http

import (
	"net/http"
)

// DefaultMaxBodyBytes limits form submissions. A URL field never needs more.
const DefaultMaxBodyBytes = 64 << 10

// maxPathLength rejects oversized request paths.
const maxPathLength = 2048

// InputValidation returns middleware that limits request inputs:
// the URI path length (2KB) and the request body size (maxBodyBytes).
func InputValidation(maxBodyBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.URL.Path) > maxPathLength {
				http.Error(w, "URI too long", http.StatusRequestURITooLong)
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
			next.ServeHTTP(w, r)
		})
	}
}
