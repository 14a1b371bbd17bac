// Package respond writes JSON responses and keeps provider credentials out of anything
// sent to clients or logs.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Error writes a JSON error response with the given status code and error message.
func Error(w http.ResponseWriter, code int, err error) {
	JSON(w, code, map[string]string{"error": SanitizeError(err)})
}

// safeFragments mark validation-style messages that can be shown to users as-is.
var safeFragments = []string{
	"required",
	"invalid",
	"not found",
	"must be",
	"too long",
	"too short",
	"too large",
}

// IsSafe reports whether the message of err may be returned to a client with the
// given status code. Server errors never are.
func IsSafe(code int, err error) bool {
	if err == nil || code >= 500 {
		return false
	}
	lower := strings.ToLower(err.Error())
	for _, f := range safeFragments {
		if strings.Contains(lower, f) {
			return true
		}
	}
	return false
}

// SafeError returns validation errors to the client verbatim. Anything else is logged
// (sanitized) and replaced by a generic message.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	if IsSafe(code, err) {
		JSON(w, code, map[string]string{"error": SanitizeError(err)})
		return
	}

	slog.Default().Error("internal server error",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.String("error", SanitizeError(err)))
	JSON(w, code, map[string]string{"error": "internal server error"})
}
