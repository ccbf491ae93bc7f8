package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"animegen/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

const (
	msgInternal     = "Internal server error"
	msgShuttingDown = "Server is shutting down"
)

// statusFor maps err to a status and a client-safe message. Errors without a
// status are reported generically so their text never reaches the client.
func statusFor(err error) (int, string) {
	var he HTTPError
	if errors.As(err, &he) {
		return he.StatusCode(), he.Error()
	}
	return http.StatusInternalServerError, msgInternal
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, types.ErrorResponse{Error: msg, Code: status})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// responseFor is statusFor, except that failures caused by server shutdown
// are reported as 503.
func responseFor(err error) (int, string) {
	if shuttingDown() {
		return http.StatusServiceUnavailable, msgShuttingDown
	}
	return statusFor(err)
}
