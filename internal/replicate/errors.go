package replicate

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx response from the Replicate API.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("replicate: http %d", e.Status)
	}
	return fmt.Sprintf("replicate: http %d: %s", e.Status, e.Detail)
}

// PredictionError reports a prediction that ended without succeeding.
type PredictionError struct {
	ID     string
	Status string
	Detail string
}

func (e *PredictionError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("prediction %s %s", e.ID, e.Status)
	}
	return fmt.Sprintf("prediction %s %s: %s", e.ID, e.Status, e.Detail)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Status == http.StatusNotFound
}
