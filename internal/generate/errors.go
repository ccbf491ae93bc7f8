package generate

import (
	"errors"
	"net/http"
)

// configError signals a missing server-side setting (HTTP 500).
type configError struct{ msg string }

func (e configError) Error() string   { return e.msg }
func (e configError) StatusCode() int { return http.StatusInternalServerError }

// validationError signals a request that cannot be served as sent (HTTP 400).
type validationError struct {
	msg string
	err error
}

func (e validationError) Error() string   { return e.msg }
func (e validationError) StatusCode() int { return http.StatusBadRequest }
func (e validationError) Unwrap() error   { return e.err }

// upstreamError signals that the remote service produced nothing (HTTP 500).
type upstreamError struct {
	msg string
	err error
}

func (e upstreamError) Error() string   { return e.msg }
func (e upstreamError) StatusCode() int { return http.StatusInternalServerError }
func (e upstreamError) Unwrap() error   { return e.err }

// IsConfig reports whether err is a configuration error.
func IsConfig(err error) bool {
	var e configError
	return errors.As(err, &e)
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	var e validationError
	return errors.As(err, &e)
}

// IsUpstream reports whether err is a total upstream failure.
func IsUpstream(err error) bool {
	var e upstreamError
	return errors.As(err, &e)
}

// User-facing messages.
const (
	msgTokenMissing       = "Replicate API token not configured"
	msgPromptAndModel     = "Prompt and model are required"
	msgInvalidModel       = "Invalid model selected"
	msgInvalidType        = "Invalid generation type"
	msgNoBackground       = "Selected model does not support background generation"
	msgImagesFailed       = "Failed to generate images. Please try a different model."
	msgPromptRequired     = "Prompt is required"
	msgNoMusicModel       = "No music model configured. Set REPLICATE_MUSIC_MODEL_ID to a valid Replicate music model (e.g., meta/musicgen) in your environment."
	msgMusicModelNotFound = "The selected music model was not found on Replicate. Set REPLICATE_MUSIC_MODEL_ID to a valid music model (e.g., meta/musicgen or your own)."
	msgMusicEmpty         = "Failed to generate music. Try another prompt or model."
	msgMusicFailed        = "Failed to generate music. Please try again."
)
