package generate

import (
	"github.com/getsentry/sentry-go"

	"animegen/internal/dispatch"
)

// reportTotalFailure sends a total upstream failure to Sentry when a client
// is configured. Only sanitized messages are attached.
func reportTotalFailure(modelID, genID string, failures []dispatch.Failure) {
	hub := sentry.CurrentHub()
	if hub.Client() == nil {
		return
	}
	msgs := make([]string, 0, len(failures))
	for _, f := range failures {
		msgs = append(msgs, f.Message)
	}
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(sentry.LevelError)
		scope.SetTag("model", modelID)
		scope.SetTag("generation_id", genID)
		scope.SetContext("failures", map[string]interface{}{"messages": msgs})
		hub.CaptureMessage("all sub-batches failed for " + modelID)
	})
}
