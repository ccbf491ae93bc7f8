package generate

import (
	"strings"

	"animegen/internal/dispatch"
)

// knownFailure maps upstream message fragments to an actionable message.
type knownFailure struct {
	fragments []string
	message   string
}

var knownFailures = []knownFailure{
	{
		fragments: []string{"no face", "face not detected", "cannot find any face", "no faces"},
		message:   "No face detected in the reference image. Please upload a clear photo where the face is fully visible.",
	},
	{
		fragments: []string{"trigger word"},
		message:   "This model needs the trigger word \"img\" after the subject in your prompt (e.g. \"a girl img, school uniform\").",
	},
	{
		fragments: []string{"input_image", "redux_image", "image is required", "required image", "missing image"},
		message:   "This model requires a reference image. Please upload one and try again.",
	},
}

// translateFailure returns the actionable message for a known upstream
// failure pattern, or "" when msg matches none.
func translateFailure(msg string) string {
	lower := strings.ToLower(msg)
	for _, kf := range knownFailures {
		for _, f := range kf.fragments {
			if strings.Contains(lower, f) {
				return kf.message
			}
		}
	}
	return ""
}

// translateFailures returns the first known-pattern translation among failures.
func translateFailures(failures []dispatch.Failure) string {
	for _, f := range failures {
		if msg := translateFailure(f.Message); msg != "" {
			return msg
		}
	}
	return ""
}
