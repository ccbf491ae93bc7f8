package types

// GenerationType selects what kind of asset an image request is for.
type GenerationType string

const (
	GenerationCharacter  GenerationType = "character"
	GenerationBackground GenerationType = "background"
)

// GenerateRequest is the payload of POST /api/generate.
type GenerateRequest struct {
	// Required model identifier.
	// example: flux-schnell
	ModelID string `json:"modelId" example:"flux-schnell"`
	// Required prompt text.
	// example: 1girl with blue hair, school uniform
	Prompt string `json:"prompt" example:"1girl with blue hair, school uniform"`
	// Optional negative prompt. Ignored by models that do not support it.
	NegativePrompt string `json:"negativePrompt,omitempty"`
	// Optional reference image as a data URL or http(s) URL.
	ReferenceImage string `json:"referenceImage,omitempty"`
	// Output width in pixels.
	// example: 1024
	Width int `json:"width" example:"1024"`
	// Output height in pixels.
	// example: 1024
	Height int `json:"height" example:"1024"`
	// Number of images to generate (1-10).
	// example: 4
	NumOutputs int `json:"numOutputs" example:"4"`
	// Run each generated image through background removal (character requests only).
	RemoveBackground bool `json:"removeBackground,omitempty"`
	// character (default) or background.
	// example: character
	GenerationType GenerationType `json:"generationType,omitempty" example:"character"`
}

// GenerateResponse is returned by POST /api/generate.
type GenerateResponse struct {
	// Generated image URLs; may hold fewer entries than requested.
	Images []string `json:"images"`
	// Display name of the model used.
	// example: Flux Schnell
	Model string `json:"model" example:"Flux Schnell"`
}

// MusicRequest is the payload of POST /api/music.
type MusicRequest struct {
	// Required prompt text.
	// example: calm lofi piano
	Prompt string `json:"prompt" example:"calm lofi piano"`
	// Track length in seconds, clamped to 5-30 (default 15).
	// example: 15
	Duration float64 `json:"duration,omitempty" example:"15"`
	// Optional music model id; unknown ids fall back to the default model.
	// example: musicgen
	ModelID string `json:"modelId,omitempty" example:"musicgen"`
}

// Track is one generated audio asset.
type Track struct {
	URL string `json:"url"`
	// example: MusicGen (instrumental)
	Model string `json:"model" example:"MusicGen (instrumental)"`
	// example: 15
	Duration int `json:"duration" example:"15"`
}

// MusicResponse is returned by POST /api/music.
type MusicResponse struct {
	Tracks []Track `json:"tracks"`
}

// ModelsResponse wraps the list of models returned by GET /api/models.
type ModelsResponse struct {
	Models []Model `json:"models"`
}

// MusicModelsResponse wraps the list returned by GET /api/music/models.
type MusicModelsResponse struct {
	Models []MusicModel `json:"models"`
}

// DimensionsResponse wraps the presets returned by GET /api/dimensions.
type DimensionsResponse struct {
	Dimensions []Dimension `json:"dimensions"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: Invalid model selected
	Error string `json:"error" example:"Invalid model selected"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}
