package types

// Model is the public view of an image generation model.
type Model struct {
	// Stable identifier for the model.
	// example: flux-schnell
	ID string `json:"id" example:"flux-schnell"`
	// Human-friendly name.
	// example: Flux Schnell
	Name string `json:"name" example:"Flux Schnell"`
	// Short description shown in model pickers.
	Description string `json:"description,omitempty"`
	// Style label (e.g., Modern Anime, Character Reference).
	// example: Versatile
	Style string `json:"style,omitempty" example:"Versatile"`
	// Approximate speed class: fast, medium or slow.
	// example: fast
	Speed string `json:"speed" example:"fast"`
	// Whether a reference image is used when supplied.
	SupportsImage bool `json:"supportsImage"`
	// Whether the model cannot run without a reference image.
	RequiresImage bool `json:"requiresImage"`
	// Whether the model can be used for background generation.
	SupportsBackground bool `json:"supportsBackground"`
}

// MusicModel is the public view of a music generation model.
type MusicModel struct {
	// example: musicgen
	ID string `json:"id" example:"musicgen"`
	// example: MusicGen (instrumental)
	Name        string `json:"name" example:"MusicGen (instrumental)"`
	Description string `json:"description,omitempty"`
}

// Dimension is an output size preset.
type Dimension struct {
	// example: 1:1 (Square)
	Label  string `json:"label" example:"1:1 (Square)"`
	Width  int    `json:"width" example:"1024"`
	Height int    `json:"height" example:"1024"`
}
