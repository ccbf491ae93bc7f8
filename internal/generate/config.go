package generate

import (
	"github.com/rs/zerolog"

	"animegen/internal/dispatch"
	"animegen/internal/registry"
	"animegen/internal/shaping"
)

// Defaults applied when corresponding Config fields are unset.
const (
	MaxOutputs         = 10
	defaultMaxParallel = 4
)

// Upstream is the remote inference collaborator.
type Upstream interface {
	dispatch.Caller
	// Configured reports whether credentials are present.
	Configured() bool
}

// Config encapsulates all tunables for Service construction.
type Config struct {
	Registry *registry.Registry
	Upstream Upstream
	// PromptPrefix is prepended to image prompts; nil selects the default.
	PromptPrefix *string
	// Parallel fans sub-batches (and background removal) out concurrently.
	Parallel    bool
	MaxParallel int
	// RemoveBackgroundRef overrides the background removal model.
	RemoveBackgroundRef string
	// Secrets are redacted from logged upstream messages.
	Secrets   []string
	Logger    zerolog.Logger
	Publisher EventPublisher
}

func (c Config) withDefaults() Config {
	if c.Registry == nil {
		c.Registry = registry.Default()
	}
	if c.PromptPrefix == nil {
		p := shaping.DefaultPromptPrefix
		c.PromptPrefix = &p
	}
	if c.MaxParallel <= 0 {
		c.MaxParallel = defaultMaxParallel
	}
	if c.RemoveBackgroundRef == "" {
		c.RemoveBackgroundRef = registry.RemoveBackgroundRef
	}
	if c.Publisher == nil {
		c.Publisher = noopPublisher{}
	}
	return c
}
