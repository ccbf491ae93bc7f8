// Package generate coordinates image and music generation requests: it
// validates input, resolves the model, shapes the upstream payload and runs
// the sub-batches through the dispatcher.
package generate

import (
	"github.com/rs/zerolog"

	"animegen/internal/dispatch"
	"animegen/internal/registry"
	"animegen/internal/shaping"
	"animegen/pkg/types"
)

// Service serves generation requests. It holds no per-request state and is
// safe for concurrent use.
type Service struct {
	reg        *registry.Registry
	upstream   Upstream
	dispatcher *dispatch.Dispatcher
	shapeOpts  shaping.Options
	parallel   bool
	maxPar     int
	removeBg   string
	secrets    []string
	log        zerolog.Logger
	pub        EventPublisher
}

// New constructs a Service.
func New(cfg Config) *Service {
	cfg = cfg.withDefaults()
	log := cfg.Logger.With().Str("component", "generate").Logger()
	return &Service{
		reg:      cfg.Registry,
		upstream: cfg.Upstream,
		dispatcher: &dispatch.Dispatcher{
			Caller:      cfg.Upstream,
			Parallel:    cfg.Parallel,
			MaxParallel: cfg.MaxParallel,
			Logger:      log,
			Observer:    metricsObserver{},
			Secrets:     cfg.Secrets,
		},
		shapeOpts: shaping.Options{PromptPrefix: *cfg.PromptPrefix},
		parallel:  cfg.Parallel,
		maxPar:    cfg.MaxParallel,
		removeBg:  cfg.RemoveBackgroundRef,
		secrets:   cfg.Secrets,
		log:       log,
		pub:       cfg.Publisher,
	}
}

// Ready reports whether upstream credentials are configured.
func (s *Service) Ready() bool {
	return s.upstream != nil && s.upstream.Configured()
}

// ListModels returns the image models in registry order.
func (s *Service) ListModels() []types.Model {
	descs := s.reg.Models()
	out := make([]types.Model, 0, len(descs))
	for _, d := range descs {
		out = append(out, d.View())
	}
	return out
}

// ListMusicModels returns the music models in registry order.
func (s *Service) ListMusicModels() []types.MusicModel {
	descs := s.reg.MusicModels()
	out := make([]types.MusicModel, 0, len(descs))
	for _, d := range descs {
		out = append(out, d.MusicView())
	}
	return out
}

// Dimensions returns the output size presets.
func (s *Service) Dimensions() []types.Dimension {
	return append([]types.Dimension(nil), registry.Dimensions...)
}

func (s *Service) configured() error {
	if !s.Ready() {
		return configError{msg: msgTokenMissing}
	}
	return nil
}

func (s *Service) sanitize(msg string) string {
	return dispatch.Sanitize(msg, s.secrets...)
}
