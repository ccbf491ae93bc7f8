package generate

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"animegen/internal/replicate"
	"animegen/internal/shaping"
	"animegen/pkg/types"
)

// Music generates one instrumental track for req.
func (s *Service) Music(ctx context.Context, req types.MusicRequest) (types.MusicResponse, error) {
	if err := s.configured(); err != nil {
		countGeneration("music", "config_error")
		return types.MusicResponse{}, err
	}
	if strings.TrimSpace(req.Prompt) == "" {
		countGeneration("music", "invalid")
		return types.MusicResponse{}, validationError{msg: msgPromptRequired}
	}
	desc, err := s.reg.ResolveMusic(req.ModelID)
	if err != nil || strings.TrimSpace(desc.Ref) == "" {
		countGeneration("music", "config_error")
		return types.MusicResponse{}, configError{msg: msgNoMusicModel}
	}

	input, seconds := shaping.ShapeMusic(req.Prompt, req.Duration)
	genID := uuid.NewString()
	start := time.Now()
	log := s.log.With().Str("generation_id", genID).Str("model", desc.ID).Logger()

	urls, err := s.upstream.Locators(ctx, desc.Ref, input)
	if err != nil {
		msg := s.sanitize(err.Error())
		log.Error().Str("err", msg).Dur("dur", time.Since(start)).Msg("music generation failed")
		s.pub.Publish(Event{Name: EventMusicFailed, GenerationID: genID, ModelID: desc.ID, Fields: map[string]any{"error": msg}})
		if replicate.IsNotFound(err) || strings.Contains(msg, "404") || strings.Contains(strings.ToLower(msg), "not found") {
			countGeneration("music", "invalid")
			return types.MusicResponse{}, validationError{msg: msgMusicModelNotFound, err: err}
		}
		countGeneration("music", "failed")
		return types.MusicResponse{}, upstreamError{msg: msgMusicFailed, err: err}
	}
	if len(urls) == 0 {
		countGeneration("music", "failed")
		s.pub.Publish(Event{Name: EventMusicFailed, GenerationID: genID, ModelID: desc.ID})
		return types.MusicResponse{}, upstreamError{msg: msgMusicEmpty}
	}

	tracks := make([]types.Track, 0, len(urls))
	for _, u := range urls {
		tracks = append(tracks, types.Track{URL: u, Model: desc.Name, Duration: seconds})
	}
	countGeneration("music", "ok")
	outputsTotal.WithLabelValues(desc.ID).Add(float64(len(tracks)))
	s.pub.Publish(Event{Name: EventMusicDone, GenerationID: genID, ModelID: desc.ID, Fields: map[string]any{"tracks": len(tracks), "duration": seconds}})
	log.Info().Int("tracks", len(tracks)).Int("duration", seconds).Dur("dur", time.Since(start)).Msg("music done")
	return types.MusicResponse{Tracks: tracks}, nil
}
