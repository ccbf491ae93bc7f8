package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"animegen/internal/dispatch"
	"animegen/internal/registry"
	"animegen/internal/shaping"
	"animegen/pkg/types"
)

// Generate produces images for req. Partial success is success; an error is
// returned only for invalid input, missing configuration, or when every
// sub-batch failed.
func (s *Service) Generate(ctx context.Context, req types.GenerateRequest) (types.GenerateResponse, error) {
	if err := s.configured(); err != nil {
		countGeneration("image", "config_error")
		return types.GenerateResponse{}, err
	}
	desc, req, err := s.validate(req)
	if err != nil {
		countGeneration("image", "invalid")
		return types.GenerateResponse{}, err
	}
	shaped, err := shaping.Shape(desc, req, s.shapeOpts)
	if err != nil {
		countGeneration("image", "invalid")
		if errors.Is(err, shaping.ErrImageRequired) {
			return types.GenerateResponse{}, validationError{
				msg: fmt.Sprintf("%s requires a reference image. Please upload an image to use this model.", desc.Name),
				err: err,
			}
		}
		return types.GenerateResponse{}, validationError{msg: msgInvalidModel, err: err}
	}

	genID := uuid.NewString()
	start := time.Now()
	log := s.log.With().Str("generation_id", genID).Str("model", desc.ID).Logger()
	log.Info().Int("num_outputs", req.NumOutputs).Int("max_per_call", shaped.MaxPerCall).Msg("generate start")
	s.pub.Publish(Event{Name: EventGenerateStart, GenerationID: genID, ModelID: desc.ID, Fields: map[string]any{
		"num_outputs":  req.NumOutputs,
		"max_per_call": shaped.MaxPerCall,
	}})

	res := s.dispatcher.Run(ctx, dispatch.Job{ModelID: desc.ID, Ref: desc.Ref, Shaped: shaped, Total: req.NumOutputs})
	for _, f := range res.Failures {
		s.pub.Publish(Event{Name: EventBatchFailed, GenerationID: genID, ModelID: desc.ID, Fields: map[string]any{
			"batch": f.Batch, "size": f.Size, "error": f.Message,
		}})
	}

	if len(res.Locators) == 0 {
		s.pub.Publish(Event{Name: EventGenerateFailed, GenerationID: genID, ModelID: desc.ID, Fields: map[string]any{
			"batches": res.Batches,
		}})
		log.Error().Int("batches", res.Batches).Dur("dur", time.Since(start)).Msg("generate failed")
		if msg := translateFailures(res.Failures); msg != "" {
			countGeneration("image", "invalid")
			return types.GenerateResponse{}, validationError{msg: msg}
		}
		countGeneration("image", "failed")
		reportTotalFailure(desc.ID, genID, res.Failures)
		return types.GenerateResponse{}, upstreamError{msg: msgImagesFailed, err: firstErr(res.Failures)}
	}

	images := res.Locators
	if req.RemoveBackground && req.GenerationType == types.GenerationCharacter {
		images = s.removeBackgrounds(ctx, genID, images)
	}

	outcome := "ok"
	if len(images) < req.NumOutputs {
		outcome = "partial"
	}
	countGeneration("image", outcome)
	outputsTotal.WithLabelValues(desc.ID).Add(float64(len(images)))
	s.pub.Publish(Event{Name: EventGenerateDone, GenerationID: genID, ModelID: desc.ID, Fields: map[string]any{
		"outputs": len(images), "failed_batches": len(res.Failures),
	}})
	log.Info().Int("outputs", len(images)).Int("failed_batches", len(res.Failures)).Dur("dur", time.Since(start)).Msg("generate done")
	return types.GenerateResponse{Images: images, Model: desc.Name}, nil
}

// validate checks req and returns the resolved descriptor together with the
// normalized request.
func (s *Service) validate(req types.GenerateRequest) (registry.Descriptor, types.GenerateRequest, error) {
	req.Prompt = strings.TrimSpace(req.Prompt)
	req.ModelID = strings.TrimSpace(req.ModelID)
	if req.Prompt == "" || req.ModelID == "" {
		return registry.Descriptor{}, req, validationError{msg: msgPromptAndModel}
	}
	desc, err := s.reg.Resolve(req.ModelID)
	if err != nil {
		return registry.Descriptor{}, req, validationError{msg: msgInvalidModel, err: err}
	}
	switch req.GenerationType {
	case "":
		req.GenerationType = types.GenerationCharacter
	case types.GenerationCharacter, types.GenerationBackground:
	default:
		return registry.Descriptor{}, req, validationError{msg: msgInvalidType}
	}
	if req.GenerationType == types.GenerationBackground && !desc.SupportsBackground {
		return registry.Descriptor{}, req, validationError{msg: msgNoBackground}
	}
	req.NumOutputs = clampOutputs(req.NumOutputs)
	if req.Width <= 0 || req.Height <= 0 {
		d := registry.Dimensions[0]
		if req.GenerationType == types.GenerationBackground {
			d = registry.Dimensions[1]
		}
		req.Width, req.Height = d.Width, d.Height
	}
	return desc, req, nil
}

func clampOutputs(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxOutputs {
		return MaxOutputs
	}
	return n
}

func firstErr(failures []dispatch.Failure) error {
	if len(failures) == 0 {
		return nil
	}
	return failures[0].Err
}
