// Package shaping turns a generation request into the upstream payload for a
// model family. Shaping is pure: it performs no I/O and never mutates its inputs.
package shaping

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"animegen/internal/registry"
	"animegen/pkg/types"
)

// DefaultPromptPrefix is prepended to every image prompt.
const DefaultPromptPrefix = "anime style, "

var (
	// ErrImageRequired is returned when a model needs a reference image and none was sent.
	ErrImageRequired = errors.New("reference image required")
	// ErrUnknownFamily is returned for descriptors without an image shaping rule.
	ErrUnknownFamily = errors.New("no shaping rule for model family")
)

// Payload maps upstream parameter names to values.
type Payload map[string]any

// Clone returns a shallow copy of p.
func (p Payload) Clone() Payload {
	out := make(Payload, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Shaped is a payload template plus the batching parameters of its family.
type Shaped struct {
	Payload    Payload
	CountParam string
	MaxPerCall int
}

// Options tweak shaping without changing family rules.
type Options struct {
	PromptPrefix string
}

// AspectRatio maps dimensions to the nearest supported aspect designation.
func AspectRatio(width, height int) string {
	switch {
	case width == height:
		return "1:1"
	case width > height:
		return "16:9"
	default:
		return "9:16"
	}
}

// Shape builds the payload template for desc. numOutputs must already be
// clamped by the caller; it bounds MaxPerCall for unbounded families.
func Shape(desc registry.Descriptor, req types.GenerateRequest, opts Options) (Shaped, error) {
	rule, ok := RuleFor(desc.Family)
	if !ok {
		return Shaped{}, fmt.Errorf("%w: %s", ErrUnknownFamily, desc.Family)
	}
	image := strings.TrimSpace(req.ReferenceImage)
	if (rule.RequiresImage || desc.RequiresImage) && image == "" {
		return Shaped{}, fmt.Errorf("%w: %s", ErrImageRequired, desc.Name)
	}

	p := Payload{"prompt": opts.PromptPrefix + req.Prompt}
	switch rule.size {
	case sizeAspectRatio:
		p["aspect_ratio"] = AspectRatio(req.Width, req.Height)
	default:
		p["width"] = req.Width
		p["height"] = req.Height
	}

	neg := strings.TrimSpace(req.NegativePrompt)
	switch rule.negative {
	case negativePassthrough:
		if neg != "" {
			p["negative_prompt"] = neg
		} else if rule.defaultNegative != "" {
			p["negative_prompt"] = rule.defaultNegative
		}
	case negativePrefixed:
		if neg != "" {
			p["negative_prompt"] = sdxlNegativeHead + neg
		} else {
			p["negative_prompt"] = rule.defaultNegative
		}
	}

	if image != "" && desc.SupportsImage && rule.ImageParam != "" {
		p[rule.ImageParam] = image
	}
	for k, v := range rule.extra {
		p[k] = v
	}

	maxPerCall := rule.MaxPerCall
	if maxPerCall == Unbounded || maxPerCall > req.NumOutputs {
		maxPerCall = req.NumOutputs
	}
	if maxPerCall < 1 {
		maxPerCall = 1
	}
	p[rule.CountParam] = maxPerCall
	return Shaped{Payload: p, CountParam: rule.CountParam, MaxPerCall: maxPerCall}, nil
}

// Music prompt shaping constants.
const (
	MusicPromptSuffix   = ", instrumental background music, no vocals, seamless, loop-friendly"
	DefaultMusicSeconds = 15
	MinMusicSeconds     = 5
	MaxMusicSeconds     = 30
)

// MusicSeconds rounds duration and clamps it to the supported range. Zero
// selects the default length.
func MusicSeconds(duration float64) int {
	if duration == 0 || math.IsNaN(duration) {
		duration = DefaultMusicSeconds
	}
	// clamp before converting; out-of-range floats do not convert to int safely
	s := math.Max(MinMusicSeconds, math.Min(MaxMusicSeconds, math.Round(duration)))
	return int(s)
}

// ShapeMusic builds the payload for a music request.
func ShapeMusic(prompt string, duration float64) (Payload, int) {
	seconds := MusicSeconds(duration)
	return Payload{
		"prompt":   strings.TrimSpace(prompt) + MusicPromptSuffix,
		"duration": seconds,
	}, seconds
}
