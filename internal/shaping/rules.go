package shaping

import "animegen/internal/registry"

// Quality-guard negative prompts injected when the caller supplies none.
const (
	QualityGuard      = "lowres, bad anatomy, bad hands, text, error, missing fingers, extra digit, fewer digits, cropped, worst quality, low quality"
	ShortQualityGuard = "lowres, bad anatomy, bad hands, text, error, missing fingers"
	sdxlNegativeHead  = "lowres, bad anatomy, bad hands, "
)

// Unbounded means a single call may produce every requested output.
const Unbounded = 0

type sizeMode int

const (
	sizePixels sizeMode = iota
	sizeAspectRatio
)

type negativeMode int

const (
	negativeOmit negativeMode = iota
	negativePassthrough
	negativePrefixed
)

// Rule describes how one model family is called.
type Rule struct {
	Family registry.Family
	// CountParam is the upstream parameter holding the per-call output count.
	CountParam string
	// MaxPerCall caps outputs per call; Unbounded uses the requested count.
	MaxPerCall int
	// ImageParam names the reference image parameter; empty drops the image.
	ImageParam string
	// RequiresImage fails shaping when no reference image is supplied.
	RequiresImage bool

	size            sizeMode
	negative        negativeMode
	defaultNegative string
	extra           map[string]any
}

var rules = map[registry.Family]Rule{
	registry.FamilyFlux: {
		Family: registry.FamilyFlux, CountParam: "num_outputs", MaxPerCall: 4,
		size: sizeAspectRatio, negative: negativeOmit,
	},
	registry.FamilyFluxRedux: {
		Family: registry.FamilyFluxRedux, CountParam: "num_outputs", MaxPerCall: 4,
		ImageParam: "redux_image", RequiresImage: true,
		size: sizeAspectRatio, negative: negativeOmit,
	},
	registry.FamilySD35: {
		Family: registry.FamilySD35, CountParam: "num_outputs", MaxPerCall: Unbounded,
		ImageParam: "image",
		size:       sizePixels, negative: negativePassthrough,
		extra: map[string]any{"output_format": "webp"},
	},
	registry.FamilySDXL: {
		Family: registry.FamilySDXL, CountParam: "num_outputs", MaxPerCall: Unbounded,
		ImageParam: "image",
		size:       sizePixels, negative: negativePrefixed, defaultNegative: ShortQualityGuard,
	},
	registry.FamilyCharacterRef: {
		Family: registry.FamilyCharacterRef, CountParam: "num_outputs", MaxPerCall: 4,
		ImageParam: "input_image", RequiresImage: true,
		size: sizePixels, negative: negativePassthrough, defaultNegative: QualityGuard,
	},
	registry.FamilyFaceRef: {
		Family: registry.FamilyFaceRef, CountParam: "num_outputs", MaxPerCall: 1,
		ImageParam: "image", RequiresImage: true,
		size: sizePixels, negative: negativePassthrough, defaultNegative: QualityGuard,
	},
	registry.FamilyDefault: {
		Family: registry.FamilyDefault, CountParam: "num_outputs", MaxPerCall: Unbounded,
		ImageParam: "image",
		size:       sizePixels, negative: negativePassthrough, defaultNegative: QualityGuard,
	},
}

// RuleFor returns the shaping rule of an image family.
func RuleFor(f registry.Family) (Rule, bool) {
	r, ok := rules[f]
	return r, ok
}
