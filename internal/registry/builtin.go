package registry

import "animegen/pkg/types"

// DefaultMusicRef is used when no music model reference is configured.
const DefaultMusicRef = "meta/musicgen"

// RemoveBackgroundRef is the model used for optional background removal.
const RemoveBackgroundRef = "lucataco/remove-bg:95fcc2a26d3899cd6c2691c900465aaeff466285a65c14638cc5f36f34befaf1"

// Builtin returns the built-in model table. Character reference models come
// first, then anime text-to-image models, then the Flux models.
func Builtin() []Descriptor {
	return []Descriptor{
		{
			ID: "flux-redux", Name: "Flux Redux",
			Ref:         "black-forest-labs/flux-redux-dev",
			Description: "Image variations - keeps character features",
			Style:       "Character Reference", Speed: SpeedMedium,
			Family: FamilyFluxRedux, SupportsImage: true, RequiresImage: true,
		},
		{
			ID: "photomaker", Name: "PhotoMaker",
			Ref:         "tencentarc/photomaker:ddfc2b08d209f9fa8c1eca692712918bd449f695dabb4a958da31802a9570fe4",
			Description: "Best for consistent character identity",
			Style:       "Character Reference", Speed: SpeedMedium,
			Family: FamilyCharacterRef, SupportsImage: true, RequiresImage: true,
		},
		{
			ID: "photomaker-style", Name: "PhotoMaker Style",
			Ref:         "tencentarc/photomaker-style:467d062309da518648ba89d226490e02b8ed09b5abc15026e54e31c5a8cd0769",
			Description: "Character + comic/illustration style",
			Style:       "Character + Style", Speed: SpeedMedium,
			Family: FamilyCharacterRef, SupportsImage: true, RequiresImage: true,
		},
		{
			ID: "instant-id", Name: "InstantID",
			Ref:         "zsxkib/instant-id:2e4785a4d80dadf580077b2244c8d7c05d8e3faac04a04c02d8e099dd2876789",
			Description: "Needs face photo - realistic consistency",
			Style:       "Face Reference", Speed: SpeedMedium,
			Family: FamilyFaceRef, SupportsImage: true, RequiresImage: true,
		},
		{
			ID: "sdxl", Name: "SDXL (img2img)",
			Ref:         "stability-ai/sdxl:7762fd07cf82c948538e41f63f77d685e02b063e37e496e96eefd46c929f9bdc",
			Description: "Use reference as starting point",
			Style:       "Versatile", Speed: SpeedMedium,
			Family: FamilySDXL, SupportsImage: true, SupportsBackground: true,
		},
		{
			ID: "animagine-xl-31", Name: "Animagine XL 3.1",
			Ref:         "cjwbw/animagine-xl-3.1:6afe2e6b27dad2d6f480b59195c221884b6acc589ff4d05ff0e5fc058690fbb9",
			Description: "Best anime model - high quality characters",
			Style:       "Modern Anime", Speed: SpeedMedium,
			Family: FamilyDefault, SupportsBackground: true,
		},
		{
			ID: "anything-v4", Name: "Anything V4",
			Ref:         "cjwbw/anything-v4.0:42a996d39a96aedc57b2e0aa8105dea39c9c89d9d266caf6bb4327a1c191b061",
			Description: "Versatile anime style generator",
			Style:       "Classic Anime", Speed: SpeedFast,
			Family: FamilyDefault, SupportsBackground: true,
		},
		{
			ID: "dreamshaper-xl", Name: "DreamShaper XL",
			Ref:         "lucataco/dreamshaper-xl-turbo:0a1710e0187b01a255302738ca0158ff02a22f4638679533e111082f9dd1b615",
			Description: "Fantasy and dreamy anime styles",
			Style:       "Fantasy Anime", Speed: SpeedFast,
			Family: FamilyDefault, SupportsBackground: true,
		},
		{
			ID: "flux-schnell", Name: "Flux Schnell",
			Ref:         "black-forest-labs/flux-schnell",
			Description: "Fastest model - great for anime with right prompts",
			Style:       "Versatile", Speed: SpeedFast,
			Family: FamilyFlux, SupportsBackground: true,
		},
		{
			ID: "flux-dev", Name: "Flux Dev",
			Ref:         "black-forest-labs/flux-dev",
			Description: "High-quality Flux - detailed anime art",
			Style:       "Versatile", Speed: SpeedMedium,
			Family: FamilyFlux, SupportsBackground: true,
		},
		{
			ID: "musicgen", Name: "MusicGen (instrumental)",
			Ref:         DefaultMusicRef,
			Description: "Prompt-to-music, best for instrumental BG loops",
			Speed:       SpeedSlow, Family: FamilyMusic, Kind: KindMusic,
		},
	}
}

// Dimensions are the output size presets offered to clients.
var Dimensions = []types.Dimension{
	{Label: "1:1 (Square)", Width: 1024, Height: 1024},
	{Label: "16:9 (Landscape)", Width: 1344, Height: 768},
	{Label: "9:16 (Portrait)", Width: 768, Height: 1344},
}
