package registry

import "animegen/pkg/types"

// Family tags a descriptor with the request shaping rule used to call it.
type Family string

const (
	FamilyFlux         Family = "flux"
	FamilyFluxRedux    Family = "flux-redux"
	FamilySD35         Family = "sd35"
	FamilySDXL         Family = "sdxl"
	FamilyCharacterRef Family = "character-ref"
	FamilyFaceRef      Family = "face-ref"
	FamilyDefault      Family = "default"
	FamilyMusic        Family = "music"
)

// Families lists every family tag a descriptor may carry.
var Families = []Family{
	FamilyFlux, FamilyFluxRedux, FamilySD35, FamilySDXL,
	FamilyCharacterRef, FamilyFaceRef, FamilyDefault, FamilyMusic,
}

func knownFamily(f Family) bool {
	for _, k := range Families {
		if k == f {
			return true
		}
	}
	return false
}

// Speed is an approximate latency class.
type Speed string

const (
	SpeedFast   Speed = "fast"
	SpeedMedium Speed = "medium"
	SpeedSlow   Speed = "slow"
)

// Kind separates image models from music models.
type Kind string

const (
	KindImage Kind = "image"
	KindMusic Kind = "music"
)

// Descriptor describes one upstream model and its calling conventions.
type Descriptor struct {
	ID                 string `json:"id" yaml:"id" toml:"id"`
	Name               string `json:"name" yaml:"name" toml:"name"`
	Ref                string `json:"ref" yaml:"ref" toml:"ref"`
	Description        string `json:"description" yaml:"description" toml:"description"`
	Style              string `json:"style" yaml:"style" toml:"style"`
	Speed              Speed  `json:"speed" yaml:"speed" toml:"speed"`
	Family             Family `json:"family" yaml:"family" toml:"family"`
	Kind               Kind   `json:"kind" yaml:"kind" toml:"kind"`
	SupportsImage      bool   `json:"supports_image" yaml:"supports_image" toml:"supports_image"`
	RequiresImage      bool   `json:"requires_image" yaml:"requires_image" toml:"requires_image"`
	SupportsBackground bool   `json:"supports_background" yaml:"supports_background" toml:"supports_background"`
}

// View converts an image descriptor to its API representation.
func (d Descriptor) View() types.Model {
	return types.Model{
		ID:                 d.ID,
		Name:               d.Name,
		Description:        d.Description,
		Style:              d.Style,
		Speed:              string(d.Speed),
		SupportsImage:      d.SupportsImage,
		RequiresImage:      d.RequiresImage,
		SupportsBackground: d.SupportsBackground,
	}
}

// MusicView converts a music descriptor to its API representation.
func (d Descriptor) MusicView() types.MusicModel {
	return types.MusicModel{ID: d.ID, Name: d.Name, Description: d.Description}
}
