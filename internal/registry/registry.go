package registry

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when an identifier does not match any descriptor.
var ErrNotFound = errors.New("model not found")

// Registry is an immutable lookup table of model descriptors.
type Registry struct {
	images []Descriptor
	music  []Descriptor
	byID   map[string]int
}

// New validates descs and builds a registry. Descriptors with an empty Kind
// are image models.
func New(descs ...Descriptor) (*Registry, error) {
	r := &Registry{byID: make(map[string]int, len(descs))}
	for _, d := range descs {
		if d.Kind == "" {
			d.Kind = KindImage
		}
		if d.Speed == "" {
			d.Speed = SpeedMedium
		}
		if err := validate(d); err != nil {
			return nil, err
		}
		if _, dup := r.byID[d.ID]; dup {
			return nil, fmt.Errorf("duplicate model id %q", d.ID)
		}
		switch d.Kind {
		case KindImage:
			r.byID[d.ID] = len(r.images)
			r.images = append(r.images, d)
		case KindMusic:
			r.byID[d.ID] = len(r.music)
			r.music = append(r.music, d)
		}
	}
	return r, nil
}

// Default builds the registry from the built-in table.
func Default() *Registry {
	r, err := New(Builtin()...)
	if err != nil {
		panic("registry: invalid built-in table: " + err.Error())
	}
	return r
}

func validate(d Descriptor) error {
	if strings.TrimSpace(d.ID) == "" {
		return errors.New("model id is required")
	}
	switch d.Kind {
	case KindImage, KindMusic:
	default:
		return fmt.Errorf("model %q: unknown kind %q", d.ID, d.Kind)
	}
	switch d.Speed {
	case SpeedFast, SpeedMedium, SpeedSlow:
	default:
		return fmt.Errorf("model %q: unknown speed %q", d.ID, d.Speed)
	}
	if !knownFamily(d.Family) {
		return fmt.Errorf("model %q: unknown family %q", d.ID, d.Family)
	}
	// Music refs may be filled in later from configuration.
	if d.Kind == KindImage && strings.TrimSpace(d.Ref) == "" {
		return fmt.Errorf("model %q: upstream ref is required", d.ID)
	}
	if d.RequiresImage && !d.SupportsImage {
		return fmt.Errorf("model %q: requires_image without supports_image", d.ID)
	}
	return nil
}

// Resolve returns the image model with the given id.
func (r *Registry) Resolve(id string) (Descriptor, error) {
	if i, ok := r.byID[id]; ok && i < len(r.images) && r.images[i].ID == id {
		return r.images[i], nil
	}
	return Descriptor{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// ResolveMusic returns the music model with the given id, falling back to
// the first music model when id is empty or unknown.
func (r *Registry) ResolveMusic(id string) (Descriptor, error) {
	if i, ok := r.byID[id]; ok && i < len(r.music) && r.music[i].ID == id {
		return r.music[i], nil
	}
	if len(r.music) == 0 {
		return Descriptor{}, fmt.Errorf("%w: no music models configured", ErrNotFound)
	}
	return r.music[0], nil
}

// Models returns the image models in table order.
func (r *Registry) Models() []Descriptor {
	return append([]Descriptor(nil), r.images...)
}

// MusicModels returns the music models in table order.
func (r *Registry) MusicModels() []Descriptor {
	return append([]Descriptor(nil), r.music...)
}

// WithMusicRef returns a copy of the registry whose default music model
// calls ref. An empty ref leaves the registry unchanged.
func (r *Registry) WithMusicRef(ref string) *Registry {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return r
	}
	out := &Registry{images: r.Models(), music: r.MusicModels(), byID: make(map[string]int, len(r.byID))}
	for k, v := range r.byID {
		out.byID[k] = v
	}
	if len(out.music) > 0 {
		out.music[0].Ref = ref
	}
	return out
}

// Merge returns the descriptors of base overridden and extended by extra.
// Entries of extra replace base entries with the same id in place; new ids
// are appended.
func Merge(base []Descriptor, extra []Descriptor) []Descriptor {
	out := append([]Descriptor(nil), base...)
	idx := make(map[string]int, len(out))
	for i, d := range out {
		idx[d.ID] = i
	}
	for _, d := range extra {
		if i, ok := idx[d.ID]; ok {
			out[i] = d
			continue
		}
		idx[d.ID] = len(out)
		out = append(out, d)
	}
	return out
}
