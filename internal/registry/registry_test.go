package registry

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefaultResolve(t *testing.T) {
	r := Default()
	d, err := r.Resolve("flux-dev")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if d.Family != FamilyFlux || d.Ref != "black-forest-labs/flux-dev" {
		t.Fatalf("unexpected descriptor: %+v", d)
	}
	again, _ := r.Resolve("flux-dev")
	if !reflect.DeepEqual(d, again) {
		t.Fatalf("resolve not idempotent: %+v vs %+v", d, again)
	}
}

func TestResolveUnknown(t *testing.T) {
	r := Default()
	if _, err := r.Resolve("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	// music ids are not image models
	if _, err := r.Resolve("musicgen"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for music id, got %v", err)
	}
}

func TestResolveReturnsCopy(t *testing.T) {
	r := Default()
	d, _ := r.Resolve("sdxl")
	d.Name = "mutated"
	d2, _ := r.Resolve("sdxl")
	if d2.Name == "mutated" {
		t.Fatalf("registry entry was mutated through a resolved copy")
	}
	ms := r.Models()
	ms[0].ID = "x"
	if r.Models()[0].ID == "x" {
		t.Fatalf("Models exposes internal slice")
	}
}

func TestResolveMusicFallback(t *testing.T) {
	r := Default()
	for _, id := range []string{"", "unknown", "musicgen"} {
		d, err := r.ResolveMusic(id)
		if err != nil {
			t.Fatalf("%q: %v", id, err)
		}
		if d.ID != "musicgen" || d.Ref != DefaultMusicRef {
			t.Fatalf("%q: unexpected music model %+v", id, d)
		}
	}
	custom := r.WithMusicRef("me/my-music:abc")
	d, _ := custom.ResolveMusic("")
	if d.Ref != "me/my-music:abc" {
		t.Fatalf("music ref override not applied: %+v", d)
	}
	if orig, _ := r.ResolveMusic(""); orig.Ref != DefaultMusicRef {
		t.Fatalf("override leaked into source registry: %+v", orig)
	}
}

func TestNewValidation(t *testing.T) {
	cases := []struct {
		name string
		d    Descriptor
	}{
		{"empty id", Descriptor{Ref: "a/b", Family: FamilyDefault}},
		{"unknown family", Descriptor{ID: "x", Ref: "a/b", Family: "nope"}},
		{"missing ref", Descriptor{ID: "x", Family: FamilyDefault}},
		{"bad speed", Descriptor{ID: "x", Ref: "a/b", Family: FamilyDefault, Speed: "warp"}},
		{"requires without supports", Descriptor{ID: "x", Ref: "a/b", Family: FamilyFaceRef, RequiresImage: true}},
	}
	for _, c := range cases {
		if _, err := New(c.d); err == nil {
			t.Fatalf("%s: expected error", c.name)
		}
	}
	if _, err := New(Descriptor{ID: "x", Ref: "a/b", Family: FamilyDefault}, Descriptor{ID: "x", Ref: "a/c", Family: FamilyDefault}); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestBuiltinTableIsValid(t *testing.T) {
	r := Default()
	if n := len(r.Models()); n != 10 {
		t.Fatalf("expected 10 image models, got %d", n)
	}
	for _, d := range r.Models() {
		if d.RequiresImage && !d.SupportsImage {
			t.Fatalf("%s requires an image it cannot use", d.ID)
		}
	}
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadFileFormats(t *testing.T) {
	yamlPath := writeTempFile(t, "models.yaml", "models:\n  - id: sd35-large\n    name: SD 3.5 Large\n    ref: stability-ai/stable-diffusion-3.5-large\n    family: sd35\n    speed: slow\n")
	jsonPath := writeTempFile(t, "models.json", `{"models":[{"id":"sd35-large","name":"SD 3.5 Large","ref":"stability-ai/stable-diffusion-3.5-large","family":"sd35","speed":"slow"}]}`)
	tomlPath := writeTempFile(t, "models.toml", "[[models]]\nid = \"sd35-large\"\nname = \"SD 3.5 Large\"\nref = \"stability-ai/stable-diffusion-3.5-large\"\nfamily = \"sd35\"\nspeed = \"slow\"\n")
	for _, p := range []string{yamlPath, jsonPath, tomlPath} {
		descs, err := LoadFile(p)
		if err != nil {
			t.Fatalf("%s: %v", p, err)
		}
		if len(descs) != 1 || descs[0].ID != "sd35-large" || descs[0].Family != FamilySD35 || descs[0].Speed != SpeedSlow {
			t.Fatalf("%s: unexpected %+v", p, descs)
		}
	}
}

func TestLoadFileErrors(t *testing.T) {
	if _, err := LoadFile(""); err == nil {
		t.Fatalf("expected error on empty path")
	}
	p := writeTempFile(t, "models.txt", "nope")
	if _, err := LoadFile(p); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
}

func TestLoadMergesOverBuiltins(t *testing.T) {
	p := writeTempFile(t, "models.yaml", "models:\n  - id: flux-dev\n    name: Flux Dev (pinned)\n    ref: black-forest-labs/flux-dev:123\n    family: flux\n  - id: sd35-large\n    name: SD 3.5 Large\n    ref: stability-ai/stable-diffusion-3.5-large\n    family: sd35\n")
	r, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	d, err := r.Resolve("flux-dev")
	if err != nil || d.Name != "Flux Dev (pinned)" {
		t.Fatalf("override not applied: %+v err=%v", d, err)
	}
	if _, err := r.Resolve("sd35-large"); err != nil {
		t.Fatalf("extra model missing: %v", err)
	}
	if n := len(r.Models()); n != 11 {
		t.Fatalf("expected 11 image models, got %d", n)
	}
}
