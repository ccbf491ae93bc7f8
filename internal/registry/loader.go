package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// file is the on-disk layout of a models file.
type file struct {
	Models []Descriptor `json:"models" yaml:"models" toml:"models"`
}

// LoadFile reads extra model descriptors from a file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func LoadFile(path string) ([]Descriptor, error) {
	if path == "" {
		return nil, fmt.Errorf("empty models path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read models file: %w", err)
	}
	var f file
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &f)
	case ".json":
		err = json.Unmarshal(b, &f)
	case ".toml":
		err = toml.Unmarshal(b, &f)
	default:
		return nil, fmt.Errorf("unsupported models file extension: %s", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse models file: %w", err)
	}
	return f.Models, nil
}

// Load builds a registry from the built-in table, merged with the descriptors
// in path when path is set.
func Load(path string) (*Registry, error) {
	descs := Builtin()
	if path != "" {
		extra, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		descs = Merge(descs, extra)
	}
	return New(descs...)
}
