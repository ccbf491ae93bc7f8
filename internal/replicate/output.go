package replicate

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// NormalizeOutput flattens a prediction output into a list of locators.
// Accepted shapes: a string, an object with a "url" field, or a list of
// either. A null output yields an empty list.
func NormalizeOutput(raw json.RawMessage) ([]string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("decode output: %w", err)
		}
		if s == "" {
			return nil, nil
		}
		return []string{s}, nil
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("decode output: %w", err)
		}
		var out []string
		for _, it := range items {
			locs, err := NormalizeOutput(it)
			if err != nil {
				return nil, err
			}
			out = append(out, locs...)
		}
		return out, nil
	case '{':
		var obj struct {
			URL string `json:"url"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, fmt.Errorf("decode output: %w", err)
		}
		if obj.URL == "" {
			return nil, nil
		}
		return []string{obj.URL}, nil
	default:
		return nil, fmt.Errorf("unsupported output shape: %.40s", raw)
	}
}
