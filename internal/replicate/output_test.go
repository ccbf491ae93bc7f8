package replicate

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeOutput(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{"string", `"https://x/a.png"`, []string{"https://x/a.png"}},
		{"list", `["https://x/a.png","https://x/b.png"]`, []string{"https://x/a.png", "https://x/b.png"}},
		{"object", `{"url":"https://x/a.png"}`, []string{"https://x/a.png"}},
		{"mixed list", `["https://x/a.png",{"url":"https://x/b.png"}]`, []string{"https://x/a.png", "https://x/b.png"}},
		{"null", `null`, nil},
		{"empty", ``, nil},
		{"object without url", `{"other":1}`, nil},
	}
	for _, c := range cases {
		got, err := NormalizeOutput(json.RawMessage(c.raw))
		require.NoError(t, err, c.name)
		assert.Equal(t, c.want, got, c.name)
	}
}

func TestNormalizeOutputRejectsScalars(t *testing.T) {
	_, err := NormalizeOutput(json.RawMessage(`42`))
	assert.Error(t, err)
}
