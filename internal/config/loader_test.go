package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func envMap(m map[string]string) LookupFunc {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestLoadYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", "addr: :9999\nmodels_file: /tmp/m.yaml\nparallel: true\nmax_parallel: 3\nrequest_timeout: 90s\nprompt_prefix: \"\"\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9999" || cfg.ModelsFile != "/tmp/m.yaml" || !cfg.Parallel || cfg.MaxParallel != 3 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if cfg.RequestTimeout.Std() != 90*time.Second {
		t.Fatalf("timeout=%v", cfg.RequestTimeout.Std())
	}
	if cfg.PromptPrefix == nil || *cfg.PromptPrefix != "" {
		t.Fatalf("explicit empty prefix not kept: %v", cfg.PromptPrefix)
	}
}

func TestLoadJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.json", `{"addr":":7070","music_model_ref":"meta/musicgen:abc","request_timeout":30,"cors_enabled":true,"cors_allowed_origins":["http://localhost:5173"]}`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":7070" || cfg.MusicModelRef != "meta/musicgen:abc" || !cfg.CORSEnabled || len(cfg.CORSAllowedOrigins) != 1 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if cfg.RequestTimeout.Std() != 30*time.Second {
		t.Fatalf("timeout=%v", cfg.RequestTimeout.Std())
	}
}

func TestLoadTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.toml", "addr=\":8081\"\npoll_interval=\"500ms\"\nsentry_dsn=\"https://k@sentry.example/1\"\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8081" || cfg.PollInterval.Std() != 500*time.Millisecond || cfg.SentryDSN == "" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error on empty path")
	}
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.txt", "not supported")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
	p = writeTempFile(t, d, "bad.yaml", "request_timeout: soon\n")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected invalid duration error")
	}
}

func TestFromEnv(t *testing.T) {
	cfg, err := FromEnv(envMap(map[string]string{
		"PORT":                     "4000",
		"REPLICATE_API_TOKEN":      " r8_x ",
		"REPLICATE_MUSIC_MODEL_ID": "meta/musicgen:v2",
		"ANIMEGEN_PARALLEL":        "true",
		"ANIMEGEN_MAX_PARALLEL":    "2",
		"ANIMEGEN_CORS_ORIGINS":    "http://a, http://b",
		"ANIMEGEN_REQUEST_TIMEOUT": "2m",
		"NODE_ENV":                 "production",
	}))
	if err != nil {
		t.Fatalf("env: %v", err)
	}
	if cfg.Addr != ":4000" || cfg.ReplicateToken != "r8_x" || cfg.MusicModelRef != "meta/musicgen:v2" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if !cfg.Parallel || cfg.MaxParallel != 2 || !cfg.CORSEnabled || len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if cfg.RequestTimeout.Std() != 2*time.Minute || cfg.Environment != "production" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestResolveAcceptsLegacyKeyName(t *testing.T) {
	cfg, err := Resolve("", envMap(map[string]string{"REPLICATE_API_KEY": "r8_legacy"}))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.ReplicateToken != "r8_legacy" {
		t.Fatalf("REPLICATE_API_KEY ignored: %q", cfg.ReplicateToken)
	}
	cfg, err = FromEnv(envMap(map[string]string{
		"REPLICATE_API_TOKEN": "r8_new",
		"REPLICATE_API_KEY":   "r8_legacy",
	}))
	if err != nil {
		t.Fatalf("env: %v", err)
	}
	if cfg.ReplicateToken != "r8_new" {
		t.Fatalf("REPLICATE_API_TOKEN should take precedence: %q", cfg.ReplicateToken)
	}
}

func TestFromEnvInvalid(t *testing.T) {
	if _, err := FromEnv(envMap(map[string]string{"ANIMEGEN_PARALLEL": "maybe"})); err == nil {
		t.Fatalf("expected bool error")
	}
	if _, err := FromEnv(envMap(map[string]string{"ANIMEGEN_MAX_PARALLEL": "x"})); err == nil {
		t.Fatalf("expected int error")
	}
}

func TestResolvePrecedence(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", "addr: :9000\nlog_level: debug\n")
	cfg, err := Resolve(p, envMap(map[string]string{"ANIMEGEN_ADDR": ":9100"}))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Addr != ":9100" {
		t.Fatalf("env should win over file: %s", cfg.Addr)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("file should win over defaults: %s", cfg.LogLevel)
	}
	if cfg.MaxParallel != 4 || cfg.PollInterval.Std() != time.Second {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoadMalformed(t *testing.T) {
	d := t.TempDir()
	cases := map[string]string{
		"bad.yaml": "addr: :8080\n: broken\n",
		"bad.json": `{ "addr": ":8080", "models_file": }`,
		"bad.toml": "addr=:8080\nmodels_file\n",
	}
	for name, body := range cases {
		if _, err := Load(writeTempFile(t, d, name, body)); err == nil {
			t.Fatalf("%s: expected parse error", name)
		}
	}
	if _, err := Load(filepath.Join(d, "missing.yaml")); err == nil {
		t.Fatalf("expected error for nonexistent file")
	}
}

func TestSplitCSV(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"a,,c", []string{"a", "c"}},
		{"", nil},
	}
	for _, c := range cases {
		got := SplitCSV(c.in)
		if len(got) != len(c.want) {
			t.Fatalf("%q -> %v, want %v", c.in, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("%q -> %v, want %v", c.in, got, c.want)
			}
		}
	}
}

func TestResolveExpandsModelsFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	cfg, err := Resolve("", envMap(map[string]string{"ANIMEGEN_MODELS_FILE": "~/models.yaml"}))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.ModelsFile != filepath.Join(home, "models.yaml") {
		t.Fatalf("models file not expanded: %s", cfg.ModelsFile)
	}
}
