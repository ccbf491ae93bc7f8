package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and will be replaced by Defaults.
type Config struct {
	Addr                string   `json:"addr" yaml:"addr" toml:"addr"`
	ReplicateToken      string   `json:"replicate_api_token" yaml:"replicate_api_token" toml:"replicate_api_token"`
	ReplicateBaseURL    string   `json:"replicate_base_url" yaml:"replicate_base_url" toml:"replicate_base_url"`
	MusicModelRef       string   `json:"music_model_ref" yaml:"music_model_ref" toml:"music_model_ref"`
	ModelsFile          string   `json:"models_file" yaml:"models_file" toml:"models_file"`
	LogLevel            string   `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat           string   `json:"log_format" yaml:"log_format" toml:"log_format"`
	HTTPLogLevel        string   `json:"http_log_level" yaml:"http_log_level" toml:"http_log_level"`
	CORSEnabled         bool     `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled"`
	CORSAllowedOrigins  []string `json:"cors_allowed_origins" yaml:"cors_allowed_origins" toml:"cors_allowed_origins"`
	MaxBodyBytes        int64    `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	RequestTimeout      Duration `json:"request_timeout" yaml:"request_timeout" toml:"request_timeout"`
	PollInterval        Duration `json:"poll_interval" yaml:"poll_interval" toml:"poll_interval"`
	Parallel            bool     `json:"parallel" yaml:"parallel" toml:"parallel"`
	MaxParallel         int      `json:"max_parallel" yaml:"max_parallel" toml:"max_parallel"`
	PromptPrefix        *string  `json:"prompt_prefix" yaml:"prompt_prefix" toml:"prompt_prefix"`
	RemoveBackgroundRef string   `json:"remove_background_ref" yaml:"remove_background_ref" toml:"remove_background_ref"`
	SentryDSN           string   `json:"sentry_dsn" yaml:"sentry_dsn" toml:"sentry_dsn"`
	Environment         string   `json:"environment" yaml:"environment" toml:"environment"`
}

// Defaults returns the baseline configuration.
func Defaults() Config {
	return Config{
		Addr:         ":3001",
		LogLevel:     "info",
		LogFormat:    "json",
		HTTPLogLevel: "info",
		MaxParallel:  4,
		PollInterval: Duration(time.Second),
		Environment:  "development",
	}
}

// Duration is a time.Duration read from strings such as "30s" or from a
// number of seconds.
type Duration time.Duration

func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d *Duration) set(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*d = 0
		return nil
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		*d = Duration(n * float64(time.Second))
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q", s)
	}
	*d = Duration(v)
	return nil
}

func (d *Duration) UnmarshalText(b []byte) error { return d.set(string(b)) }

func (d *Duration) UnmarshalJSON(b []byte) error {
	return d.set(strings.Trim(string(b), `"`))
}

func (d *Duration) UnmarshalYAML(n *yaml.Node) error { return d.set(n.Value) }

func (d Duration) MarshalText() ([]byte, error) { return []byte(time.Duration(d).String()), nil }

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cfg)
	case ".json":
		err = json.Unmarshal(b, &cfg)
	case ".toml":
		err = toml.Unmarshal(b, &cfg)
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Merge overlays the non-zero fields of over onto base.
func Merge(base, over Config) Config {
	if over.Addr != "" {
		base.Addr = over.Addr
	}
	if over.ReplicateToken != "" {
		base.ReplicateToken = over.ReplicateToken
	}
	if over.ReplicateBaseURL != "" {
		base.ReplicateBaseURL = over.ReplicateBaseURL
	}
	if over.MusicModelRef != "" {
		base.MusicModelRef = over.MusicModelRef
	}
	if over.ModelsFile != "" {
		base.ModelsFile = over.ModelsFile
	}
	if over.LogLevel != "" {
		base.LogLevel = over.LogLevel
	}
	if over.LogFormat != "" {
		base.LogFormat = over.LogFormat
	}
	if over.HTTPLogLevel != "" {
		base.HTTPLogLevel = over.HTTPLogLevel
	}
	if over.CORSEnabled {
		base.CORSEnabled = true
	}
	if len(over.CORSAllowedOrigins) > 0 {
		base.CORSAllowedOrigins = over.CORSAllowedOrigins
	}
	if over.MaxBodyBytes > 0 {
		base.MaxBodyBytes = over.MaxBodyBytes
	}
	if over.RequestTimeout > 0 {
		base.RequestTimeout = over.RequestTimeout
	}
	if over.PollInterval > 0 {
		base.PollInterval = over.PollInterval
	}
	if over.Parallel {
		base.Parallel = true
	}
	if over.MaxParallel > 0 {
		base.MaxParallel = over.MaxParallel
	}
	if over.PromptPrefix != nil {
		base.PromptPrefix = over.PromptPrefix
	}
	if over.RemoveBackgroundRef != "" {
		base.RemoveBackgroundRef = over.RemoveBackgroundRef
	}
	if over.SentryDSN != "" {
		base.SentryDSN = over.SentryDSN
	}
	if over.Environment != "" {
		base.Environment = over.Environment
	}
	return base
}
