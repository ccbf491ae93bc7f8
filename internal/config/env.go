package config

import (
	"fmt"
	"strconv"
	"strings"

	"animegen/internal/common/fsutil"
)

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// FromEnv reads the environment overrides. Unset variables leave fields at
// their zero value so the result can be merged over file settings.
func FromEnv(lookup LookupFunc) (Config, error) {
	var cfg Config
	str := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v, ok := lookup(k); ok && strings.TrimSpace(v) != "" {
				*dst = strings.TrimSpace(v)
				return
			}
		}
	}
	str(&cfg.Addr, "ANIMEGEN_ADDR")
	if cfg.Addr == "" {
		if v, ok := lookup("PORT"); ok && strings.TrimSpace(v) != "" {
			cfg.Addr = ":" + strings.TrimSpace(v)
		}
	}
	str(&cfg.ReplicateToken, "REPLICATE_API_TOKEN", "REPLICATE_API_KEY")
	str(&cfg.ReplicateBaseURL, "REPLICATE_BASE_URL")
	str(&cfg.MusicModelRef, "REPLICATE_MUSIC_MODEL_ID")
	str(&cfg.ModelsFile, "ANIMEGEN_MODELS_FILE")
	str(&cfg.LogLevel, "ANIMEGEN_LOG_LEVEL")
	str(&cfg.LogFormat, "ANIMEGEN_LOG_FORMAT")
	str(&cfg.HTTPLogLevel, "ANIMEGEN_HTTP_LOG_LEVEL")
	str(&cfg.RemoveBackgroundRef, "ANIMEGEN_REMOVE_BG_MODEL")
	str(&cfg.SentryDSN, "SENTRY_DSN")
	str(&cfg.Environment, "ANIMEGEN_ENV", "NODE_ENV")

	if v, ok := lookup("ANIMEGEN_PROMPT_PREFIX"); ok {
		cfg.PromptPrefix = &v
	}
	if v, ok := lookup("ANIMEGEN_CORS_ORIGINS"); ok && strings.TrimSpace(v) != "" {
		cfg.CORSEnabled = true
		cfg.CORSAllowedOrigins = SplitCSV(v)
	}

	var err error
	if cfg.Parallel, err = envBool(lookup, "ANIMEGEN_PARALLEL"); err != nil {
		return cfg, err
	}
	if cfg.MaxParallel, err = envInt(lookup, "ANIMEGEN_MAX_PARALLEL"); err != nil {
		return cfg, err
	}
	n, err := envInt(lookup, "ANIMEGEN_MAX_BODY_BYTES")
	if err != nil {
		return cfg, err
	}
	cfg.MaxBodyBytes = int64(n)
	if v, ok := lookup("ANIMEGEN_REQUEST_TIMEOUT"); ok {
		if err := cfg.RequestTimeout.set(v); err != nil {
			return cfg, fmt.Errorf("ANIMEGEN_REQUEST_TIMEOUT: %w", err)
		}
	}
	if v, ok := lookup("ANIMEGEN_POLL_INTERVAL"); ok {
		if err := cfg.PollInterval.set(v); err != nil {
			return cfg, fmt.Errorf("ANIMEGEN_POLL_INTERVAL: %w", err)
		}
	}
	return cfg, nil
}

func envBool(lookup LookupFunc, key string) (bool, error) {
	v, ok := lookup(key)
	if !ok || strings.TrimSpace(v) == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %q", key, v)
	}
	return b, nil
}

func envInt(lookup LookupFunc, key string) (int, error) {
	v, ok := lookup(key)
	if !ok || strings.TrimSpace(v) == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", key, v)
	}
	return n, nil
}

// Resolve builds the effective configuration: defaults, then the optional
// file at path, then the environment.
// A leading "~" in path and in the models file is expanded.
func Resolve(path string, lookup LookupFunc) (Config, error) {
	cfg := Defaults()
	if path != "" {
		p, err := fsutil.ExpandHome(path)
		if err != nil {
			return cfg, err
		}
		file, err := Load(p)
		if err != nil {
			return cfg, err
		}
		cfg = Merge(cfg, file)
	}
	env, err := FromEnv(lookup)
	if err != nil {
		return cfg, err
	}
	cfg = Merge(cfg, env)
	if cfg.ModelsFile, err = fsutil.ExpandHome(cfg.ModelsFile); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// SplitCSV splits a comma-separated list, dropping empty items.
func SplitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
