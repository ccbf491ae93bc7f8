package main

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"animegen/internal/common/fsutil"
	"animegen/internal/config"
	"animegen/internal/registry"
)

// app carries state shared by subcommands once the root pre-run resolved it.
type app struct {
	configPath string
	envFiles   []string
	logLevel   string
	logFormat  string

	cfg config.Config
	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "animegen",
		Short:         "Anime image and music generation server backed by Replicate",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", os.Getenv("ANIMEGEN_CONFIG"), "Config file (.yaml, .yml, .json, .toml)")
	root.PersistentFlags().StringSliceVar(&a.envFiles, "env-file", []string{".env", ".env.local"}, "Dotenv files to load when present")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug|info|warn|error (overrides config)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "Log format: json|console (overrides config)")

	root.AddCommand(newServeCmd(a), newModelsCmd(a), newCheckModelsCmd(a))
	return root
}

// init loads dotenv files, resolves configuration and builds the logger.
func (a *app) init(stderr io.Writer) error {
	if err := loadEnvFiles(a.envFiles); err != nil {
		return err
	}
	cfg, err := config.Resolve(a.configPath, os.LookupEnv)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.logFormat != "" {
		cfg.LogFormat = a.logFormat
	}
	a.cfg = cfg
	a.log, err = newLogger(stderr, cfg.LogLevel, cfg.LogFormat)
	return err
}

// loadEnvFiles loads each existing file. Variables already set in the
// process environment win.
func loadEnvFiles(paths []string) error {
	for _, p := range paths {
		if !fsutil.IsFile(p) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return err
		}
	}
	return nil
}

func newLogger(w io.Writer, level, format string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.Logger{}, err
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	if strings.EqualFold(format, "console") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

// registry builds the model registry from the built-in table, the optional
// models file and the configured music model reference.
func (a *app) registry() (*registry.Registry, error) {
	reg, err := registry.Load(a.cfg.ModelsFile)
	if err != nil {
		return nil, err
	}
	return reg.WithMusicRef(a.cfg.MusicModelRef), nil
}
