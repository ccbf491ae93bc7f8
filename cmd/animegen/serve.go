package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"

	"animegen/internal/generate"
	"animegen/internal/httpapi"
	"animegen/internal/replicate"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		addr     string
		parallel bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Addr = addr
			}
			if cmd.Flags().Changed("parallel") {
				a.cfg.Parallel = parallel
			}
			return a.serve(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address, e.g. :3001")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "Issue sub-batches concurrently")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	cfg := a.cfg
	log := a.log

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.Environment,
			Release:     "animegen@" + version,
			BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
				if event.Request != nil {
					delete(event.Request.Headers, "Authorization")
				}
				return event
			},
		}); err != nil {
			log.Warn().Err(err).Msg("sentry init failed; continuing without error reporting")
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	reg, err := a.registry()
	if err != nil {
		return err
	}
	client := replicate.New(replicate.Config{
		BaseURL:      cfg.ReplicateBaseURL,
		Token:        cfg.ReplicateToken,
		PollInterval: cfg.PollInterval.Std(),
		Logger:       log,
	})
	if !client.Configured() {
		log.Warn().Msg("neither REPLICATE_API_TOKEN nor REPLICATE_API_KEY is set; generation requests will fail")
	}
	svc := generate.New(generate.Config{
		Registry:            reg,
		Upstream:            client,
		PromptPrefix:        cfg.PromptPrefix,
		Parallel:            cfg.Parallel,
		MaxParallel:         cfg.MaxParallel,
		RemoveBackgroundRef: cfg.RemoveBackgroundRef,
		Secrets:             []string{client.Token()},
		Logger:              log,
		Publisher:           generate.LogPublisher{Logger: log},
	})

	httpapi.SetLogger(log)
	httpapi.SetRequestLogLevel(cfg.HTTPLogLevel)
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetRequestTimeout(cfg.RequestTimeout.Std())
	httpapi.SetCORSOptions(cfg.CORSEnabled, cfg.CORSAllowedOrigins,
		[]string{http.MethodGet, http.MethodPost, http.MethodOptions},
		[]string{"Content-Type", "X-Log-Level"})

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	httpapi.SetBaseContext(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.NewMux(svc),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Int("models", len(reg.Models())).Bool("parallel", cfg.Parallel).Msg("animegen listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown error")
		return err
	}
	return nil
}
