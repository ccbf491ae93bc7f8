package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"animegen/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	ListModels() []types.Model
	ListMusicModels() []types.MusicModel
	Dimensions() []types.Dimension
	Generate(ctx context.Context, req types.GenerateRequest) (types.GenerateResponse, error)
	Music(ctx context.Context, req types.MusicRequest) (types.MusicResponse, error)
	Ready() bool
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	r.Use(middleware.Compress(5))
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
			MaxAge:         300,
		}))
	}

	r.Route("/api", func(r chi.Router) {
		// listModels godoc
		// @Summary      List image models
		// @Tags         models
		// @Produce      json
		// @Success      200  {object}  types.ModelsResponse
		// @Router       /api/models [get]
		r.Get("/models", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, types.ModelsResponse{Models: svc.ListModels()})
		})

		// listMusicModels godoc
		// @Summary      List music models
		// @Tags         models
		// @Produce      json
		// @Success      200  {object}  types.MusicModelsResponse
		// @Router       /api/music/models [get]
		r.Get("/music/models", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, types.MusicModelsResponse{Models: svc.ListMusicModels()})
		})

		// dimensions godoc
		// @Summary      List output size presets
		// @Tags         models
		// @Produce      json
		// @Success      200  {object}  types.DimensionsResponse
		// @Router       /api/dimensions [get]
		r.Get("/dimensions", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, types.DimensionsResponse{Dimensions: svc.Dimensions()})
		})

		// generate godoc
		// @Summary      Generate images
		// @Tags         generate
		// @Accept       json
		// @Produce      json
		// @Param        request  body      types.GenerateRequest  true  "generation request"
		// @Success      200      {object}  types.GenerateResponse
		// @Failure      400      {object}  types.ErrorResponse
		// @Failure      500      {object}  types.ErrorResponse
		// @Failure      503      {object}  types.ErrorResponse
		// @Router       /api/generate [post]
		r.Post("/generate", inflight("/api/generate", func(w http.ResponseWriter, r *http.Request) {
			var req types.GenerateRequest
			if !decodeJSON(w, r, &req) {
				return
			}
			lvl := requestLogLevel(r)
			start := time.Now()
			logStart(r, lvl, "generate", map[string]any{
				"model":       req.ModelID,
				"num_outputs": req.NumOutputs,
				"type":        string(req.GenerationType),
				"has_image":   req.ReferenceImage != "",
			})
			ctx, cancel := requestContext(r)
			defer cancel()
			resp, err := svc.Generate(ctx, req)
			if err != nil {
				if aborted(r) {
					return
				}
				status, msg := responseFor(err)
				writeJSONError(w, status, msg)
				logEnd(r, lvl, "generate", status, start, msg)
				return
			}
			writeJSON(w, http.StatusOK, resp)
			logEnd(r, lvl, "generate", http.StatusOK, start, "")
		}))

		// music godoc
		// @Summary      Generate an instrumental track
		// @Tags         generate
		// @Accept       json
		// @Produce      json
		// @Param        request  body      types.MusicRequest  true  "music request"
		// @Success      200      {object}  types.MusicResponse
		// @Failure      400      {object}  types.ErrorResponse
		// @Failure      500      {object}  types.ErrorResponse
		// @Failure      503      {object}  types.ErrorResponse
		// @Router       /api/music [post]
		r.Post("/music", inflight("/api/music", func(w http.ResponseWriter, r *http.Request) {
			var req types.MusicRequest
			if !decodeJSON(w, r, &req) {
				return
			}
			lvl := requestLogLevel(r)
			start := time.Now()
			logStart(r, lvl, "music", map[string]any{"model": req.ModelID, "duration": req.Duration})
			ctx, cancel := requestContext(r)
			defer cancel()
			resp, err := svc.Music(ctx, req)
			if err != nil {
				if aborted(r) {
					return
				}
				status, msg := responseFor(err)
				writeJSONError(w, status, msg)
				logEnd(r, lvl, "music", status, start, msg)
				return
			}
			writeJSON(w, http.StatusOK, resp)
			logEnd(r, lvl, "music", http.StatusOK, start, "")
		}))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("missing upstream credentials"))
	})

	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	MountSwagger(r)

	return r
}

// decodeJSON enforces the JSON content type and body limit and decodes the
// body into v. It writes the error response and returns false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		IncrementRejected("content_type")
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			IncrementRejected("body_too_large")
			writeJSONError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		IncrementRejected("invalid_json")
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}
