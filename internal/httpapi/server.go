package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"textgen/internal/model"
	"textgen/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
// *model.Handle satisfies it.
type Service interface {
	Generate(ctx context.Context, p model.Params) model.Result
	Info() types.InfoResponse
	Ready() bool
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, metrics, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(MetricsMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	// Security headers
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
			ExposedHeaders: []string{"X-Request-Id"},
			MaxAge:         300,
		}))
	}

	r.Get("/", serveIndex)
	r.Handle("/static/*", staticHandler())

	r.Post("/generate", generateHandler(svc))

	r.Get("/info", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(svc.Info()); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
			return
		}
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("unavailable"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)
	return r
}

// generateHandler godoc
//
//	@Summary		Generate text
//	@Description	Samples num_return_sequences continuations of prompt. Omitted fields take their defaults. Generation failures are reported with status "error" at HTTP 200.
//	@Tags			generate
//	@Accept			json
//	@Produce		json
//	@Param			request	body		types.GenerateRequest	true	"Generation request"
//	@Success		200		{object}	types.GenerateResponse
//	@Failure		400		{object}	types.ErrorResponse
//	@Failure		415		{object}	types.ErrorResponse
//	@Router			/generate [post]
func generateHandler(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Content-Type check
		ct := r.Header.Get("Content-Type")
		if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
			writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		// Fields absent from the body keep their defaults.
		req := types.DefaultGenerateRequest()
		dec := json.NewDecoder(r.Body)
		if err := dec.Decode(&req); err != nil {
			// If exceeded size, MaxBytesReader may cause an error; still return 400 to avoid size leak details
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		// Exactly one JSON value per body.
		if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body: trailing data")
			return
		}
		if strings.TrimSpace(req.Prompt) == "" {
			writeJSONError(w, http.StatusBadRequest, "prompt is required")
			return
		}

		lvl := requestLogLevel(r)
		lg := requestLogger(r)
		if lvl >= LevelInfo {
			lg.Info().
				Str("prompt_xxh3", promptFingerprint(req.Prompt)).
				Int("prompt_bytes", len(req.Prompt)).
				Int("max_length", req.MaxLength).
				Float64("temperature", req.Temperature).
				Float64("top_p", req.TopP).
				Int("num_return_sequences", req.NumReturnSequences).
				Msg("generate start")
		}

		// Join server base context with request context so shutdown stops pending sequences too.
		ctx, cancel := joinContexts(r.Context(), serverBaseCtx)
		defer cancel()
		start := time.Now()
		body := envelope(callGenerate(ctx, svc, fromWire(req)))
		dur := time.Since(start)

		outcome := body.Status
		if body.Status == types.StatusError {
			outcome = body.Kind
		}
		observeGeneration(outcome, len(body.Results), dur)

		switch {
		case body.Status == types.StatusError && lvl >= LevelError:
			lg.Warn().Str("kind", body.Kind).Str("error", body.Message).Dur("dur", dur).Msg("generate end")
		case body.Status == types.StatusSuccess && lvl >= LevelDebug:
			lg.Debug().Strs("results", body.Results).Dur("dur", dur).Msg("generate end")
		case body.Status == types.StatusSuccess && lvl >= LevelInfo:
			lg.Info().Int("results", len(body.Results)).Dur("dur", dur).Msg("generate end")
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(body)
	}
}

// callGenerate keeps a panicking Service from escaping as a transport error.
func callGenerate(ctx context.Context, svc Service, p model.Params) (res model.Result) {
	defer func() {
		if rec := recover(); rec != nil {
			res = model.Result{Params: p, Err: &model.GenerationError{Op: "generate", Err: fmt.Errorf("panic: %v", rec)}}
		}
	}()
	return svc.Generate(ctx, p)
}
