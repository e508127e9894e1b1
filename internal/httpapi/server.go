package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"inferd/internal/service"
	"inferd/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Generate(ctx context.Context, req types.GenerateRequest) (types.GenerateResponse, error)
	Status() types.StatusResponse
	Ready() bool
}

// Recommender handles the questionnaire endpoint.
type Recommender interface {
	Recommend(ctx context.Context, req types.RecommendRequest) (types.RecommendResponse, error)
}

// NewMux builds the router: /generate, /recommend, /health, /healthz,
// /readyz, /status, /metrics and (tagged builds) /swagger.
func NewMux(svc Service, rec Recommender) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type"},
		}))
	}
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	r.Use(MetricsMiddleware)

	// Generate godoc
	// @Summary      Run one generation against the loaded model
	// @Accept       json
	// @Produce      json
	// @Param        request body types.GenerateRequest true "generation request"
	// @Success      200 {object} types.GenerateResponse
	// @Failure      400 {object} types.ErrorResponse
	// @Failure      429 {object} types.ErrorResponse
	// @Failure      500 {object} types.ErrorResponse
	// @Failure      503 {object} types.ErrorResponse
	// @Failure      504 {object} types.ErrorResponse
	// @Router       /generate [post]
	r.Post("/generate", func(w http.ResponseWriter, r *http.Request) {
		var req types.GenerateRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		start := time.Now()
		logStart(r, "generate")
		ctx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		resp, err := svc.Generate(ctx, req)
		if err != nil {
			writeServiceError(w, r, err, start)
			return
		}
		logEnd(r, "generate", http.StatusOK, time.Since(start))
		writeJSON(w, http.StatusOK, resp)
	})

	// Recommend godoc
	// @Summary      Recommend university majors from questionnaire answers
	// @Accept       json
	// @Produce      json
	// @Param        request body types.RecommendRequest true "questionnaire answers"
	// @Success      200 {object} types.RecommendResponse
	// @Failure      400 {object} types.ErrorResponse
	// @Failure      429 {object} types.ErrorResponse
	// @Failure      500 {object} types.ErrorResponse
	// @Failure      503 {object} types.ErrorResponse
	// @Failure      504 {object} types.ErrorResponse
	// @Router       /recommend [post]
	r.Post("/recommend", func(w http.ResponseWriter, r *http.Request) {
		var req types.RecommendRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		start := time.Now()
		logStart(r, "recommend")
		ctx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		resp, err := rec.Recommend(ctx, req)
		if err != nil {
			writeServiceError(w, r, err, start)
			return
		}
		logEnd(r, "recommend", http.StatusOK, time.Since(start))
		writeJSON(w, http.StatusOK, resp)
	})

	// Health godoc
	// @Summary      Readiness of the service (200 only while serving)
	// @Produce      plain
	// @Success      200 {string} string "ok"
	// @Failure      503 {string} string "unavailable"
	// @Router       /health [get]
	health := func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("unavailable"))
	}
	r.Get("/health", health)
	r.Get("/readyz", health)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Status godoc
	// @Summary      Detailed service status
	// @Produce      json
	// @Success      200 {object} types.StatusResponse
	// @Router       /status [get]
	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Status())
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}

// decodeJSON enforces content type and body size, then decodes into dst.
// It writes the error response itself and returns false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, codeInvalidRequest, "Content-Type must be application/json")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		// An exceeded MaxBytesReader also lands here; keep the message
		// generic to avoid leaking size details.
		writeJSONError(w, http.StatusBadRequest, codeInvalidRequest, "invalid JSON body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers already sent; nothing sensible left to do.
		logEncodeFailure(err)
	}
}

// writeServiceError maps the service error taxonomy onto HTTP statuses and
// stable error codes.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, start time.Time) {
	// Client is gone or shutdown canceled the work. Nobody will read a
	// body, but the status must be explicit so logs and metrics do not
	// record an implicit 200.
	if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
		logError(r, statusClientClosedRequest, time.Since(start), err)
		w.WriteHeader(statusClientClosedRequest)
		return
	}
	status, code := classify(err)
	if status == http.StatusTooManyRequests {
		IncrementBackpressure(code)
	}
	logError(r, status, time.Since(start), err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		// Engine errors may carry paths or backend internals; clients get a
		// stable message, operators get the log line above.
		msg = "generation failed"
	}
	writeJSONError(w, status, code, msg)
}

func classify(err error) (int, string) {
	switch {
	case service.IsInvalidRequest(err):
		return http.StatusBadRequest, codeInvalidRequest
	case service.IsOverloaded(err):
		return http.StatusTooManyRequests, codeOverloaded
	case service.IsDraining(err):
		return http.StatusServiceUnavailable, codeUnavailable
	case service.IsTimeout(err):
		return http.StatusGatewayTimeout, codeTimeout
	case service.IsInference(err):
		return http.StatusInternalServerError, codeInferenceFailed
	default:
		return http.StatusInternalServerError, codeInternal
	}
}
