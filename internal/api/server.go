// Package api exposes the HTTP interface for the ingestion service.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/grigmv/ytingest/internal/config"
	"github.com/grigmv/ytingest/internal/ingest"
	"github.com/grigmv/ytingest/internal/metrics"
)

// Ingestor is the orchestrator surface the handlers need.
type Ingestor interface {
	IngestChannel(ctx context.Context, channelURL string, videoCount int) ingest.Outcome
	IngestVideo(ctx context.Context, videoID, resumePageToken string) ingest.Outcome
}

// Server wires HTTP handlers to the ingestion orchestrator.
type Server struct {
	router   chi.Router
	ingestor Ingestor
	cfg      config.Config
	logger   *zap.Logger
}

// NewServer constructs a Server with middleware and routes.
func NewServer(ingestor Ingestor, cfg config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		ingestor: ingestor,
		cfg:      cfg,
		logger:   logger,
	}
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(logger))
	r.Use(recoverMiddleware(logger))
	r.Use(timeoutMiddleware(10 * time.Minute))
	if cfg.Auth.Enabled {
		r.Use(apiKeyMiddleware(cfg.Auth.APIKey))
	}

	r.Get("/healthz", s.healthz)
	r.Get("/readyz", s.readyz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Route("/ingest", func(r chi.Router) {
			r.Post("/channel", s.ingestChannel)
			r.Post("/video", s.ingestVideo)
		})
	})

	s.router = r
	return s
}

// Handler returns the Router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) readyz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

type channelIngestRequest struct {
	ChannelURL string `json:"channel_url"`
	VideoCount int    `json:"video_count"`
}

type videoIngestRequest struct {
	VideoID     string `json:"video_id"`
	ResumeToken string `json:"resume_token"`
}

// outcomeResponse is the Outcome with the resume token flattened to its
// string form for clients.
type outcomeResponse struct {
	State    ingest.State    `json:"state"`
	Counters ingest.Counters `json:"counters"`
	Resume   string          `json:"resume_token,omitempty"`
	Reason   string          `json:"reason,omitempty"`
}

func toResponse(out ingest.Outcome) outcomeResponse {
	resp := outcomeResponse{State: out.State, Counters: out.Counters, Reason: out.Reason}
	if out.Resume != nil {
		resp.Resume = out.Resume.String()
	}
	return resp
}

func (s *Server) ingestChannel(w http.ResponseWriter, r *http.Request) {
	var req channelIngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.ChannelURL == "" {
		writeError(w, http.StatusBadRequest, "channel_url required")
		return
	}
	if req.VideoCount < 0 {
		writeError(w, http.StatusBadRequest, "video_count must be >= 0")
		return
	}
	out := s.ingestor.IngestChannel(r.Context(), req.ChannelURL, req.VideoCount)
	writeJSON(w, http.StatusOK, toResponse(out))
}

func (s *Server) ingestVideo(w http.ResponseWriter, r *http.Request) {
	var req videoIngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	videoID := req.VideoID
	pageToken := ""
	if req.ResumeToken != "" {
		token, err := ingest.ParseResumeToken(req.ResumeToken)
		if err != nil {
			writeError(w, http.StatusBadRequest, "malformed resume_token")
			return
		}
		if videoID != "" && videoID != token.VideoID {
			writeError(w, http.StatusBadRequest, "resume_token does not match video_id")
			return
		}
		videoID = token.VideoID
		pageToken = token.PageToken
	}
	if videoID == "" {
		writeError(w, http.StatusBadRequest, "video_id required")
		return
	}
	out := s.ingestor.IngestVideo(r.Context(), videoID, pageToken)
	writeJSON(w, http.StatusOK, toResponse(out))
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		ctx := context.WithValue(r.Context(), requestIDKey{}, reqID)
		w.Header().Set("X-Request-ID", reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func loggingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			duration := time.Since(start)
			metrics.ObserveHTTPRequest(r.Method, r.URL.Path, ww.status, duration)
			logger.Info("request completed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.status),
				zap.Int64("duration_ms", duration.Milliseconds()),
			)
		})
	}
}

func recoverMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered", zap.Any("error", rec))
					writeError(w, http.StatusInternalServerError, "internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func timeoutMiddleware(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, d, "request timed out")
	}
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

type requestIDKey struct{}

func apiKeyMiddleware(expected string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("X-API-Key")
			if key == "" {
				key = r.URL.Query().Get("api_key")
			}
			if key != expected {
				writeError(w, http.StatusForbidden, "unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Error("write JSON failed", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
