package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"grocery/internal/config"
	"grocery/internal/domain"
	"grocery/internal/service"

	"github.com/rs/zerolog"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HTTPServer exposes the item API over JSON.
type HTTPServer struct {
	cfg     config.APIConfig
	items   *service.ItemService
	db      Pinger
	limiter domain.RateLimiter
	logger  zerolog.Logger
	server  *http.Server
}

// NewHTTPServer wires routes and middleware. limiter may be nil, in which
// case requests are never throttled.
func NewHTTPServer(cfg config.APIConfig, items *service.ItemService, db Pinger, limiter domain.RateLimiter, logger *zerolog.Logger) *HTTPServer {
	l := zerolog.Nop()
	if logger != nil {
		l = logger.With().Str("component", "http").Logger()
	}
	if cfg.HTTP.CreateStatus == 0 {
		cfg.HTTP.CreateStatus = http.StatusOK
	}
	if cfg.HTTP.MaxBodyBytes <= 0 {
		cfg.HTTP.MaxBodyBytes = 1 << 20
	}

	srv := &HTTPServer{
		cfg:     cfg,
		items:   items,
		db:      db,
		limiter: limiter,
		logger:  l,
	}

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return srv
}

func (s *HTTPServer) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /items", s.handleCreateItem)
	mux.HandleFunc("GET /items", s.handleListItems)
	mux.HandleFunc("GET /items/export", s.handleExportItems)
	mux.HandleFunc("GET /items/{id}", s.handleGetItem)
	mux.HandleFunc("PATCH /items/{id}", s.handleUpdateItem)
	mux.HandleFunc("PATCH /items/{id}/toggle", s.handleToggleItem)
	mux.HandleFunc("DELETE /items/{id}", s.handleDeleteItem)

	if !s.cfg.HTTP.HealthDisabled {
		mux.HandleFunc("GET /health", s.handleHealth)
	}
	mux.HandleFunc("GET /readyz", s.handleReady)

	var handler http.Handler = mux
	handler = recoverMiddleware(s.logger)(handler)
	handler = s.rateLimitMiddleware(handler)
	handler = corsMiddleware(s.cfg.CORS)(handler)
	handler = metricsMiddleware(handler)
	handler = loggingMiddleware(s.logger)(handler)
	handler = requestIDMiddleware(handler)

	return handler
}

// Handler returns the fully wrapped router.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *HTTPServer) Addr() string {
	return s.server.Addr
}

func (s *HTTPServer) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *HTTPServer) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeError(w, http.StatusServiceUnavailable, "database not configured")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("readiness check failed")
		writeError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}
