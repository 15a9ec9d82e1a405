// Package server provides the HTTP API for kotae.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hyperjump/kotae/internal/bot"
	"github.com/hyperjump/kotae/internal/config"
	"github.com/hyperjump/kotae/internal/metrics"
	"github.com/hyperjump/kotae/pkg/utils"
)

// WatchService reports which corpus files are being watched.
type WatchService interface {
	Files() []string
}

// Server is the HTTP server for the kotae API.
type Server struct {
	bot     *bot.Bot
	metrics *metrics.Metrics
	watch   WatchService
	config  *config.ServerConfig
	logger  *zap.Logger
	server  *http.Server
}

// NewServer creates a server with the given dependencies. watch may be nil
// when file watching is disabled.
func NewServer(
	b *bot.Bot,
	m *metrics.Metrics,
	cfg *config.ServerConfig,
	logger *zap.Logger,
	watch WatchService,
) *Server {
	return &Server{
		bot:     b,
		metrics: m,
		watch:   watch,
		config:  cfg,
		logger:  utils.OrNop(logger),
	}
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/respond", s.handleRespond)
		r.Get("/suggest", s.handleSuggest)
		r.Get("/records", s.handleListRecords)
		r.Post("/records", s.handleAddRecord)
		r.Post("/reload", s.handleReload)
		r.Get("/status", s.handleStatus)
		r.Get("/watch", s.handleWatchFiles)
	})
	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
