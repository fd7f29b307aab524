// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package api assembles the lotmarket HTTP server: middleware chain, probes
// and the /api route groups. Unknown routes answer with the JSON error envelope.
package api

import (
	stdctx "context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/lotmarket/internal/auth"
	"github.com/taibuivan/lotmarket/internal/lot"
	"github.com/taibuivan/lotmarket/internal/platform/apperr"
	"github.com/taibuivan/lotmarket/internal/platform/constants"
	"github.com/taibuivan/lotmarket/internal/platform/middleware"
	"github.com/taibuivan/lotmarket/internal/platform/respond"
)

var (
	errRouteNotFound    = apperr.NotFound("Route")
	errMethodNotAllowed = &apperr.AppError{Code: "METHOD_NOT_ALLOWED", Message: "Method not allowed", HTTPStatus: http.StatusMethodNotAllowed}
)

// Server is the lotmarket HTTP API.
type Server struct {
	httpServer *http.Server
	log        *slog.Logger
}

// ServerConfig is the part of configuration the server reads.
type ServerConfig interface {
	middleware.AppConfig
	Port() string
}

// Handlers are the route groups and probes mounted by [NewServer].
type Handlers struct {
	Liveness  http.HandlerFunc
	Readiness http.HandlerFunc
	Auth      *auth.Handler
	Lot       *lot.Handler
}

// NewServer builds the router.
//
// # Routes
//   - GET  /health, /ready : probes, no authentication.
//   - /api/auth/*          : see [auth.Handler.Routes].
//   - /api/lots/*          : see [lot.Handler.Routes].
//
// context bounds background work started by middleware (rate-limit sweeping).
func NewServer(context stdctx.Context, cfg ServerConfig, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	router := chi.NewRouter()

	router.Use(
		middleware.RequestID(),
		middleware.StructuredLogger(log),
		chimw.Timeout(constants.GlobalRequestTimeout),
		middleware.RateLimit(context, middleware.DefaultRateLimit),
		middleware.PanicRecovery(log),
		middleware.CORS(cfg),
		middleware.Authenticate(verifier),
		chimw.CleanPath,
	)

	router.NotFound(func(writer http.ResponseWriter, request *http.Request) {
		respond.Error(writer, request, errRouteNotFound)
	})
	router.MethodNotAllowed(func(writer http.ResponseWriter, request *http.Request) {
		respond.Error(writer, request, errMethodNotAllowed)
	})

	router.Get("/health", h.Liveness)
	router.Get("/ready", h.Readiness)

	router.Route("/api", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/lots", h.Lot.Routes())
	})

	return &Server{
		log: log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port(),
			Handler:           router,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the router, e.g. for httptest.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serves until context is cancelled or the listener fails, then drains
// in-flight requests for at most shutdownTimeout.
func (s *Server) Run(context stdctx.Context, shutdownTimeout time.Duration) error {
	listenErr := make(chan error, 1)
	go func() {
		s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
		listenErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-listenErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http_listen_failed: %w", err)
	case <-context.Done():
	}

	s.log.Info("server_shutting_down", slog.Duration("timeout", shutdownTimeout))

	drainCtx, cancel := stdctx.WithTimeout(stdctx.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(drainCtx); err != nil {
		return fmt.Errorf("http_shutdown_failed: %w", err)
	}

	s.log.Info("server_stopped")
	return nil
}
