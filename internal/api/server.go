// Copyright (c) 2026 Staffdesk. All rights reserved.
// Author: quang.nguyendinh.dev@gmail.com

// Package api is the HTTP composition root: it assembles the chi router, the
// middleware chain, and the domain handlers into a runnable [http.Server].
// Only this package and cmd/api deal with net/http server primitives.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/ndquang/staffdesk/internal/auth"
	"github.com/ndquang/staffdesk/internal/employee"
	"github.com/ndquang/staffdesk/internal/platform/config"
	"github.com/ndquang/staffdesk/internal/platform/constants"
	"github.com/ndquang/staffdesk/internal/platform/middleware"
)

// Handlers lists every handler set the router mounts. Adding a domain means
// adding a field here and registering it in NewServer, nothing else.
type Handlers struct {
	// Liveness answers /health: 200 whenever the process is up.
	Liveness http.HandlerFunc

	// Readiness answers /ready: 200 only when Postgres and Redis respond.
	Readiness http.HandlerFunc

	// Auth covers the session lifecycle (register, login, logout, refresh).
	Auth *auth.Handler

	// Employee covers the employee record CRUD surface.
	Employee *employee.Handler
}

// Server owns the configured http.Server. Build it with [NewServer], start it
// with ListenAndServe, and stop it with Shutdown.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// NewServer assembles the router and returns a server ready to listen.
//
// ctx must outlive the server: the rate limiter's background sweep runs until
// it is cancelled.
func NewServer(
	ctx context.Context,
	cfg *config.Config,
	log *slog.Logger,
	verifier middleware.TokenVerifier,
	source middleware.IdentitySource,
	h Handlers,
) *Server {
	r := chi.NewRouter()

	// Outermost first. Identity resolution runs after the rate limiter so
	// abusive clients are cut off before any token or store work happens.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(ctx))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier, source))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// Probes stay unauthenticated for the orchestrator.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// Domain routes mount at the root, matching the public contract.
	h.Auth.RegisterRoutes(r)
	h.Employee.RegisterRoutes(r)

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
		},
	}
}

// ListenAndServe blocks serving requests until Shutdown or a listener error.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests for at most timeout before forcing
// connections closed.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
