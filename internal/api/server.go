// Copyright (c) 2026 Edura. All rights reserved.
// Author: platform@edura.app

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/edura-app/edura/internal/learn/catalog"
	"github.com/edura-app/edura/internal/learn/certificate"
	"github.com/edura-app/edura/internal/learn/enrollment"
	"github.com/edura-app/edura/internal/learn/progress"
	"github.com/edura-app/edura/internal/platform/config"
	"github.com/edura-app/edura/internal/platform/constants"
	"github.com/edura-app/edura/internal/platform/middleware"
	"github.com/edura-app/edura/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here; no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler. It always returns 200 if the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. It returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles authentication routes (register, login, sessions).
	Auth *auth.Handler

	// Catalog handles course and chapter browsing plus authoring.
	Catalog *catalog.Handler

	// Enrollment handles course enrollment and the student's enrollment list.
	Enrollment *enrollment.Handler

	// Progress handles chapter completion and progress snapshots.
	Progress *progress.Handler

	// Certificate handles eligibility checks, issuance, and downloads.
	Certificate *certificate.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
//
// The course subtree is shared by several domains (catalog, enrollment,
// progress, certificate), so those handlers register their routes onto one
// router instead of mounting sub-routers that would collide on /courses.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Route("/courses", func(courses chi.Router) {
			h.Catalog.RegisterRoutes(courses)
			h.Enrollment.RegisterCourseRoutes(courses)
			h.Progress.RegisterRoutes(courses)
			h.Certificate.RegisterCourseRoutes(courses)
		})
		api.Mount("/certificates", h.Certificate.Routes())
		api.Route("/me", func(me chi.Router) {
			h.Enrollment.RegisterMeRoutes(me)
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
