// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.

Route map:

	GET  /health, /ready
	GET  /api/v1/locale
	GET  /api/v1/topics
	GET  /api/v1/paths
	GET  /api/v1/{lang}/posts[/{id}]
	GET  /api/v1/{lang}/books[/{id}[/chapters/{article}]]
	GET  /api/v1/{lang}/search
	POST /api/revalidate, GET /api/revalidate[/events]
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/techblog/internal/core/blog"
	"github.com/taibuivan/techblog/internal/core/book"
	"github.com/taibuivan/techblog/internal/core/topic"
	"github.com/taibuivan/techblog/internal/platform/cache"
	"github.com/taibuivan/techblog/internal/platform/config"
	"github.com/taibuivan/techblog/internal/platform/constants"
	"github.com/taibuivan/techblog/internal/platform/middleware"
	"github.com/taibuivan/techblog/internal/revalidate"
	"github.com/taibuivan/techblog/internal/search"
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
type Handlers struct {
	// Liveness is the /health handler. It returns 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. It returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Post serves the filtered post lists and post details.
	Post *blog.Handler

	// Topic serves the topic list.
	Topic *topic.Handler

	// Book serves books, chapter navigation and the pre-render path listing.
	Book *book.Handler

	// Search serves full-text search.
	Search *search.Handler

	// Revalidate receives the CMS webhook.
	Revalidate *revalidate.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups. Responses under /api/v1 are served through store,
// except the negotiated locale which varies per client.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, store cache.Store, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context, middleware.RateLimitOptions{
		Exempt: []string{"/health", "/ready", "/api/revalidate"},
	}))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)
	r.Use(middleware.LocaleRedirect("/api/v1", "posts", "books", "search"))

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	r.Route("/api", func(api chi.Router) {
		api.Mount("/revalidate", h.Revalidate.Routes())

		api.Route("/v1", func(v1 chi.Router) {
			v1.Get("/locale", NegotiateLocale)

			v1.Group(func(cached chi.Router) {
				cached.Use(cache.Middleware(store, cfg.CacheTTL))

				cached.Mount("/topics", h.Topic.Routes())
				cached.Get("/paths", h.Book.ListStaticPaths)

				cached.Route("/{lang}", func(localized chi.Router) {
					localized.Use(middleware.Locale("lang"))

					localized.Mount("/posts", h.Post.Routes())
					localized.Mount("/books", h.Book.Routes())
					localized.Mount("/search", h.Search.Routes())
				})
			})
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

// Handler returns the root handler with the full middleware chain.
func (s *Server) Handler() http.Handler {
	return s.router
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
