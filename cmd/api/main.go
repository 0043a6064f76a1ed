// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the bilingual tech-blog content API.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Build the CMS client and wire the content services.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/techblog/internal/api"
	"github.com/taibuivan/techblog/internal/core/blog"
	"github.com/taibuivan/techblog/internal/core/book"
	"github.com/taibuivan/techblog/internal/core/topic"
	"github.com/taibuivan/techblog/internal/platform/cache"
	"github.com/taibuivan/techblog/internal/platform/cms"
	"github.com/taibuivan/techblog/internal/platform/config"
	"github.com/taibuivan/techblog/internal/platform/constants"
	"github.com/taibuivan/techblog/internal/platform/migration"
	pgstore "github.com/taibuivan/techblog/internal/platform/postgres"
	redisstore "github.com/taibuivan/techblog/internal/platform/redis"
	"github.com/taibuivan/techblog/internal/revalidate"
	"github.com/taibuivan/techblog/internal/search"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("cms_domain", cfg.CMSServiceDomain),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.Postgres(), log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.Redis(), log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.Migration(), log), "run migrations")

	// ── 6. Content Wiring ─────────────────────────────────────────────────
	cmsClient, err := cms.NewClient(cfg.CMS(), log)
	must(log, err, "initialize cms client")

	postRepository := blog.NewCMSRepository(cmsClient)
	topicRepository := topic.NewCMSRepository(cmsClient)
	bookRepository := book.NewCMSRepository(cmsClient)

	resolver := book.NewResolver(postRepository, cfg.CMSMemberConcurrency, log)
	bookService := book.NewService(bookRepository, resolver, log)
	postService := blog.NewService(postRepository, bookService, log)
	topicService := topic.NewService(topicRepository, log)

	searchIndex, err := search.NewIndex()
	must(log, err, "create search index")
	defer func() {
		if cerr := searchIndex.Close(); cerr != nil {
			log.Error("search index close error", slog.Any("error", cerr))
		}
	}()
	searchService := search.NewService(postService, searchIndex, log)

	responseCache := cache.NewRedisStore(rdb, constants.RedisPrefixPage)
	revalidateService := revalidate.NewService(
		cfg.RevalidateSecret,
		responseCache,
		searchService,
		revalidate.NewPostgresRepository(pool),
		log,
	)

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: pgstore.Checker(pool),
		CheckCache:    redisstore.Checker(rdb),
		CheckContent:  func(ctx context.Context) error {
			return cmsClient.Ping(ctx, "topics")
		},
	}, log)

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Post:       blog.NewHandler(postService),
		Topic:      topic.NewHandler(topicService),
		Book:       book.NewHandler(bookService),
		Search:     search.NewHandler(searchService),
		Revalidate: revalidate.NewHandler(revalidateService),
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, responseCache, handlers)

	// ── 9. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// newLogger returns the JSON logger tagged with the application name.
func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String(constants.FieldApp, constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
