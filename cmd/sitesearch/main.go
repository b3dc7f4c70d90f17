package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/brightlane/sitesearch/internal/config"
	dbRedis "github.com/brightlane/sitesearch/internal/db/redis"
	logpkg "github.com/brightlane/sitesearch/internal/logger"
	"github.com/brightlane/sitesearch/internal/metrics"
	"github.com/brightlane/sitesearch/internal/ratelimit"
	recordrepo "github.com/brightlane/sitesearch/internal/repository/record"
	chiTransport "github.com/brightlane/sitesearch/internal/transport/chi"
	healthuc "github.com/brightlane/sitesearch/internal/usecase/health"
	recorduc "github.com/brightlane/sitesearch/internal/usecase/record"
	searchuc "github.com/brightlane/sitesearch/internal/usecase/search"
	"github.com/brightlane/sitesearch/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting sitesearch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register search metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	// Repositories
	repo := recordrepo.New(store, cfg.Storage.KeyPrefix)
	if cfg.Search.SnapshotTTLSec > 0 {
		repo.WithSnapshotCache(time.Duration(cfg.Search.SnapshotTTLSec) * time.Second)
	}

	// Use case services
	searchSvc := searchuc.New(repo).
		WithScoring(cfg.Search.DefaultThreshold, cfg.Search.ExactMatchBonus).
		WithPagination(cfg.Search.DefaultPageSize, cfg.Search.MaxPageSize)
	recordSvc := recorduc.New(repo)
	healthSvc := healthuc.New(store)

	// Rate limiter with background expiry sweep
	limiter := ratelimit.NewLimiter()
	janitorCtx, stopJanitor := context.WithCancel(ctx)
	defer stopJanitor()
	limiter.StartJanitor(janitorCtx, time.Duration(cfg.RateLimit.CleanupIntervalSec)*time.Second)

	rules := make([]ratelimit.Rule, len(cfg.RateLimit.Rules))
	for i, r := range cfg.RateLimit.Rules {
		rules[i] = ratelimit.Rule{
			Pattern: r.Pattern,
			Limit:   r.Limit,
			Window:  time.Duration(r.WindowSec) * time.Second,
		}
	}
	limitRules := ratelimit.NewRules(rules, ratelimit.Rule{
		Pattern: "/api/v1",
		Limit:   cfg.RateLimit.DefaultLimit,
		Window:  time.Duration(cfg.RateLimit.DefaultWindowSec) * time.Second,
	})

	server := chiTransport.NewServer(searchSvc, recordSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	r.Use(apiRateLimit(limiter, limitRules))
	server.Mount(r, chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// apiRateLimit throttles /api/v1 routes only; health and metrics stay open.
func apiRateLimit(limiter *ratelimit.Limiter, rules *ratelimit.Rules) func(next http.Handler) http.Handler {
	mw := ratelimit.Middleware(limiter, rules)
	return func(next http.Handler) http.Handler {
		limited := mw(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, "/api/v1/") {
				limited.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
