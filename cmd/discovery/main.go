package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/sichrplace/discovery/internal/config"
	dbRedis "github.com/sichrplace/discovery/internal/db/redis"
	"github.com/sichrplace/discovery/internal/domain"
	"github.com/sichrplace/discovery/internal/domain/geo"
	"github.com/sichrplace/discovery/internal/domain/place"
	logpkg "github.com/sichrplace/discovery/internal/logger"
	"github.com/sichrplace/discovery/internal/metrics"
	catalogrepo "github.com/sichrplace/discovery/internal/repository/catalog"
	chiTransport "github.com/sichrplace/discovery/internal/transport/chi"
	placesTransport "github.com/sichrplace/discovery/internal/transport/places"
	healthuc "github.com/sichrplace/discovery/internal/usecase/health"
	proximityuc "github.com/sichrplace/discovery/internal/usecase/proximity"
	searchuc "github.com/sichrplace/discovery/internal/usecase/search"
	"github.com/sichrplace/discovery/internal/version"
)

func main() {
	// .env is optional; real env vars win over file values
	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting discovery API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
	})
	if err != nil {
		logger.Fatal("Failed to create catalog store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Catalog store not ready", zap.Error(err))
	}
	logger.Info("Connected to catalog store")

	if err := catalogrepo.EnsureIndex(ctx, store); err != nil {
		logger.Fatal("Failed to bootstrap listing index", zap.Error(err))
	}

	// Register search metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	catalogRepo := catalogrepo.New(store)
	searchSvc := searchuc.New(catalogRepo)

	// Places provider is optional; without it /places/nearby returns 502
	// and the health report skips the check.
	var placesClient *placesTransport.Client
	var placesChecker healthuc.PlacesChecker
	if cfg.Places.BaseURL != "" {
		placesClient = placesTransport.NewWithHTTPClient(cfg.Places.BaseURL, &http.Client{
			Timeout: time.Duration(cfg.Places.TimeoutSec) * time.Second,
		})
		placesChecker = placesClient
	}
	proximitySvc := proximityuc.New(placesProvider(placesClient))

	healthSvc := healthuc.New(store, placesChecker)

	server := chiTransport.NewServer(searchSvc, proximitySvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.IdentityMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

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

// placesProvider returns a nil-safe proximity.Places.
// Go gotcha: a typed nil pointer wrapped in an interface != nil.
func placesProvider(c *placesTransport.Client) proximityuc.Places {
	if c == nil {
		return unavailablePlaces{}
	}
	return c
}

// unavailablePlaces stands in when no places provider is configured.
type unavailablePlaces struct{}

func (unavailablePlaces) Nearby(context.Context, geo.Coordinate, float64) ([]place.Candidate, error) {
	return nil, domain.ErrPlacesUnavailable
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
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
						"code":    "internalError",
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

			// Canonical log line, one per request
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
