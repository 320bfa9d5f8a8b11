package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/kailas-cloud/recordq/internal/config"
	"github.com/kailas-cloud/recordq/internal/domain"
	logpkg "github.com/kailas-cloud/recordq/internal/logger"
	"github.com/kailas-cloud/recordq/internal/metrics"
	"github.com/kailas-cloud/recordq/internal/repository/dataset"
	chiTransport "github.com/kailas-cloud/recordq/internal/transport/chi"
	healthuc "github.com/kailas-cloud/recordq/internal/usecase/health"
	queryuc "github.com/kailas-cloud/recordq/internal/usecase/query"
	"github.com/kailas-cloud/recordq/internal/version"
)

func main() {
	// Load configuration based on ENV
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

	logger.Info("Starting recordq API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
	)

	store, err := dataset.Build(dataset.Options{
		Seed:          cfg.Dataset.Seed,
		Users:         cfg.Dataset.Users,
		Documents:     cfg.Dataset.Documents,
		UsersFile:     cfg.Dataset.UsersFile,
		DocumentsFile: cfg.Dataset.DocumentsFile,
	})
	if err != nil {
		logger.Fatal("Failed to build dataset", zap.Error(err))
	}
	logger.Info("Dataset ready",
		zap.Int(domain.Users, store.Count(domain.Users)),
		zap.Int(domain.Documents, store.Count(domain.Documents)),
	)

	// Register metrics explicitly (no init())
	metrics.Register(prometheus.DefaultRegisterer)

	querySvc := queryuc.New(store, queryuc.DefaultPolicies()...).
		WithDefaultPerPage(cfg.Query.DefaultPageSize).
		WithRecorder(metrics.QueryRecorder{})
	healthSvc := healthuc.New(store)

	server := chiTransport.NewServer(querySvc, healthSvc, logger).
		WithMaxBodyBytes(cfg.HTTP.MaxBodyBytes)

	var limiter *rate.Limiter
	if cfg.RateLimit.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
	}

	handler := chiTransport.NewRouter(server, logger, chiTransport.RouterConfig{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		CORSMaxAgeSec:  cfg.CORS.MaxAgeSec,
		Limiter:        limiter,
	})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
		return
	}
	logger.Info("Server stopped gracefully")
}
