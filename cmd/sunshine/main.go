package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/sunshine-sync/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/sunshine-sync/internal/adapter/kafka"
	"github.com/couchcryptid/sunshine-sync/internal/adapter/openweather"
	"github.com/couchcryptid/sunshine-sync/internal/adapter/sqlite"
	"github.com/couchcryptid/sunshine-sync/internal/config"
	"github.com/couchcryptid/sunshine-sync/internal/domain"
	"github.com/couchcryptid/sunshine-sync/internal/observability"
	"github.com/couchcryptid/sunshine-sync/internal/pipeline"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is fine; the environment alone is enough.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	units, err := domain.ParseUnits(cfg.ForecastUnits)
	if err != nil {
		logger.Error("invalid units", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.Open(ctx, cfg.DBPath)
	if err != nil {
		logger.Error("failed to open forecast store", "error", err, "path", cfg.DBPath)
		os.Exit(1)
	}

	client := openweather.NewClient(cfg.ForecastBaseURL, cfg.ForecastLocation, cfg.ForecastDays, cfg.FetchTimeout, metrics, logger)
	fetcher := openweather.NewRateLimitedFetcher(client, cfg.FetchRateLimit, cfg.FetchRateBurst)
	logger.Info("forecast source configured", "url", client.URL(), "rate_limit", cfg.FetchRateLimit)

	// Left as a nil interface when disabled so the pipeline skips publishing.
	var publisher pipeline.Publisher
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	} else {
		logger.Info("kafka publishing disabled")
	}

	p := pipeline.New(fetcher, store, publisher, logger, metrics, cfg.SyncInterval)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, store, p, units, logger)

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start sync scheduler.
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := p.Run(ctx); err != nil {
			logger.Error("scheduler error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	// An in-flight cycle sees the cancelled context and returns promptly.
	select {
	case <-done:
	case <-shutdownCtx.Done():
		logger.Warn("scheduler did not stop before shutdown timeout")
	}

	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}
	if err := store.Close(); err != nil {
		logger.Error("forecast store close error", "error", err)
	}

	logger.Info("shutdown complete")
}
