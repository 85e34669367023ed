package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/asteroid-impact-etl/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/asteroid-impact-etl/internal/adapter/kafka"
	"github.com/couchcryptid/asteroid-impact-etl/internal/adapter/neows"
	"github.com/couchcryptid/asteroid-impact-etl/internal/config"
	"github.com/couchcryptid/asteroid-impact-etl/internal/domain"
	"github.com/couchcryptid/asteroid-impact-etl/internal/observability"
	"github.com/couchcryptid/asteroid-impact-etl/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// NEO catalog enrichment (feature-flagged via NEOWS_ENABLED).
	var catalog domain.Catalog
	if cfg.NeoWsEnabled {
		client := neows.NewClient(cfg, metrics, logger)
		catalog = neows.NewCachedCatalog(client, cfg.NeoWsCacheSize, metrics)
		metrics.CatalogEnabled.Set(1)
		logger.Info("neows catalog enabled",
			"cache_size", cfg.NeoWsCacheSize,
			"timeout", cfg.NeoWsTimeout,
			"requests_per_hour", cfg.NeoWsRequestsPerHour,
			"demo_key", cfg.NeoWsAPIKey == config.DemoAPIKey,
		)
	} else {
		logger.Info("neows catalog disabled")
	}

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(nil, catalog, logger, metrics)

	p := pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize)

	api := httpadapter.NewAPI(transformer, catalog, logger)
	srv := httpadapter.NewServer(cfg.HTTPAddr, p, api, metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start ETL pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
