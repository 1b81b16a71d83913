package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/vector-suitability-etl/internal/adapter/http"
	"github.com/couchcryptid/vector-suitability-etl/internal/adapter/influx"
	kafkaadapter "github.com/couchcryptid/vector-suitability-etl/internal/adapter/kafka"
	"github.com/couchcryptid/vector-suitability-etl/internal/config"
	"github.com/couchcryptid/vector-suitability-etl/internal/observability"
	"github.com/couchcryptid/vector-suitability-etl/internal/pipeline"
	"github.com/couchcryptid/vector-suitability-etl/internal/species"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	params, err := species.Load(cfg.SpeciesFile)
	if err != nil {
		logger.Error("failed to load species parameters", "error", err)
		os.Exit(1)
	}
	for _, p := range params {
		logger.Info("species configured", "name", p.Name, "tmin_c", p.TminC, "tmax_c", p.TmaxC, "scale", p.Scale)
	}

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(params, logger)

	// The Kafka sink is the source of truth; the Influx summary sink is
	// best-effort and feature-flagged via INFLUX_URL / INFLUX_ENABLED.
	loader := pipeline.MultiLoader{writer}
	var recorder *influx.Recorder
	if cfg.InfluxEnabled {
		recorder = influx.NewRecorder(cfg, logger, metrics)
		loader = append(loader, recorder)
		metrics.InfluxEnabled.Set(1)
		logger.Info("influx summary sink enabled", "url", cfg.InfluxURL, "bucket", cfg.InfluxBucket)
	} else {
		logger.Info("influx summary sink disabled")
	}

	p := pipeline.New(reader, transformer, loader, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, params, logger)

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
	if recorder != nil {
		recorder.Close()
	}

	logger.Info("shutdown complete")
}
