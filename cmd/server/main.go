// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/fraudguard/internal/api"
	"github.com/tomtom215/fraudguard/internal/config"
	"github.com/tomtom215/fraudguard/internal/logging"
	"github.com/tomtom215/fraudguard/internal/supervisor"
	"github.com/tomtom215/fraudguard/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Service:   "fraudguard",
	})

	logging.Info().
		Str("version", version).
		Float64("confidence_threshold", cfg.Fraud.ConfidenceThreshold).
		Int("max_profiles", cfg.Fraud.MaxProfiles).
		Dur("profile_idle_ttl", cfg.Fraud.ProfileIdleTTL).
		Bool("nats_enabled", cfg.NATS.Enabled).
		Msg("Starting fraudguard")

	if cfg.HasWildcardCORS() {
		logging.Warn().Msg("CORS allows any origin; set CORS_ORIGINS for production")
	}

	watchLogLevel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	guard := newGuard(cfg)
	tree.AddDetectionService(services.NewDetectionService(guard))

	handler := api.NewHandler(guard, api.HandlerConfig{
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
		Version:      version,
	})

	consumer, err := newConsumer(cfg, guard)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to configure NATS consumer")
	}
	if consumer != nil {
		tree.AddMessagingService(services.NewEventConsumerService(consumer, cfg.NATS.CloseTimeout))
		handler.AddReadinessCheck("nats", consumer.HealthCheck)
		logging.Info().Str("url", cfg.NATS.URL).Str("subject", cfg.NATS.Subject).Msg("NATS consumer added to supervisor tree")
	}

	server := newHTTPServer(cfg, handler)
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}

	stats := guard.Statistics()
	logging.Info().
		Int("total_users", stats.TotalUsers).
		Int("flagged_users", stats.FlaggedUsers).
		Msg("Fraudguard stopped")
}
