// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

package main

import (
	"errors"
	"net/http"

	"github.com/tomtom215/fraudguard/internal/api"
	"github.com/tomtom215/fraudguard/internal/config"
	"github.com/tomtom215/fraudguard/internal/detection"
	"github.com/tomtom215/fraudguard/internal/eventprocessor"
	"github.com/tomtom215/fraudguard/internal/logging"
)

func engineConfig(cfg *config.Config) detection.EngineConfig {
	return detection.EngineConfig{
		ConfidenceThreshold: cfg.Fraud.ConfidenceThreshold,
		MaxProfiles:         cfg.Fraud.MaxProfiles,
		ProfileIdleTTL:      cfg.Fraud.ProfileIdleTTL,
		ConsensusTolerance:  cfg.Fraud.ConsensusTolerance,
	}
}

func guardConfig(cfg *config.Config) detection.GuardConfig {
	return detection.GuardConfig{
		HousekeepingInterval: cfg.Fraud.HousekeepingInterval,
		NotifyTimeout:        cfg.Fraud.NotifyTimeout,
	}
}

func deliveryConfig(rateLimitMs int, b config.BreakerConfig) detection.DeliveryConfig {
	return detection.DeliveryConfig{
		RateLimitMs:      rateLimitMs,
		Timeout:          b.Timeout,
		FailureThreshold: b.FailureThreshold,
		BreakerTimeout:   b.OpenTimeout,
	}
}

// newNotifiers builds the configured alert notifiers. Notifiers that are
// disabled or have no URL are skipped.
func newNotifiers(cfg *config.Config) []detection.Notifier {
	var notifiers []detection.Notifier

	wh := cfg.Notifications.Webhook
	if wh.Enabled && wh.WebhookURL != "" {
		notifiers = append(notifiers, detection.NewWebhookNotifier(detection.WebhookConfig{
			WebhookURL: wh.WebhookURL,
			Headers:    wh.Headers,
			Enabled:    true,
			Delivery:   deliveryConfig(wh.RateLimitMs, wh.Breaker),
		}))
	}

	dc := cfg.Notifications.Discord
	if dc.Enabled && dc.WebhookURL != "" {
		notifiers = append(notifiers, detection.NewDiscordNotifier(detection.DiscordConfig{
			WebhookURL: dc.WebhookURL,
			Enabled:    true,
			Delivery:   deliveryConfig(dc.RateLimitMs, dc.Breaker),
		}))
	}
	return notifiers
}

// newGuard builds the engine and guard and registers notifiers.
func newGuard(cfg *config.Config) *detection.Guard {
	guard := detection.NewGuard(detection.NewEngine(engineConfig(cfg)), guardConfig(cfg))
	for _, n := range newNotifiers(cfg) {
		guard.RegisterNotifier(n)
		logging.Info().Str("notifier", n.Name()).Msg("Alert notifier enabled")
	}
	return guard
}

func consumerConfig(nc config.NATSConfig) eventprocessor.ConsumerConfig {
	cc := eventprocessor.DefaultConsumerConfig()
	cc.URL = nc.URL
	cc.Subject = nc.Subject
	cc.AlertSubject = nc.AlertSubject
	cc.PublishAlerts = nc.PublishAlerts
	cc.DurableName = nc.DurableName
	cc.QueueGroup = nc.QueueGroup
	cc.SubscribersCount = nc.SubscribersCount
	cc.AckWaitTimeout = nc.AckWaitTimeout
	cc.MaxDeliver = nc.MaxDeliver
	cc.ReconnectWait = nc.ReconnectWait
	cc.MaxReconnects = nc.MaxReconnects
	cc.CloseTimeout = nc.CloseTimeout
	return cc
}

// newConsumer returns nil when NATS is disabled. A binary built without the
// nats tag logs a warning and runs HTTP-only rather than failing startup.
func newConsumer(cfg *config.Config, guard *detection.Guard) (*eventprocessor.Consumer, error) {
	if !cfg.NATS.Enabled {
		logging.Info().Msg("NATS consumer disabled (NATS_ENABLED=false)")
		return nil, nil
	}
	consumer, err := eventprocessor.NewConsumer(consumerConfig(cfg.NATS), guard)
	if errors.Is(err, eventprocessor.ErrNATSNotEnabled) {
		logging.Warn().Err(err).Msg("NATS_ENABLED=true but binary lacks NATS support, continuing HTTP-only")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return consumer, nil
}

func newHTTPServer(cfg *config.Config, handler *api.Handler) *http.Server {
	router := api.NewRouter(handler, api.ChiMiddlewareFromSecurity(cfg.Security))
	return &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}
}
