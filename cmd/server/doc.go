// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

/*
Package main is the entry point for the fraudguard server.

fraudguard scores labeler interaction events against behavioral fraud
patterns (bot swipes, copied consensus, rushed review, and so on), keeps a
per-user profile in memory and tells the labeling platform how much weight
to give each user's data and how often to validate them.

# Process Layout

Services run under a Suture v4 tree:

	fraudguard
	├── detection-layer
	│   └── detection-guard (idle profile housekeeping)
	├── messaging-layer
	│   └── event-consumer  (NATS JetStream, optional, -tags nats)
	└── api-layer
	    └── http-server     (chi router on :8480)

Startup order:

 1. Configuration: Koanf v2 (defaults, optional YAML file, environment)
 2. Logging: zerolog, bridged to slog for the supervisor
 3. Detection: engine, guard and any enabled webhook/Discord notifiers
 4. NATS consumer, when NATS_ENABLED=true and the binary has the nats tag
 5. HTTP API with rate limiting, CORS and Prometheus metrics

# Configuration

Common environment variables:

	HTTP_PORT=8480
	FRAUD_CONFIDENCE_THRESHOLD=0.8
	FRAUD_MAX_PROFILES=0
	FRAUD_PROFILE_IDLE_TTL=0
	WEBHOOK_ENABLED=true WEBHOOK_URL=https://hooks.example.com/fraud
	DISCORD_WEBHOOK_ENABLED=true DISCORD_WEBHOOK_URL=https://discord.com/api/webhooks/...
	NATS_ENABLED=true NATS_URL=nats://nats:4222
	LOG_LEVEL=info LOG_FORMAT=json

A config file (CONFIG_PATH or ./config.yaml) is watched after startup;
changing logging.level in it takes effect without a restart.

# Build Tags

	go build ./cmd/server               # HTTP API only
	go build -tags nats ./cmd/server    # plus the NATS interaction consumer

A binary built without the nats tag logs a warning and keeps serving HTTP
when NATS_ENABLED=true.

# Signals

SIGINT and SIGTERM cancel the root context. The supervisor gives each
service up to HTTP_SHUTDOWN_TIMEOUT to stop: the HTTP server drains,
the consumer closes its router and the guard waits for in-flight alert
deliveries.
*/
package main
