// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

/*
Package config provides centralized configuration management for Fraudguard.

Configuration is layered with koanf. Later layers override earlier ones:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: CONFIG_PATH, or the first of config.yaml,
    config.yml, /etc/fraudguard/config.yaml, /etc/fraudguard/config.yml
 3. Environment variables listed in envMappings

The loaded struct is checked with go-playground/validator tags and then a
few cross-field rules (an enabled notifier needs a URL, the NATS URL must
use a NATS scheme). Every failure wraps ErrInvalidConfig.

# Sections

  - server: HTTP listen address, timeouts, request body cap
  - fraud: confidence threshold, profile eviction, consensus tolerance
  - notifications: generic webhook and Discord alert delivery
  - security: HTTP rate limiting and CORS origins
  - nats: interaction event consumer (nats build tag only)
  - logging: level, format, caller

# Example YAML

	server:
	  port: 8480
	fraud:
	  confidence_threshold: 0.8
	  max_profiles: 500000
	  profile_idle_ttl: 720h
	notifications:
	  discord:
	    enabled: true
	    webhook_url: https://discord.com/api/webhooks/123/abc
	security:
	  cors_origins: ["https://labeling.example.com"]

# Environment Variables

	HTTP_HOST, HTTP_PORT, HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT
	FRAUD_CONFIDENCE_THRESHOLD, FRAUD_MAX_PROFILES, FRAUD_PROFILE_IDLE_TTL
	FRAUD_HOUSEKEEPING_INTERVAL, FRAUD_CONSENSUS_TOLERANCE
	WEBHOOK_URL, WEBHOOK_ENABLED, WEBHOOK_HEADERS (k=v,k=v)
	DISCORD_WEBHOOK_URL, DISCORD_WEBHOOK_ENABLED
	RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT, CORS_ORIGINS
	NATS_ENABLED, NATS_URL, NATS_SUBJECT, NATS_DURABLE_NAME, NATS_QUEUE_GROUP
	LOG_LEVEL, LOG_FORMAT, LOG_CALLER
*/
package config
