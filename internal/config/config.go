// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

package config

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server        ServerConfig        `koanf:"server"`
	Fraud         FraudConfig         `koanf:"fraud"`
	Notifications NotificationsConfig `koanf:"notifications"`
	Security      SecurityConfig      `koanf:"security"`
	NATS          NATSConfig          `koanf:"nats"`
	Logging       LoggingConfig       `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	IdleTimeout     time.Duration `koanf:"idle_timeout" validate:"gte=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
	// MaxBodyBytes caps the size of a posted interaction record.
	MaxBodyBytes int64 `koanf:"max_body_bytes" validate:"gt=0"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// FraudConfig tunes the detection engine.
//
// Environment Variables:
//   - FRAUD_CONFIDENCE_THRESHOLD: flag when aggregate confidence reaches this (default: 0.8)
//   - FRAUD_MAX_PROFILES: LRU bound on profiles, 0 = unbounded (default: 0)
//   - FRAUD_PROFILE_IDLE_TTL: drop profiles idle this long, 0 = never (default: 0)
//   - FRAUD_HOUSEKEEPING_INTERVAL: idle sweep and gauge refresh period (default: 1m)
//   - FRAUD_CONSENSUS_TOLERANCE: match window around 1.0 and 0.5, 0 = exact (default: 0)
//   - FRAUD_NOTIFY_TIMEOUT: upper bound on one alert fan-out (default: 15s)
type FraudConfig struct {
	ConfidenceThreshold  float64       `koanf:"confidence_threshold" validate:"gt=0,lte=1"`
	MaxProfiles          int           `koanf:"max_profiles" validate:"gte=0"`
	ProfileIdleTTL       time.Duration `koanf:"profile_idle_ttl" validate:"gte=0"`
	HousekeepingInterval time.Duration `koanf:"housekeeping_interval" validate:"gte=0"`
	ConsensusTolerance   float64       `koanf:"consensus_tolerance" validate:"gte=0,lt=0.25"`
	NotifyTimeout        time.Duration `koanf:"notify_timeout" validate:"gt=0"`
}

// NotificationsConfig groups the flag alert notifiers.
type NotificationsConfig struct {
	Webhook WebhookNotifierConfig `koanf:"webhook"`
	Discord DiscordNotifierConfig `koanf:"discord"`
}

// WebhookNotifierConfig holds generic webhook notification settings.
//
// Environment Variables:
//   - WEBHOOK_URL, WEBHOOK_ENABLED, WEBHOOK_RATE_LIMIT_MS
//   - WEBHOOK_HEADERS: comma-separated key=value pairs ("Authorization=Bearer xyz,X-Team=ops")
type WebhookNotifierConfig struct {
	WebhookURL  string            `koanf:"webhook_url" validate:"omitempty,http_url"`
	Enabled     bool              `koanf:"enabled"`
	RateLimitMs int               `koanf:"rate_limit_ms" validate:"gte=0"`
	Headers     map[string]string `koanf:"headers"`
	Breaker     BreakerConfig     `koanf:"breaker"`
}

// DiscordNotifierConfig holds Discord webhook notification settings.
type DiscordNotifierConfig struct {
	WebhookURL  string        `koanf:"webhook_url" validate:"omitempty,http_url"`
	Enabled     bool          `koanf:"enabled"`
	RateLimitMs int           `koanf:"rate_limit_ms" validate:"gte=0"`
	Breaker     BreakerConfig `koanf:"breaker"`
}

// BreakerConfig controls per-notifier HTTP delivery.
type BreakerConfig struct {
	Timeout          time.Duration `koanf:"timeout" validate:"gt=0"`
	FailureThreshold uint32        `koanf:"failure_threshold" validate:"gte=1"`
	OpenTimeout      time.Duration `koanf:"open_timeout" validate:"gt=0"`
}

// SecurityConfig holds HTTP edge protections.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs" validate:"gte=0"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"gte=0"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// NATSConfig configures the interaction event consumer. Only used in builds
// with the nats tag.
type NATSConfig struct {
	Enabled          bool          `koanf:"enabled"`
	URL              string        `koanf:"url"`
	Subject          string        `koanf:"subject" validate:"required"`
	AlertSubject     string        `koanf:"alert_subject"`
	PublishAlerts    bool          `koanf:"publish_alerts"`
	DurableName      string        `koanf:"durable_name"`
	QueueGroup       string        `koanf:"queue_group"`
	SubscribersCount int           `koanf:"subscribers_count" validate:"gte=1"`
	AckWaitTimeout   time.Duration `koanf:"ack_wait_timeout" validate:"gt=0"`
	MaxDeliver       int           `koanf:"max_deliver" validate:"gte=1"`
	ReconnectWait    time.Duration `koanf:"reconnect_wait" validate:"gt=0"`
	MaxReconnects    int           `koanf:"max_reconnects"`
	CloseTimeout     time.Duration `koanf:"close_timeout" validate:"gt=0"`
}

// LoggingConfig holds logging settings.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"loglevel"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, in that order of precedence, and validates the result.
func Load() (*Config, error) {
	cfg, err := LoadWithKoanf()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
