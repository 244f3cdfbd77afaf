// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/fraudguard/config.yaml",
	"/etc/fraudguard/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	breaker := BreakerConfig{
		Timeout:          10 * time.Second,
		FailureThreshold: 5,
		OpenTimeout:      30 * time.Second,
	}

	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8480,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    64 << 10,
		},
		Fraud: FraudConfig{
			ConfidenceThreshold:  0.8,
			MaxProfiles:          0, // unbounded
			ProfileIdleTTL:       0, // never expire
			HousekeepingInterval: time.Minute,
			ConsensusTolerance:   0, // exact match
			NotifyTimeout:        15 * time.Second,
		},
		Notifications: NotificationsConfig{
			Webhook: WebhookNotifierConfig{
				RateLimitMs: 500,
				Headers:     map[string]string{},
				Breaker:     breaker,
			},
			Discord: DiscordNotifierConfig{
				RateLimitMs: 1000,
				Breaker:     breaker,
			},
		},
		Security: SecurityConfig{
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
		NATS: NATSConfig{
			Enabled:          false,
			URL:              "nats://127.0.0.1:4222",
			Subject:          "interactions.>",
			AlertSubject:     "fraud.flagged",
			PublishAlerts:    true,
			DurableName:      "fraudguard",
			QueueGroup:       "fraudguard",
			SubscribersCount: 4,
			AckWaitTimeout:   30 * time.Second,
			MaxDeliver:       5,
			ReconnectWait:    2 * time.Second,
			MaxReconnects:    -1,
			CloseTimeout:     30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration in three layers:
//
//  1. Defaults: built-in values from defaultConfig
//  2. Config File: optional YAML file (CONFIG_PATH or DefaultConfigPaths)
//  3. Environment Variables: explicitly mapped names, highest priority
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}
	if err := processMapFields(k); err != nil {
		return nil, fmt.Errorf("failed to process map fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// FilePath returns the config file Load would read, or "" when running on
// defaults and environment only.
func FilePath() string {
	return findConfigFile()
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are parsed from comma-separated env values.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// mapConfigPaths are parsed from comma-separated key=value env values.
var mapConfigPaths = []string{
	"notifications.webhook.headers",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// YAML-sourced values are already slices and are left alone.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := splitTrim(strVal, ",")
		if len(parts) == 0 {
			continue
		}
		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// processMapFields converts "k1=v1,k2=v2" env values to maps.
func processMapFields(k *koanf.Koanf) error {
	for _, path := range mapConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		m := make(map[string]interface{})
		for _, pair := range splitTrim(strVal, ",") {
			key, val, found := strings.Cut(pair, "=")
			if !found || strings.TrimSpace(key) == "" {
				return fmt.Errorf("%s: malformed pair %q, want key=value", path, pair)
			}
			m[strings.TrimSpace(key)] = strings.TrimSpace(val)
		}
		// Delete first so the string value does not shadow the map.
		k.Delete(path)
		if err := k.Set(path, m); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

func splitTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// envMappings maps environment variable names (lowercased) to koanf paths.
// Unmapped variables are ignored.
var envMappings = map[string]string{
	// Server
	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_idle_timeout":     "server.idle_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"http_max_body_bytes":   "server.max_body_bytes",

	// Detection engine
	"fraud_confidence_threshold":  "fraud.confidence_threshold",
	"fraud_max_profiles":          "fraud.max_profiles",
	"fraud_profile_idle_ttl":      "fraud.profile_idle_ttl",
	"fraud_housekeeping_interval": "fraud.housekeeping_interval",
	"fraud_consensus_tolerance":   "fraud.consensus_tolerance",
	"fraud_notify_timeout":        "fraud.notify_timeout",

	// Notifiers
	"webhook_url":                  "notifications.webhook.webhook_url",
	"webhook_enabled":              "notifications.webhook.enabled",
	"webhook_rate_limit_ms":        "notifications.webhook.rate_limit_ms",
	"webhook_headers":              "notifications.webhook.headers",
	"webhook_timeout":              "notifications.webhook.breaker.timeout",
	"webhook_breaker_threshold":    "notifications.webhook.breaker.failure_threshold",
	"webhook_breaker_open_timeout": "notifications.webhook.breaker.open_timeout",
	"discord_webhook_url":          "notifications.discord.webhook_url",
	"discord_webhook_enabled":      "notifications.discord.enabled",
	"discord_rate_limit_ms":        "notifications.discord.rate_limit_ms",
	"discord_timeout":              "notifications.discord.breaker.timeout",
	"discord_breaker_threshold":    "notifications.discord.breaker.failure_threshold",
	"discord_breaker_open_timeout": "notifications.discord.breaker.open_timeout",

	// Security
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	// NATS
	"nats_enabled":        "nats.enabled",
	"nats_url":            "nats.url",
	"nats_subject":        "nats.subject",
	"nats_alert_subject":  "nats.alert_subject",
	"nats_publish_alerts": "nats.publish_alerts",
	"nats_durable_name":   "nats.durable_name",
	"nats_queue_group":    "nats.queue_group",
	"nats_subscribers":    "nats.subscribers_count",
	"nats_ack_wait":       "nats.ack_wait_timeout",
	"nats_max_deliver":    "nats.max_deliver",
	"nats_reconnect_wait": "nats.reconnect_wait",
	"nats_max_reconnects": "nats.max_reconnects",
	"nats_close_timeout":  "nats.close_timeout",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps an environment variable name to its config path.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - FRAUD_CONFIDENCE_THRESHOLD -> fraud.confidence_threshold
//   - DISCORD_WEBHOOK_URL -> notifications.discord.webhook_url
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

// WatchConfigFile calls callback whenever path changes. The caller owns any
// locking around swapping in the reloaded configuration.
func WatchConfigFile(path string, callback func()) error {
	return file.Provider(path).Watch(func(_ interface{}, err error) {
		if err != nil {
			return
		}
		callback()
	})
}
