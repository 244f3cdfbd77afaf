// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

package config

import (
	"errors"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"threshold zero", func(c *Config) { c.Fraud.ConfidenceThreshold = 0 }, true},
		{"threshold one", func(c *Config) { c.Fraud.ConfidenceThreshold = 1 }, false},
		{"negative max profiles", func(c *Config) { c.Fraud.MaxProfiles = -1 }, true},
		{"negative idle ttl", func(c *Config) { c.Fraud.ProfileIdleTTL = -time.Second }, true},
		{"tolerance too wide", func(c *Config) { c.Fraud.ConsensusTolerance = 0.3 }, true},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, true},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, true},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, true},
		{"webhook enabled without url", func(c *Config) { c.Notifications.Webhook.Enabled = true }, true},
		{"webhook with path and query", func(c *Config) {
			c.Notifications.Webhook.Enabled = true
			c.Notifications.Webhook.WebhookURL = "https://hooks.example.com/in/fraud?k=v"
		}, false},
		{"discord bad scheme", func(c *Config) {
			c.Notifications.Discord.Enabled = true
			c.Notifications.Discord.WebhookURL = "ftp://discord.com/x"
		}, true},
		{"disabled notifier url unchecked by cross-field", func(c *Config) {
			c.Notifications.Discord.WebhookURL = "https://discord.com/api/webhooks/1/x"
		}, false},
		{"breaker threshold zero", func(c *Config) { c.Notifications.Webhook.Breaker.FailureThreshold = 0 }, true},
		{"rate limit window too long", func(c *Config) { c.Security.RateLimitWindow = 2 * time.Hour }, true},
		{"rate limit ignored when disabled", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}, false},
		{"nats bad scheme", func(c *Config) {
			c.NATS.Enabled = true
			c.NATS.URL = "http://localhost:4222"
		}, true},
		{"nats publish without subject", func(c *Config) {
			c.NATS.Enabled = true
			c.NATS.AlertSubject = ""
		}, true},
		{"nats disabled url unchecked", func(c *Config) { c.NATS.URL = "http://x" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error %v should wrap ErrInvalidConfig", err)
			}
		})
	}
}

func TestHasWildcardCORS(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	if !cfg.HasWildcardCORS() {
		t.Error("default origins should be wildcard")
	}
	cfg.Security.CORSOrigins = []string{"https://labeling.example.com"}
	if cfg.HasWildcardCORS() {
		t.Error("explicit origins should not be wildcard")
	}
}

func TestCheckURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		schemes []string
		wantErr bool
	}{
		{"https://hooks.example.com/a/b?c=d", webhookSchemes, false},
		{"http://10.0.0.5:9000/hook", webhookSchemes, false},
		{"https:///nohost", webhookSchemes, true},
		{"nats://nats:4222", natsSchemes, false},
		{"tls://nats.example.com:4222", natsSchemes, false},
		{"ws://nats:8080", natsSchemes, true},
		{"nats://:4222", natsSchemes, true},
		{"://bad", webhookSchemes, true},
	}
	for _, tt := range tests {
		err := checkURL("URL", tt.raw, tt.schemes)
		if (err != nil) != tt.wantErr {
			t.Errorf("checkURL(%q) = %v, wantErr %v", tt.raw, err, tt.wantErr)
		}
	}
}
