// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/fraudguard/internal/validation"
)

// ErrInvalidConfig wraps every validation failure returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Validate checks struct-tag constraints first, then the cross-field rules
// that tags cannot express.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, verr.Error())
	}

	checks := []func() error{
		c.validateNotifications,
		c.validateRateLimits,
		c.validateNATS,
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

// validateNotifications requires a URL for every enabled notifier.
func (c *Config) validateNotifications() error {
	if c.Notifications.Webhook.Enabled {
		if c.Notifications.Webhook.WebhookURL == "" {
			return errors.New("WEBHOOK_URL is required when WEBHOOK_ENABLED=true")
		}
		if err := checkURL("WEBHOOK_URL", c.Notifications.Webhook.WebhookURL, webhookSchemes); err != nil {
			return err
		}
	}
	if c.Notifications.Discord.Enabled {
		if c.Notifications.Discord.WebhookURL == "" {
			return errors.New("DISCORD_WEBHOOK_URL is required when DISCORD_WEBHOOK_ENABLED=true")
		}
		if err := checkURL("DISCORD_WEBHOOK_URL", c.Notifications.Discord.WebhookURL, webhookSchemes); err != nil {
			return err
		}
	}
	return nil
}

const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d, got %d",
			minRateLimitRequests, maxRateLimitRequests, c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v, got %v",
			minRateLimitWindow, maxRateLimitWindow, c.Security.RateLimitWindow)
	}
	return nil
}

func (c *Config) validateNATS() error {
	if !c.NATS.Enabled {
		return nil
	}
	if err := checkURL("NATS_URL", c.NATS.URL, natsSchemes); err != nil {
		return err
	}
	if c.NATS.PublishAlerts && c.NATS.AlertSubject == "" {
		return errors.New("NATS_ALERT_SUBJECT is required when NATS_PUBLISH_ALERTS=true")
	}
	return nil
}

// HasWildcardCORS reports whether any configured origin is "*".
func (c *Config) HasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}
