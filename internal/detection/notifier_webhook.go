// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

package detection

import (
	"context"
	"maps"
	"time"
)

// WebhookNotifier sends flag alerts to a generic webhook endpoint, typically
// the reward or staking service that consumes data weight changes.
type WebhookNotifier struct {
	endpoint
	headers map[string]string
}

// WebhookConfig configures the generic webhook notifier.
type WebhookConfig struct {
	WebhookURL string            `json:"webhook_url"`
	Headers    map[string]string `json:"headers,omitempty"`
	Enabled    bool              `json:"enabled"`
	Delivery   DeliveryConfig    `json:"delivery"`
}

// WebhookPayload is the body posted for every alert.
type WebhookPayload struct {
	EventType string     `json:"event_type"`
	Source    string     `json:"source"`
	Timestamp time.Time  `json:"timestamp"`
	Alert     *FlagAlert `json:"alert"`
}

// NewWebhookNotifier creates a webhook notifier. Headers are copied and sent
// with every request, e.g. for authentication.
func NewWebhookNotifier(cfg WebhookConfig) *WebhookNotifier {
	return &WebhookNotifier{
		endpoint: endpoint{
			url:      cfg.WebhookURL,
			enabled:  cfg.Enabled,
			delivery: newDeliverer("webhook", cfg.Delivery, 500*time.Millisecond),
		},
		headers: maps.Clone(cfg.Headers),
	}
}

func (n *WebhookNotifier) Name() string { return "webhook" }

// Send posts alert wrapped in a user_flagged event.
func (n *WebhookNotifier) Send(ctx context.Context, alert *FlagAlert) error {
	url, err := n.target()
	if err != nil {
		return err
	}
	return n.delivery.post(ctx, url, n.headers, WebhookPayload{
		EventType: "user_flagged",
		Source:    "fraudguard",
		Timestamp: time.Now().UTC(),
		Alert:     alert,
	})
}
