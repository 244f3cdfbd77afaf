// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

package detection

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DiscordNotifier posts flag alerts to a moderator channel via a Discord webhook.
type DiscordNotifier struct {
	endpoint
}

// DiscordConfig configures the Discord notifier.
type DiscordConfig struct {
	WebhookURL string         `json:"webhook_url"`
	Enabled    bool           `json:"enabled"`
	Delivery   DeliveryConfig `json:"delivery"`
}

// NewDiscordNotifier creates a Discord notifier. Discord allows roughly one
// webhook call per second, which is the default pacing.
func NewDiscordNotifier(cfg DiscordConfig) *DiscordNotifier {
	return &DiscordNotifier{endpoint{
		url:      cfg.WebhookURL,
		enabled:  cfg.Enabled,
		delivery: newDeliverer("discord", cfg.Delivery, time.Second),
	}}
}

func (n *DiscordNotifier) Name() string { return "discord" }

// Send posts alert as a single embed.
func (n *DiscordNotifier) Send(ctx context.Context, alert *FlagAlert) error {
	url, err := n.target()
	if err != nil {
		return err
	}
	return n.delivery.post(ctx, url, nil, discordWebhookPayload{Embeds: []discordEmbed{buildEmbed(alert)}})
}

func percent(v float64) string { return fmt.Sprintf("%.0f%%", v*100) }

func buildEmbed(alert *FlagAlert) discordEmbed {
	var desc strings.Builder
	for i, ind := range alert.Indicators {
		if i > 0 {
			desc.WriteByte('\n')
		}
		fmt.Fprintf(&desc, "**%s** (%s): %s", ind.Pattern, ind.Severity, ind.Description)
	}
	if desc.Len() == 0 {
		desc.WriteString("No indicators")
	}

	inline := func(name, value string) discordEmbedField {
		return discordEmbedField{Name: name, Value: value, Inline: true}
	}
	return discordEmbed{
		Title:       "Suspicious Labeler Activity",
		Description: desc.String(),
		Color:       actionColor(alert.RecommendedAction),
		Timestamp:   alert.CreatedAt.Format(time.RFC3339),
		Fields: []discordEmbedField{
			inline("User", alert.UserID),
			inline("Confidence", percent(alert.FraudConfidence)),
			inline("Action", string(alert.RecommendedAction)),
			inline("Data Weight", strconv.FormatFloat(alert.DataWeight, 'f', 1, 64)),
			inline("Validation Rate", percent(alert.ValidationRate)),
			inline("Flagged Interactions", strconv.FormatInt(alert.FlaggedInteractions, 10)),
		},
		Footer: discordEmbedFooter{Text: "Fraudguard Detection Engine"},
	}
}

var actionColors = map[Action]int{
	ActionBlock:  0xFF0000,
	ActionReview: 0xFFA500,
	ActionFlag:   0xF1C40F,
}

// actionColor falls back to grey for allow and unknown actions.
func actionColor(action Action) int {
	if c, ok := actionColors[action]; ok {
		return c
	}
	return 0x95A5A6
}

type discordWebhookPayload struct {
	Content string         `json:"content,omitempty"`
	Embeds  []discordEmbed `json:"embeds,omitempty"`
}

type discordEmbed struct {
	Title       string              `json:"title,omitempty"`
	Description string              `json:"description,omitempty"`
	Color       int                 `json:"color,omitempty"`
	Timestamp   string              `json:"timestamp,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
	Footer      discordEmbedFooter  `json:"footer,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type discordEmbedFooter struct {
	Text string `json:"text,omitempty"`
}
