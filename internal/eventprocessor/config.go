// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

package eventprocessor

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/fraudguard/internal/detection"
)

// ConsumerConfig configures the NATS JetStream interaction consumer.
type ConsumerConfig struct {
	URL string

	// Subject is the interaction subject pattern, e.g. "interactions.>".
	Subject string

	// AlertSubject receives analysis results for flagged users when PublishAlerts is set.
	AlertSubject  string
	PublishAlerts bool

	DurableName      string
	QueueGroup       string
	SubscribersCount int
	AckWaitTimeout   time.Duration
	MaxDeliver       int
	MaxAckPending    int

	ReconnectWait time.Duration
	MaxReconnects int // -1 = forever

	CloseTimeout time.Duration

	Retry   RetryConfig
	Breaker CircuitBreakerConfig
}

// RetryConfig controls the router retry middleware. Retries only apply to
// handler and publish failures; malformed payloads are dropped, not retried.
type RetryConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
}

// DefaultConsumerConfig returns defaults for a local NATS server.
func DefaultConsumerConfig() ConsumerConfig {
	return ConsumerConfig{
		URL:              "nats://127.0.0.1:4222",
		Subject:          detection.Topic(),
		AlertSubject:     detection.AlertTopic(),
		PublishAlerts:    true,
		DurableName:      "fraudguard",
		QueueGroup:       "fraudguard",
		SubscribersCount: 4,
		AckWaitTimeout:   30 * time.Second,
		MaxDeliver:       5,
		MaxAckPending:    1000,
		ReconnectWait:    2 * time.Second,
		MaxReconnects:    -1,
		CloseTimeout:     30 * time.Second,
		Retry: RetryConfig{
			MaxRetries:      3,
			InitialInterval: 100 * time.Millisecond,
			MaxInterval:     5 * time.Second,
			Multiplier:      2.0,
		},
		Breaker: DefaultCircuitBreakerConfig("alert-publisher"),
	}
}

// Validate checks the fields the consumer cannot run without.
func (c *ConsumerConfig) Validate() error {
	var problems []string

	if !strings.HasPrefix(c.URL, "nats://") && !strings.HasPrefix(c.URL, "tls://") {
		problems = append(problems, "url must use nats:// or tls://")
	}
	if c.Subject == "" {
		problems = append(problems, "subject is required")
	}
	if c.PublishAlerts && c.AlertSubject == "" {
		problems = append(problems, "alert subject is required when publishing alerts")
	}
	if c.PublishAlerts && c.AlertSubject != "" && subjectMatches(c.Subject, c.AlertSubject) {
		problems = append(problems, fmt.Sprintf("alert subject %q would be consumed by %q", c.AlertSubject, c.Subject))
	}
	if c.SubscribersCount < 1 {
		problems = append(problems, "subscribers count must be at least 1")
	}
	if c.AckWaitTimeout <= 0 {
		problems = append(problems, "ack wait timeout must be positive")
	}
	if c.MaxDeliver < 1 {
		problems = append(problems, "max deliver must be at least 1")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConsumerConfig, strings.Join(problems, "; "))
	}
	return nil
}

// subjectMatches reports whether a NATS subject pattern matches subject.
// Supports the * (one token) and > (one or more trailing tokens) wildcards.
func subjectMatches(pattern, subject string) bool {
	pt := strings.Split(pattern, ".")
	st := strings.Split(subject, ".")

	for i, p := range pt {
		if p == ">" {
			return len(st) > i
		}
		if i >= len(st) {
			return false
		}
		if p != "*" && p != st[i] {
			return false
		}
	}
	return len(pt) == len(st)
}
