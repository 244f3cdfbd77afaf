// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

//go:build !nats

package eventprocessor

import (
	"context"

	"github.com/tomtom215/fraudguard/internal/detection"
)

// Consumer is a stub when NATS support is not compiled in.
type Consumer struct{}

// NewConsumer always fails without the nats build tag.
func NewConsumer(_ ConsumerConfig, _ *detection.Guard) (*Consumer, error) {
	return nil, ErrNATSNotEnabled
}

func (c *Consumer) Start(_ context.Context) error { return ErrNATSNotEnabled }

func (c *Consumer) Shutdown(_ context.Context) {}

func (c *Consumer) IsRunning() bool { return false }

func (c *Consumer) HealthCheck(_ context.Context) error { return ErrConsumerNotRunning }
