// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

package eventprocessor

import "errors"

var (
	// ErrInvalidConsumerConfig is returned by ConsumerConfig.Validate.
	ErrInvalidConsumerConfig = errors.New("invalid event consumer configuration")

	// ErrConsumerNotRunning is reported by HealthCheck while the router is down.
	ErrConsumerNotRunning = errors.New("event consumer not running")

	// ErrNATSNotEnabled is returned when the binary was built without the nats tag.
	ErrNATSNotEnabled = errors.New("NATS support not compiled in: rebuild with -tags nats")

	// ErrPublisherClosed is returned by Publish after Close.
	ErrPublisherClosed = errors.New("publisher is closed")
)
