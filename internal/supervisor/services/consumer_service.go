// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

package services

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrConsumerStopped is returned by Serve when the consumer dies on its own.
var ErrConsumerStopped = errors.New("event consumer stopped unexpectedly")

// EventConsumer is the Start/Shutdown lifecycle of the interaction consumer.
// Satisfied by *eventprocessor.Consumer.
type EventConsumer interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context)
	IsRunning() bool
}

// EventConsumerService adapts an EventConsumer to suture's Serve pattern.
// If the consumer's router dies while ctx is still live, Serve returns an
// error and the supervisor starts it again with a fresh connection.
type EventConsumerService struct {
	consumer        EventConsumer
	shutdownTimeout time.Duration
	pollInterval    time.Duration
	name            string
}

// NewEventConsumerService wraps consumer. A non-positive shutdownTimeout means 10s.
func NewEventConsumerService(consumer EventConsumer, shutdownTimeout time.Duration) *EventConsumerService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &EventConsumerService{
		consumer:        consumer,
		shutdownTimeout: shutdownTimeout,
		pollInterval:    time.Second,
		name:            "event-consumer",
	}
}

// Serve implements suture.Service.
func (s *EventConsumerService) Serve(ctx context.Context) error {
	if err := s.consumer.Start(ctx); err != nil {
		return fmt.Errorf("event consumer start failed: %w", err)
	}

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.shutdown()
			return ctx.Err()
		case <-ticker.C:
			if !s.consumer.IsRunning() {
				s.shutdown()
				return ErrConsumerStopped
			}
		}
	}
}

func (s *EventConsumerService) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	s.consumer.Shutdown(ctx)
}

// String implements fmt.Stringer.
func (s *EventConsumerService) String() string {
	return s.name
}
