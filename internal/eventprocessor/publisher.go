// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

package eventprocessor

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/fraudguard/internal/metrics"
)

// BreakerPublisher wraps a message.Publisher with a circuit breaker so a
// broken alert stream fails fast instead of stalling interaction consumption.
type BreakerPublisher struct {
	publisher message.Publisher
	cb        *gobreaker.CircuitBreaker[struct{}]

	mu     sync.RWMutex
	closed bool
}

// NewBreakerPublisher wraps pub.
func NewBreakerPublisher(pub message.Publisher, cb *gobreaker.CircuitBreaker[struct{}]) *BreakerPublisher {
	return &BreakerPublisher{publisher: pub, cb: cb}
}

// Publish implements message.Publisher.
func (p *BreakerPublisher) Publish(topic string, messages ...*message.Message) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}

	_, err := p.cb.Execute(func() (struct{}, error) {
		return struct{}{}, p.publisher.Publish(topic, messages...)
	})

	switch {
	case err == nil:
		metrics.RecordAlertPublished("success")
		return nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.RecordAlertPublished("rejected")
		return fmt.Errorf("publish to %s: %w", topic, err)
	default:
		metrics.RecordAlertPublished("failure")
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
}

// Close implements message.Publisher. It is safe to call more than once.
func (p *BreakerPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return p.publisher.Close()
}

// State returns the breaker state name.
func (p *BreakerPublisher) State() string {
	return p.cb.State().String()
}
