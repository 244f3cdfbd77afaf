// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

//go:build nats

package eventprocessor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"

	"github.com/tomtom215/fraudguard/internal/detection"
)

const handlerName = "fraud-detection"

// transportFactory opens the subscriber and publisher for one router run.
// The publisher may be nil when alerts are not published.
type transportFactory func() (message.Subscriber, message.Publisher, error)

// Consumer feeds interaction events from NATS JetStream into the detection
// guard and, optionally, publishes analysis results for flagged users.
type Consumer struct {
	cfg     ConsumerConfig
	guard   *detection.Guard
	open    transportFactory
	logger  watermill.LoggerAdapter
	breaker *BreakerPublisher

	mu         sync.Mutex
	router     *message.Router
	subscriber message.Subscriber
	publisher  message.Publisher
	done       chan struct{}
	running    atomic.Bool
}

// NewConsumer validates cfg and prepares a consumer. No connection is made
// until Start.
func NewConsumer(cfg ConsumerConfig, guard *detection.Guard) (*Consumer, error) {
	if guard == nil {
		return nil, errors.New("event consumer requires a detection guard")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := NewWatermillLogger()
	open := func() (message.Subscriber, message.Publisher, error) {
		sub, err := NewSubscriber(&cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		if !cfg.PublishAlerts {
			return sub, nil, nil
		}
		pub, err := NewPublisher(&cfg, logger)
		if err != nil {
			_ = sub.Close()
			return nil, nil, err
		}
		return sub, pub, nil
	}
	return newConsumer(cfg, guard, open, logger), nil
}

func newConsumer(cfg ConsumerConfig, guard *detection.Guard, open transportFactory, logger watermill.LoggerAdapter) *Consumer {
	if logger == nil {
		logger = watermill.NopLogger{}
	}
	return &Consumer{
		cfg:    cfg,
		guard:  guard,
		open:   open,
		logger: logger,
	}
}

// Start opens the transport, builds the router and returns once the handler
// is subscribed. The router keeps running until Shutdown or ctx is canceled.
func (c *Consumer) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running.Load() {
		return nil
	}

	sub, pub, err := c.open()
	if err != nil {
		return fmt.Errorf("open event transport: %w", err)
	}

	router, err := c.buildRouter(sub, pub)
	if err != nil {
		closeAll(sub, pub)
		return err
	}

	done := make(chan struct{})
	errCh := make(chan error, 1)
	go func() {
		defer close(done)
		errCh <- router.Run(ctx)
	}()

	select {
	case <-router.Running():
	case err := <-errCh:
		closeAll(sub, pub)
		if err == nil {
			err = errors.New("router stopped before it was running")
		}
		return fmt.Errorf("run event router: %w", err)
	case <-ctx.Done():
		_ = router.Close()
		closeAll(sub, pub)
		return ctx.Err()
	}

	c.router = router
	c.subscriber = sub
	c.publisher = pub
	c.done = done
	c.running.Store(true)

	c.logger.Info("Event consumer started", watermill.LogFields{
		"subject":        c.cfg.Subject,
		"publish_alerts": pub != nil,
		"alert_subject":  c.cfg.AlertSubject,
	})
	return nil
}

func (c *Consumer) buildRouter(sub message.Subscriber, pub message.Publisher) (*message.Router, error) {
	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: c.cfg.CloseTimeout}, c.logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill router: %w", err)
	}

	retry := middleware.Retry{
		MaxRetries:      c.cfg.Retry.MaxRetries,
		InitialInterval: c.cfg.Retry.InitialInterval,
		MaxInterval:     c.cfg.Retry.MaxInterval,
		Multiplier:      c.cfg.Retry.Multiplier,
		Logger:          c.logger,
	}
	router.AddMiddleware(
		middleware.Recoverer,
		middleware.CorrelationID,
		retry.Middleware,
	)

	handler := detection.NewWatermillHandler(c.guard)
	if pub != nil {
		c.breaker = NewBreakerPublisher(pub, NewCircuitBreaker(c.cfg.Breaker))
		router.AddHandler(handlerName, c.cfg.Subject, sub, c.cfg.AlertSubject, c.breaker, handler.Handle)
	} else {
		router.AddConsumerHandler(handlerName, c.cfg.Subject, sub, handler.HandleNoPublish)
	}
	return router, nil
}

// Shutdown stops the router and closes the transport. Safe to call when not running.
func (c *Consumer) Shutdown(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.router == nil {
		return
	}

	if err := c.router.Close(); err != nil {
		c.logger.Error("Event router close failed", err, nil)
	}
	select {
	case <-c.done:
	case <-ctx.Done():
		c.logger.Error("Event router did not stop in time", ctx.Err(), nil)
	}

	if c.breaker != nil {
		_ = c.breaker.Close()
		c.breaker = nil
		c.publisher = nil
	}
	closeAll(c.subscriber, c.publisher)

	c.router = nil
	c.subscriber = nil
	c.publisher = nil
	c.running.Store(false)
	c.logger.Info("Event consumer stopped", nil)
}

// IsRunning reports whether the router is running.
func (c *Consumer) IsRunning() bool {
	if !c.running.Load() {
		return false
	}
	select {
	case <-c.doneChan():
		return false
	default:
		return true
	}
}

func (c *Consumer) doneChan() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return c.done
}

// HealthCheck implements the API readiness check signature.
func (c *Consumer) HealthCheck(_ context.Context) error {
	if !c.IsRunning() {
		return ErrConsumerNotRunning
	}
	return nil
}

func closeAll(sub message.Subscriber, pub message.Publisher) {
	if sub != nil {
		_ = sub.Close()
	}
	if pub != nil {
		_ = pub.Close()
	}
}
