// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

// Package logging provides zerolog-based structured logging for Fraudguard.
//
// A single global logger is configured once at startup from the logging
// section of the configuration. Everything else logs through the package
// helpers or a component logger.
//
// # Quick Start
//
//	import "github.com/tomtom215/fraudguard/internal/logging"
//
//	logging.Init(logging.Config{
//	    Level:   "info",
//	    Format:  "json",
//	    Service: "fraudguard",
//	})
//
//	logging.Info().Str("addr", addr).Msg("HTTP server listening")
//	logging.Error().Err(err).Str("notifier", "discord").Msg("delivery failed")
//
// # Configuration
//
// Before Init runs, the logger reads these environment variables:
//
//	LOG_LEVEL   - trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - json, console (default: json)
//	LOG_CALLER  - true to include file:line (default: false)
//
// # Context-Aware Logging
//
// HTTP middleware and the NATS consumer attach a correlation ID to the
// request context. Ctx and its shorthands copy it into every entry:
//
//	ctx = logging.ContextWithCorrelationID(ctx, id)
//	logging.CtxInfo(ctx).Str("user_id", userID).Msg("user flagged")
//
// # Component Loggers
//
//	log := logging.WithComponent("notifier")
//	log.Warn().Str("state", "open").Msg("circuit breaker state changed")
//
// # slog Adapter
//
// The supervisor tree takes an slog.Logger. NewSlogLogger bridges it to
// zerolog so restart and backoff events share the JSON stream.
//
// # Output Formats
//
// JSON:
//
//	{"level":"info","service":"fraudguard","time":"2026-01-03T10:30:00Z","message":"HTTP server listening","addr":":8480"}
//
// Console:
//
//	2026-01-03T10:30:00Z INF HTTP server listening addr=:8480
//
// All exported functions are safe for concurrent use.
package logging
