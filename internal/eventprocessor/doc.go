// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

/*
Package eventprocessor consumes interaction events from NATS JetStream.

Front-ends publish one JSON interaction record per message on the
interaction subject (default "interactions.>"). The user is taken from the
record's user_id field, or from the user_id message metadata when the body
omits it. Each record is scored by the detection guard. When PublishAlerts is
set, the analysis result of every flagged user is published on AlertSubject
(default "fraud.flagged") through a circuit breaker.

	consumer, err := eventprocessor.NewConsumer(cfg, guard)
	if err != nil { ... }
	if err := consumer.Start(ctx); err != nil { ... }
	defer consumer.Shutdown(context.Background())

Router middleware: panic recovery, correlation ID propagation, and retry with
exponential backoff. Malformed payloads are logged, counted and acked; they
are never redelivered.

Build tags: the NATS transport and Consumer need -tags nats. Without it
NewConsumer returns ErrNATSNotEnabled. Configuration, the circuit breaker,
the breaker-wrapped publisher and the Watermill zerolog adapter are always
built.
*/
package eventprocessor
