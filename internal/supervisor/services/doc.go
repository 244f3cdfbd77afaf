// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

/*
Package services adapts fraudguard components to suture.Service.

Each wrapper translates one lifecycle shape into Serve(ctx) error:

  - DetectionService: RunWithContext loop of *detection.Guard.
  - HTTPServerService: ListenAndServe/Shutdown of *http.Server, with a
    fresh deadline for Shutdown because ctx is already canceled.
  - EventConsumerService: Start/Shutdown/IsRunning of
    *eventprocessor.Consumer. Serve polls IsRunning and returns
    ErrConsumerStopped if the router dies, letting the supervisor reconnect.

The wrappers depend on small interfaces rather than the concrete types so
they can be tested with mocks and so this package does not pull the NATS
client into builds without the nats tag.

Returning ctx.Err() means a clean stop. Any other error is a failure and
counts toward the layer's restart backoff.
*/
package services
