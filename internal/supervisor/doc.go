// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

/*
Package supervisor runs fraudguard's long-lived services under a suture v4
supervisor tree.

# Tree

	fraudguard
	├── detection-layer
	│   └── detection-guard   (profile housekeeping)
	├── messaging-layer
	│   └── event-consumer    (if NATS is enabled, build tag: nats)
	└── api-layer
	    └── http-server

Each layer is its own supervisor, so a consumer stuck in a restart loop
while NATS is unreachable backs off without touching the HTTP API or the
housekeeping loop.

# Restart Policy

Failures decay at FailureDecay per second. When a layer accumulates more
than FailureThreshold failures it waits FailureBackoff before restarting
its services. ShutdownTimeout bounds how long each service gets to return
after its context is canceled; services that overrun are listed by
UnstoppedServiceReport.

# Logging

Supervisor events (service panics, terminations, backoff) are logged via
sutureslog on the *slog.Logger passed to NewSupervisorTree. In production
that logger is logging.NewSlogLogger, so supervisor events land in the same
zerolog stream as the rest of the service.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{})
	if err != nil {
		return err
	}
	tree.AddDetectionService(services.NewDetectionService(guard))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	return tree.Serve(ctx)

See the services subpackage for the suture.Service wrappers.
*/
package supervisor
