// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

package services

import (
	"context"
)

// GuardRunner is the background half of the detection guard.
// Satisfied by *detection.Guard.
type GuardRunner interface {
	// RunWithContext performs periodic profile housekeeping until ctx ends.
	RunWithContext(ctx context.Context) error
}

// DetectionService supervises the guard's housekeeping loop.
//
//	guard := detection.NewGuard(engine, cfg)
//	tree.AddDetectionService(services.NewDetectionService(guard))
type DetectionService struct {
	guard GuardRunner
	name  string
}

// NewDetectionService wraps guard.
func NewDetectionService(guard GuardRunner) *DetectionService {
	return &DetectionService{
		guard: guard,
		name:  "detection-guard",
	}
}

// Serve implements suture.Service.
func (d *DetectionService) Serve(ctx context.Context) error {
	return d.guard.RunWithContext(ctx)
}

// String implements fmt.Stringer. Suture uses it in log messages.
func (d *DetectionService) String() string {
	return d.name
}
