// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

//go:build nats

package detection

import (
	"strconv"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"

	"github.com/tomtom215/fraudguard/internal/logging"
	"github.com/tomtom215/fraudguard/internal/metrics"
)

// WatermillHandler analyzes interaction events from the NATS event stream.
type WatermillHandler struct {
	guard *Guard
}

// NewWatermillHandler creates a new Watermill handler for detection.
func NewWatermillHandler(guard *Guard) *WatermillHandler {
	return &WatermillHandler{guard: guard}
}

// Handle analyzes one interaction event and, when the user ends up flagged,
// emits the analysis result for publication on AlertTopic.
// This method implements the Watermill HandlerFunc signature.
func (h *WatermillHandler) Handle(msg *message.Message) ([]*message.Message, error) {
	result, ok := h.analyze(msg)
	if !ok || !result.IsFlagged {
		return nil, nil
	}

	payload, err := json.Marshal(result)
	if err != nil {
		logging.Error().Err(err).Msg("failed to marshal analysis result")
		return nil, nil
	}

	out := message.NewMessage(msg.UUID, payload)
	out.Metadata.Set("user_id", result.UserID)
	out.Metadata.Set("recommended_action", string(result.RecommendedAction))
	out.Metadata.Set("fraud_confidence", strconv.FormatFloat(result.FraudConfidence, 'f', 4, 64))
	return []*message.Message{out}, nil
}

// HandleNoPublish analyzes events without publishing output messages.
// This implements the Watermill NoPublishHandlerFunc signature.
func (h *WatermillHandler) HandleNoPublish(msg *message.Message) error {
	h.analyze(msg)
	return nil
}

// analyze decodes and scores the message. Malformed payloads are logged and
// dropped; retrying them would never succeed.
func (h *WatermillHandler) analyze(msg *message.Message) (*AnalysisResult, bool) {
	ctx := msg.Context()
	if cid := msg.Metadata.Get("correlation_id"); cid != "" {
		ctx = logging.ContextWithCorrelationID(ctx, cid)
	}

	event, err := DecodeInteraction(msg.Payload)
	if err != nil {
		metrics.RecordEventConsumed("invalid")
		logging.CtxWarn(ctx).Err(err).Str("message_uuid", msg.UUID).Msg("failed to parse interaction event")
		return nil, false
	}

	userID := event.UserID
	if userID == "" {
		userID = msg.Metadata.Get("user_id")
	}
	if userID == "" {
		metrics.RecordEventConsumed("invalid")
		logging.CtxWarn(ctx).Str("message_uuid", msg.UUID).Msg("interaction event without user_id")
		return nil, false
	}

	result := h.guard.Analyze(ctx, userID, event)
	metrics.RecordEventConsumed("processed")
	return result, true
}
