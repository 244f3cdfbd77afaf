// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

package detection

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// ErrInvalidInteraction is returned when an interaction payload is not a
// JSON object or a known numeric field is not a number.
var ErrInvalidInteraction = errors.New("invalid interaction payload")

// interactionFields maps accepted wire names to event fields. Both the
// snake_case API names and the camelCase names used by bot front-ends are accepted.
var interactionFields = map[string]string{
	"user_id":              "user_id",
	"userId":               "user_id",
	"swipe_timing":         "swipe_timing",
	"swipeTiming":          "swipe_timing",
	"task_completion_time": "task_completion_time",
	"taskCompletionTime":   "task_completion_time",
	"task_text_length":     "task_text_length",
	"taskTextLength":       "task_text_length",
	"consensus_match":      "consensus_match",
	"consensusMatch":       "consensus_match",
}

// DecodeInteraction parses an open interaction record. Unknown fields are
// kept in Extra and never affect scoring. Numeric values are not range checked.
func DecodeInteraction(data []byte) (*InteractionEvent, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return &InteractionEvent{}, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInteraction, err)
	}

	event := &InteractionEvent{}
	for key, value := range raw {
		field, known := interactionFields[key]
		if !known {
			if err := event.addExtra(key, value); err != nil {
				return nil, err
			}
			continue
		}

		if isNull(value) {
			continue
		}

		if field == "user_id" {
			if err := json.Unmarshal(value, &event.UserID); err != nil {
				return nil, fmt.Errorf("%w: %s must be a string", ErrInvalidInteraction, key)
			}
			continue
		}

		var n float64
		if err := json.Unmarshal(value, &n); err != nil {
			return nil, fmt.Errorf("%w: %s must be a number", ErrInvalidInteraction, key)
		}

		switch field {
		case "swipe_timing":
			event.SwipeTiming = Num(n)
		case "task_completion_time":
			event.TaskCompletionTime = Num(n)
		case "task_text_length":
			event.TaskTextLength = Num(n)
		case "consensus_match":
			event.ConsensusMatch = Num(n)
		}
	}

	return event, nil
}

// addExtra stores an unrecognized field. A nested "extra" object, as
// produced when re-encoding an InteractionEvent, is flattened into Extra.
func (e *InteractionEvent) addExtra(key string, value json.RawMessage) error {
	if e.Extra == nil {
		e.Extra = make(map[string]any)
	}

	if key == "extra" {
		var nested map[string]any
		if err := json.Unmarshal(value, &nested); err == nil {
			for k, v := range nested {
				e.Extra[k] = v
			}
			return nil
		}
	}

	var v any
	if err := json.Unmarshal(value, &v); err != nil {
		return fmt.Errorf("%w: field %s: %v", ErrInvalidInteraction, key, err)
	}
	e.Extra[key] = v
	return nil
}

func isNull(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}
