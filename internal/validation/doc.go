// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared process-wide so struct metadata is
// cached once. Two custom tags are registered on it:
//
//	userid    - opaque labeler ID, 1-256 chars of [A-Za-z0-9._:@-]
//	loglevel  - a level name understood by the logging package
//
// The api package validates path parameters with it, and the config package
// validates the loaded configuration.
//
//	type userRequest struct {
//	    UserID string `validate:"userid"`
//	}
//
//	if verr := validation.ValidateStruct(&userRequest{UserID: id}); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
//
// Errors are translated to readable messages and, through ToAPIError, to the
// VALIDATION_ERROR shape used by every API error response.
package validation
