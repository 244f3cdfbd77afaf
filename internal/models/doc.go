// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

/*
Package models defines the HTTP wire types shared by the API handlers.

Detection results, profiles, statistics and the pattern catalog are served
with the JSON shapes defined in the detection package. This package only
holds the response envelope and the few API-specific payloads:

  - APIResponse, Metadata, APIError: the envelope every endpoint returns
  - PolicyResponse: data weight and validation rate for one labeler
  - HealthStatus: liveness and readiness payload
*/
package models
