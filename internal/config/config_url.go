// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
)

var (
	webhookSchemes = []string{"http", "https"}
	natsSchemes    = []string{"nats", "tls"}
)

// checkURL parses raw and requires one of schemes plus a host. Webhook
// paths and query strings pass through untouched.
func checkURL(name, raw string, schemes []string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if !slices.Contains(schemes, u.Scheme) {
		return fmt.Errorf("%s: scheme %q not allowed, want %s", name, u.Scheme, strings.Join(schemes, " or "))
	}
	if u.Hostname() == "" {
		return fmt.Errorf("%s: missing host", name)
	}
	return nil
}
