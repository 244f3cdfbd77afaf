// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// restoreGlobal puts the current global logger back after the test.
func restoreGlobal(t *testing.T) {
	t.Helper()
	prev := Logger()
	t.Cleanup(func() { SetLogger(prev) })
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.Level != "info" || cfg.Format != "json" || cfg.Caller || !cfg.Timestamp || cfg.Output == nil {
		t.Errorf("DefaultConfig() = %+v", cfg)
	}
}

func TestInit(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		log     func()
		want    []string
		notWant []string
	}{
		{
			name: "json with service",
			cfg:  Config{Level: "info", Format: "json", Service: "fraudguard"},
			log:  func() { Info().Str("user_id", "u1").Msg("user flagged") },
			want: []string{`"service":"fraudguard"`, `"level":"info"`, `"user_id":"u1"`, `"message":"user flagged"`},
		},
		{
			name:    "level filters",
			cfg:     Config{Level: "warn", Format: "json"},
			log:     func() { Info().Msg("dropped"); Warn().Msg("kept") },
			want:    []string{"kept"},
			notWant: []string{"dropped"},
		},
		{
			name:    "console",
			cfg:     Config{Level: "info", Format: "console"},
			log:     func() { Info().Msg("console line") },
			want:    []string{"console line"},
			notWant: []string{`"level"`},
		},
		{
			name: "timestamp",
			cfg:  Config{Level: "info", Format: "json", Timestamp: true},
			log:  func() { Info().Msg("stamped") },
			want: []string{`"time":`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restoreGlobal(t)
			var buf bytes.Buffer
			tt.cfg.Output = &buf
			Init(tt.cfg)
			tt.log()

			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("missing %s in %s", w, out)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("unexpected %s in %s", w, out)
				}
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]zerolog.Level{
		"trace":    zerolog.TraceLevel,
		"debug":    zerolog.DebugLevel,
		"DEBUG":    zerolog.DebugLevel,
		" info ":   zerolog.InfoLevel,
		"":         zerolog.InfoLevel,
		"warning":  zerolog.WarnLevel,
		"error":    zerolog.ErrorLevel,
		"fatal":    zerolog.FatalLevel,
		"off":      zerolog.Disabled,
		"disabled": zerolog.Disabled,
		"chatty":   zerolog.InfoLevel,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLevelShortcuts(t *testing.T) {
	restoreGlobal(t)
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf).Level(zerolog.TraceLevel))

	shortcuts := map[string]func() *zerolog.Event{
		"trace": Trace, "debug": Debug, "info": Info, "warn": Warn, "error": Error,
	}
	for level, fn := range shortcuts {
		buf.Reset()
		fn().Msg("x")
		if !strings.Contains(buf.String(), `"level":"`+level+`"`) {
			t.Errorf("%s: got %s", level, buf.String())
		}
	}

	buf.Reset()
	Err(errors.New("webhook returned 502")).Msg("delivery failed")
	if !strings.Contains(buf.String(), `"error":"webhook returned 502"`) {
		t.Errorf("Err: got %s", buf.String())
	}
}

func TestSetLevelString(t *testing.T) {
	restoreGlobal(t)
	SetLogger(zerolog.New(&bytes.Buffer{}).Level(zerolog.InfoLevel))

	if IsLevelEnabled(zerolog.DebugLevel) {
		t.Error("debug should be disabled at info")
	}
	SetLevelString("debug")
	if GetLevel() != zerolog.DebugLevel || !IsLevelEnabled(zerolog.DebugLevel) {
		t.Errorf("level = %v, want debug", GetLevel())
	}
	SetLevelString("error")
	if IsLevelEnabled(zerolog.WarnLevel) {
		t.Error("warn should be disabled at error")
	}
}

func TestNewTestLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := NewTestLogger(&buf)
	l.Debug().Str("key", "value").Msg("test message")
	l.Trace().Msg("hidden")

	out := buf.String()
	if !strings.Contains(out, `"key":"value"`) || strings.Contains(out, "hidden") {
		t.Errorf("NewTestLogger output = %s", out)
	}
}
