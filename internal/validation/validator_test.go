// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

package validation

import (
	"strings"
	"testing"
)

func TestGetValidator_Singleton(t *testing.T) {
	t.Parallel()

	v1 := GetValidator()
	v2 := GetValidator()

	if v1 == nil {
		t.Fatal("GetValidator() should not return nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
}

type userRequest struct {
	UserID string `validate:"userid"`
}

func TestUserIDValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		id    string
		valid bool
	}{
		{"simple", "labeler42", true},
		{"email like", "ann@example.org", true},
		{"namespaced", "team-a:worker_7.v2", true},
		{"max length", strings.Repeat("a", MaxUserIDLength), true},
		{"empty", "", false},
		{"too long", strings.Repeat("a", MaxUserIDLength+1), false},
		{"slash", "a/b", false},
		{"space", "a b", false},
		{"unicode", "usér", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateStruct(&userRequest{UserID: tt.id})
			if tt.valid && err != nil {
				t.Errorf("ValidateStruct(%q) = %v, want nil", tt.id, err)
			}
			if !tt.valid {
				if err == nil {
					t.Fatalf("ValidateStruct(%q) = nil, want error", tt.id)
				}
				if got := err.Fields[0].Tag; got != "userid" {
					t.Errorf("tag = %q, want userid", got)
				}
			}
		})
	}
}

type levelConfig struct {
	Level string `validate:"loglevel"`
}

func TestLogLevelValidation(t *testing.T) {
	t.Parallel()

	for _, lvl := range []string{"trace", "DEBUG", "info", "warn", "error"} {
		if err := ValidateStruct(&levelConfig{Level: lvl}); err != nil {
			t.Errorf("level %q rejected: %v", lvl, err)
		}
	}
	for _, lvl := range []string{"", "verbose", "critical"} {
		if err := ValidateStruct(&levelConfig{Level: lvl}); err == nil {
			t.Errorf("level %q accepted", lvl)
		}
	}
}

type rangeStruct struct {
	Threshold float64 `validate:"gt=0,lte=1"`
	Name      string  `validate:"required,max=5"`
	Mode      string  `validate:"oneof=json console"`
}

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input rangeStruct
		want  string
	}{
		{"gt", rangeStruct{Threshold: 0, Name: "a", Mode: "json"}, "Threshold must be greater than 0"},
		{"lte", rangeStruct{Threshold: 1.5, Name: "a", Mode: "json"}, "Threshold must be less than or equal to 1"},
		{"required", rangeStruct{Threshold: 0.5, Mode: "json"}, "Name is required"},
		{"max string", rangeStruct{Threshold: 0.5, Name: "toolong", Mode: "json"}, "Name must be at most 5 characters"},
		{"oneof", rangeStruct{Threshold: 0.5, Name: "a", Mode: "xml"}, "Mode must be one of: json console"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateStruct(&tt.input)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if err.Error() != tt.want {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.want)
			}
		})
	}
}

func TestDetails_SingleError(t *testing.T) {
	t.Parallel()

	err := ValidateStruct(&userRequest{UserID: "a/b"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	details := err.Details()
	if details["field"] != "UserID" {
		t.Errorf("details[field] = %v, want UserID", details["field"])
	}
	if details["value"] != "a/b" {
		t.Errorf("details[value] = %v, want a/b", details["value"])
	}
}

func TestDetails_MultipleErrors(t *testing.T) {
	t.Parallel()

	err := ValidateStruct(&rangeStruct{Threshold: 2, Mode: "xml"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if len(err.Fields) != 3 {
		t.Fatalf("Fields len = %d, want 3", len(err.Fields))
	}

	fields, ok := err.Details()["fields"].([]FieldError)
	if !ok || len(fields) != 3 {
		t.Fatalf("details[fields] = %v", err.Details()["fields"])
	}
	if msg := err.Error(); !strings.Contains(msg, "Threshold:") || !strings.Contains(msg, "Mode:") {
		t.Errorf("Error() = %q, want per-field prefixes", msg)
	}
}

func TestValidateStruct_NonStruct(t *testing.T) {
	t.Parallel()

	err := ValidateStruct("not a struct")
	if err == nil {
		t.Fatal("expected error for non-struct input")
	}
	if err.Fields[0].Field != "unknown" {
		t.Errorf("Field = %q, want unknown", err.Fields[0].Field)
	}
}

func TestErrors_Empty(t *testing.T) {
	t.Parallel()

	var e Errors
	if e.Error() != "validation failed" {
		t.Errorf("Error() = %q", e.Error())
	}
	if e.Details() != nil {
		t.Errorf("Details() = %v, want nil", e.Details())
	}
}
