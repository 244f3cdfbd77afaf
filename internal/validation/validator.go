// Fraudguard - Behavioral Fraud Detection for Crowdsourced Labeling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fraudguard

package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// MaxUserIDLength bounds labeler identifiers accepted over HTTP and NATS.
const MaxUserIDLength = 256

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// GetValidator returns the shared validator with the userid and loglevel
// tags registered.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Registration only fails for an empty tag or nil func.
		_ = validate.RegisterValidation("userid", isUserID)
		_ = validate.RegisterValidation("loglevel", isLogLevel)
	})
	return validate
}

// isUserID accepts opaque labeler IDs made of ASCII letters, digits and
// . _ - : @. Slashes would break the /users/{userID} routes.
func isUserID(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" || len(s) > MaxUserIDLength {
		return false
	}
	return strings.IndexFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || strings.ContainsRune("._-:@", r))
	}) < 0
}

var logLevels = map[string]struct{}{
	"trace": {}, "debug": {}, "info": {}, "warn": {}, "warning": {},
	"error": {}, "fatal": {}, "disabled": {}, "off": {},
}

func isLogLevel(fl validator.FieldLevel) bool {
	_, ok := logLevels[strings.ToLower(fl.Field().String())]
	return ok
}

// FieldError is one failed constraint.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Param   string `json:"param,omitempty"`
	Value   any    `json:"value,omitempty"`
	Message string `json:"message"`
}

// Errors is every constraint a value failed, in struct field order.
type Errors struct {
	Fields []FieldError
}

func (e *Errors) Error() string {
	switch len(e.Fields) {
	case 0:
		return "validation failed"
	case 1:
		return e.Fields[0].Message
	}
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Field + ": " + f.Message
	}
	return strings.Join(msgs, "; ")
}

// Details returns the fields in the shape of an API error's details map:
// a single failure is flattened, several are listed under "fields".
func (e *Errors) Details() map[string]any {
	switch len(e.Fields) {
	case 0:
		return nil
	case 1:
		f := e.Fields[0]
		return map[string]any{"field": f.Field, "tag": f.Tag, "value": f.Value}
	}
	return map[string]any{"fields": e.Fields}
}

// ValidateStruct checks s against its validate tags and returns nil when it
// passes.
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    respondErrorDetails(w, http.StatusBadRequest, &models.APIError{
//	        Code: "VALIDATION_ERROR", Message: verr.Error(), Details: verr.Details(),
//	    }, nil)
//	    return
//	}
func ValidateStruct(s any) *Errors {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &Errors{Fields: []FieldError{{Field: "unknown", Tag: "unknown", Message: err.Error()}}}
	}

	out := &Errors{Fields: make([]FieldError, len(fieldErrs))}
	for i, fe := range fieldErrs {
		out.Fields[i] = FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Value:   fe.Value(),
			Message: message(fe),
		}
	}
	return out
}

func message(fe validator.FieldError) string {
	field, param := fe.Field(), fe.Param()
	isString := fe.Kind().String() == "string"

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "userid":
		return field + " must be 1-256 characters of letters, digits, '.', '_', '-', ':' or '@'"
	case "loglevel":
		return field + " must be one of trace, debug, info, warn, error"
	case "http_url":
		return field + " must be an http or https URL"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lt":
		return fmt.Sprintf("%s must be less than %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}
