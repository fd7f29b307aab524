// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Messages
//
// Field messages are part of the public API contract and are phrased as
// "<field> <rule>", e.g. "title should not be empty".
package validate

import (
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/lotmarket/internal/platform/apperr"
)

var (
	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")
)

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, field+" should not be empty")
	}
	return v
}

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("%s must be shorter than or equal to %d characters", field, max))
	}
	return v
}

// MinLen fails if the Unicode character count is below min.
func (v *Validator) MinLen(field, value string, min int) *Validator {
	if utf8.RuneCountInString(value) < min {
		v.add(field, fmt.Sprintf("%s must be longer than or equal to %d characters", field, min))
	}
	return v
}

// Min fails if value is below min.
func (v *Validator) Min(field string, value, min float64) *Validator {
	if value < min {
		v.add(field, fmt.Sprintf("%s must not be less than %s", field, strconv.FormatFloat(min, 'f', -1, 64)))
	}
	return v
}

// Email fails if the value is not a bare RFC 5322 address.
//
// Display-name forms such as "Bob <bob@example.com>" are rejected.
func (v *Validator) Email(field, value string) *Validator {
	address, err := mail.ParseAddress(value)
	if err != nil || address.Address != value {
		v.add(field, field+" must be an email")
	}
	return v
}

// OneOf fails if the value is not in the allowed set of strings.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.add(field, fmt.Sprintf("%s must be one of the following values: %s", field, strings.Join(allowed, ", ")))
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
// # Example
//
//	v.Custom("lotEndTime", end.Before(start), "lotEndTime must not be before lotStartTime")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns a [apperr.AppError] (VALIDATION_ERROR) if any rules failed,
// or nil if all rules passed.
//
// It is the only output method, so call it at the end of the chain.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// Has reports whether field already has a failed rule.
func (v *Validator) Has(field string) bool {
	for _, e := range v.errs {
		if e.Field == field {
			return true
		}
	}
	return false
}

// add appends a [apperr.FieldError] to the internal slice.
func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}

// FieldError is a shortcut to create a single-field validation error.
func FieldError(field, message string) *apperr.AppError {
	return apperr.ValidationError("Validation failed", apperr.FieldError{
		Field:   field,
		Message: message,
	})
}
