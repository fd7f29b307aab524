// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/lotmarket/internal/platform/apperr"
	"github.com/taibuivan/lotmarket/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "title", "Vintage clock", false},
		{"empty_string", "title", "", true},
		{"whitespace_only", "title", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
				assert.Equal(t, "title should not be empty", ae.Details[0].Message)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Email checks the email format validation rule.
*/
func TestValidator_Email(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		isValid bool
	}{
		{"valid_email", "test@example.com", true},
		{"invalid_format", "invalid-email", false},
		{"missing_domain", "test@", false},
		{"display_name_form", "Bob <bob@example.com>", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Email("email", tt.email)

			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Min checks the lower bound rule used for prices.
*/
func TestValidator_Min(t *testing.T) {
	v := &validate.Validator{}
	v.Min("currentPrice", -0.01, 0).Min("estimatedPrice", 0, 0)

	ae := apperr.As(v.Err())
	require.NotNil(t, ae)
	require.Len(t, ae.Details, 1)
	assert.Equal(t, "currentPrice must not be less than 0", ae.Details[0].Message)
}

/*
TestValidator_OneOf checks the enum membership message.
*/
func TestValidator_OneOf(t *testing.T) {
	v := &validate.Validator{}
	v.OneOf("status", "archived", "pending", "inProcess", "closed")

	ae := apperr.As(v.Err())
	require.NotNil(t, ae)
	assert.Equal(t, "status must be one of the following values: pending, inProcess, closed", ae.Details[0].Message)
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("password", "hunter22").
		MinLen("password", "hunter22", 8).
		MaxLen("password", "hunter22", 72).
		Email("email", "tai@lotmarket.dev").
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("title", "").          // Fails
		MinLen("password", "a", 8).     // Fails
		Email("email", "not-an-email"). // Fails
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	// Should accumulate all 3 errors
	assert.Len(t, ae.Details, 3)
}
