// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/lotmarket/internal/platform/apperr"
)

func TestAppError_Constructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *apperr.AppError
		status int
		code   string
	}{
		{"bad_request", apperr.BadRequest("INVALID_EMAIL", "Invalid email"), http.StatusBadRequest, "INVALID_EMAIL"},
		{"not_found", apperr.NotFound("Lot"), http.StatusNotFound, "NOT_FOUND"},
		{"conflict", apperr.Conflict("taken"), http.StatusConflict, "CONFLICT"},
		{"conflict_code", apperr.ConflictCode("INVALID_STATUS_TRANSITION", "nope"), http.StatusConflict, "INVALID_STATUS_TRANSITION"},
		{"forbidden", apperr.Forbidden("no"), http.StatusForbidden, "FORBIDDEN"},
		{"internal", apperr.Internal(errors.New("boom")), http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"unauthorized", apperr.Unauthorized("Unauthorized"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"validation", apperr.ValidationError("Validation failed", apperr.FieldError{Field: "title", Message: "title should not be empty"}), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"unavailable", apperr.ServiceUnavailable("Image storage is not configured"), http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}

func TestAppError_WithCauseKeepsOriginal(t *testing.T) {
	base := apperr.Conflict("stale")
	cause := errors.New("modified concurrently")

	wrapped := base.WithCause(cause)

	assert.Nil(t, base.Cause)
	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, base.Message, wrapped.Message)
}

func TestAs_TraversesWrapping(t *testing.T) {
	err := fmt.Errorf("lot_service_failed: %w", apperr.NotFound("Lot"))

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "Lot not found", ae.Message)
	assert.True(t, apperr.IsAppError(err))
	assert.Nil(t, apperr.As(errors.New("plain")))
}
