// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/lotmarket/internal/platform/apperr"
	"github.com/taibuivan/lotmarket/internal/platform/dberr"
	"github.com/taibuivan/lotmarket/internal/platform/respond"
)

func TestError_MapsAppErrorOnce(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"not_found", apperr.NotFound("Lot"), http.StatusNotFound, "NOT_FOUND", "Lot not found"},
		{"store_not_found", fmt.Errorf("lot lookup: %w", dberr.ErrNotFound), http.StatusNotFound, "NOT_FOUND", "Not Found"},
		{"wrapped_app_error", fmt.Errorf("lot_service_update_failed: %w", apperr.Forbidden("nope")), http.StatusForbidden, "FORBIDDEN", "nope"},
		{"plain_error_hidden", errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodGet, "/", nil)

			respond.Error(recorder, request, tt.err)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			var body respond.ErrorEnvelope
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantMsg, body.Error)
		})
	}
}

func TestOK_WrapsInEnvelope(t *testing.T) {
	recorder := httptest.NewRecorder()

	respond.OK(recorder, map[string]string{"token": "abc"})

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":{"token":"abc"}}`, recorder.Body.String())
	assert.Contains(t, recorder.Header().Get("Content-Type"), "application/json")
}

func TestStatus_UsesGivenCode(t *testing.T) {
	recorder := httptest.NewRecorder()

	respond.Status(recorder, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.JSONEq(t, `{"data":{"status":"degraded"}}`, recorder.Body.String())
}

func TestNoContent(t *testing.T) {
	recorder := httptest.NewRecorder()

	respond.NoContent(recorder)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Zero(t, recorder.Body.Len())
}
