// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package requestutil_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/lotmarket/internal/platform/apperr"
	"github.com/taibuivan/lotmarket/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/lotmarket/internal/platform/request"
	"github.com/taibuivan/lotmarket/internal/platform/sec"
)

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantErr  string
		wantCode int
	}{
		{name: "valid", body: `{"email":"a@b.co"}`},
		{name: "malformed", body: `{"email":`, wantErr: "Invalid JSON payload", wantCode: http.StatusBadRequest},
		{name: "too_large", body: `{"email":"` + strings.Repeat("x", 2<<20) + `"}`, wantErr: "Request body is too large", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var target struct {
				Email string `json:"email"`
			}
			err := requestutil.DecodeJSON(httptest.NewRecorder(), request, &target)

			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "a@b.co", target.Email)
				return
			}
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, tt.wantErr, ae.Message)
			assert.Equal(t, tt.wantCode, ae.HTTPStatus)
		})
	}
}

func TestQueryBool(t *testing.T) {
	for query, want := range map[string]bool{"own=true": true, "own=1": true, "own=false": false, "own=maybe": false, "": false} {
		request := httptest.NewRequest(http.MethodGet, "/api/lots?"+query, nil)
		assert.Equal(t, want, requestutil.QueryBool(request, "own"), query)
	}
}

func TestRequiredUserID(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)

	_, err := requestutil.RequiredUserID(request)
	assert.Equal(t, http.StatusUnauthorized, apperr.As(err).HTTPStatus)

	request = request.WithContext(ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{UserID: "u1"}))
	userID, err := requestutil.RequiredUserID(request)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
}
