// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/lotmarket/internal/auth"
	"github.com/taibuivan/lotmarket/internal/platform/middleware"
	"github.com/taibuivan/lotmarket/internal/platform/sec"
	"github.com/taibuivan/lotmarket/internal/user"
)

type httpFixture struct {
	*fixture
	router http.Handler
	tokens *sec.TokenService
}

func newHTTPFixture(t *testing.T) *httpFixture {
	t.Helper()

	tokens, err := sec.NewTokenService(sec.TokenConfig{Secret: "test-secret", TimeToLive: time.Hour, Issuer: "lotmarket"})
	require.NoError(t, err)

	f := &fixture{
		users:    user.NewMemoryRepository(),
		notifier: &fakeNotifier{},
	}
	f.service = auth.NewService(f.users, tokens, f.notifier, slog.New(slog.NewJSONHandler(io.Discard, nil)))

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(tokens))
	router.Mount("/api/auth", auth.NewHandler(f.service).Routes())

	return &httpFixture{fixture: f, router: router, tokens: tokens}
}

func (f *httpFixture) do(t *testing.T, method, path, body, token string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	f.router.ServeHTTP(recorder, request)

	var decoded map[string]any
	if recorder.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &decoded))
	}
	return recorder, decoded
}

func TestHandler_RegisterAndLogin(t *testing.T) {
	f := newHTTPFixture(t)

	recorder, body := f.do(t, http.MethodPost, "/api/auth/register", `{"email":"Buyer@Example.com","password":"long-enough"}`, "")
	require.Equal(t, http.StatusCreated, recorder.Code)
	data := body["data"].(map[string]any)
	assert.Equal(t, "buyer@example.com", data["email"])
	assert.NotContains(t, data, "password")

	recorder, body = f.do(t, http.MethodPost, "/api/auth/login", `{"email":"buyer@example.com","password":"long-enough","isRememberMe":true}`, "")
	require.Equal(t, http.StatusOK, recorder.Code)

	token := body["data"].(map[string]any)["token"].(string)
	claims, err := f.tokens.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "buyer@example.com", claims.Email)
	assert.Equal(t, data["id"], claims.UserID)
}

func TestHandler_Login_WrongCredentials(t *testing.T) {
	f := newHTTPFixture(t)
	f.seed(t, "buyer@example.com", "long-enough")

	for _, payload := range []string{
		`{"email":"buyer@example.com","password":"wrong"}`,
		`{"email":"ghost@example.com","password":"long-enough"}`,
		`{}`,
	} {
		recorder, body := f.do(t, http.MethodPost, "/api/auth/login", payload, "")
		assert.Equal(t, http.StatusBadRequest, recorder.Code, payload)
		assert.Equal(t, "Wrong credentials provided", body["error"], payload)
	}
}

func TestHandler_ForgotPassword(t *testing.T) {
	f := newHTTPFixture(t)
	f.seed(t, "buyer@example.com", "long-enough")

	recorder, body := f.do(t, http.MethodPost, "/api/auth/forgot-password", `{"email":"buyer@example.com"}`, "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, auth.ForgotPasswordAcknowledgement, body["data"].(map[string]any)["message"])
	assert.NotContains(t, recorder.Body.String(), "token")

	recorder, body = f.do(t, http.MethodPost, "/api/auth/forgot-password", `{"email":"ghost@example.com"}`, "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "Invalid email", body["error"])
}

func TestHandler_ResetPassword(t *testing.T) {
	f := newHTTPFixture(t)
	account := f.seed(t, "buyer@example.com", "long-enough")

	token, err := f.tokens.GenerateToken(account.ID, account.Email)
	require.NoError(t, err)

	recorder, _ := f.do(t, http.MethodPatch, "/api/auth/reset-password", `{}`, "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder, body := f.do(t, http.MethodPatch, "/api/auth/reset-password",
		`{"currentPassword":"long-enough","newPassword":"next-pass-1","newPasswordConfirmation":"next-pass-2"}`, token)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "Passwords do not match", body["error"])

	recorder, body = f.do(t, http.MethodPatch, "/api/auth/reset-password",
		`{"currentPassword":"nope","newPassword":"next-pass-1","newPasswordConfirmation":"next-pass-1"}`, token)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "Current password is incorrect", body["error"])

	recorder, body = f.do(t, http.MethodPatch, "/api/auth/reset-password",
		`{"currentPassword":"long-enough","newPassword":"next-pass-1","newPasswordConfirmation":"next-pass-1"}`, token)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, account.ID, body["data"].(map[string]any)["id"])

	_, err = f.service.ValidateCredentials(t.Context(), "buyer@example.com", "next-pass-1")
	assert.NoError(t, err)
}

func TestHandler_ResetPassword_UserGone(t *testing.T) {
	f := newHTTPFixture(t)

	token, err := f.tokens.GenerateToken("deleted-id", "deleted@example.com")
	require.NoError(t, err)

	recorder, body := f.do(t, http.MethodPatch, "/api/auth/reset-password",
		`{"currentPassword":"a","newPassword":"b","newPasswordConfirmation":"b"}`, token)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "NOT_FOUND", body["code"])
}
