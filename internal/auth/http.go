// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/lotmarket/internal/platform/middleware"
	requestutil "github.com/taibuivan/lotmarket/internal/platform/request"
	"github.com/taibuivan/lotmarket/internal/platform/respond"
)

// Handler implements the authentication HTTP endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication routes.
//
// # Endpoints
//   - POST  /register        : Creates a new account.
//   - POST  /login           : Verifies credentials and returns a token.
//   - POST  /forgot-password : Mails reset instructions.
//   - PATCH /reset-password  : Replaces the caller's password (auth required).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/forgot-password", handler.forgotPassword)
	router.With(middleware.RequireAuth).Patch("/reset-password", handler.resetPassword)

	return router
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// register handles POST /api/auth/register.
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.authService.Register(request.Context(), RegisterInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, account)
}

type loginRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	IsRememberMe bool   `json:"isRememberMe"`
}

// login handles POST /api/auth/login.
//
// # Returns
//   - 200 with {token} on success.
//   - 400 "Wrong credentials provided" for an unknown email or a wrong password.
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input loginRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 2. Credential Check ───────────────────────────────────────────────

	account, err := handler.authService.ValidateCredentials(request.Context(), input.Email, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 3. Token Issue ────────────────────────────────────────────────────

	result, err := handler.authService.Login(request.Context(), account, input.IsRememberMe)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// forgotPassword handles POST /api/auth/forgot-password.
func (handler *Handler) forgotPassword(writer http.ResponseWriter, request *http.Request) {
	var input forgotPasswordRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	ack, err := handler.authService.ForgotPassword(request.Context(), input.Email)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ack)
}

type resetPasswordRequest struct {
	CurrentPassword         string `json:"currentPassword"`
	NewPassword             string `json:"newPassword"`
	NewPasswordConfirmation string `json:"newPasswordConfirmation"`
}

// resetPassword handles PATCH /api/auth/reset-password.
//
// The account is the one named by the bearer token, never by the body.
func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input resetPasswordRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.authService.ResetPassword(request.Context(), ResetPasswordInput{
		Email:                   claims.Email,
		CurrentPassword:         input.CurrentPassword,
		NewPassword:             input.NewPassword,
		NewPasswordConfirmation: input.NewPasswordConfirmation,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, account)
}
