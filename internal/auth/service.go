// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package auth implements the credential lifecycle of lotmarket: registration,
// login, forgot-password and reset-password.
//
// # Architecture
//
// The [Service] orchestrates three collaborators through interfaces:
//   - [user.Repository] for credential lookup and persistence.
//   - [TokenIssuer] for signing access tokens.
//   - [Notifier] for delivering reset instructions.
//
// It knows nothing about HTTP; [Handler] adapts it to the router.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/taibuivan/lotmarket/internal/platform/dberr"
	"github.com/taibuivan/lotmarket/internal/platform/sec"
	"github.com/taibuivan/lotmarket/internal/platform/validate"
	"github.com/taibuivan/lotmarket/internal/user"
	"github.com/taibuivan/lotmarket/pkg/textnorm"
)

// TokenIssuer signs access tokens carrying the user's id and email.
type TokenIssuer interface {
	GenerateToken(userID, email string) (string, error)
}

// Notifier delivers a reset-password token to the user's mailbox.
//
// Implementations must attempt delivery exactly once per call.
type Notifier interface {
	SendResetPasswordToken(ctx context.Context, recipient *user.User, token string) error
}

// Service implements the authentication use cases.
type Service struct {
	users    user.Repository
	tokens   TokenIssuer
	notifier Notifier
	logger   *slog.Logger
}

// NewService constructs a new [Service] with its collaborators.
func NewService(users user.Repository, tokens TokenIssuer, notifier Notifier, logger *slog.Logger) *Service {
	return &Service{
		users:    users,
		tokens:   tokens,
		notifier: notifier,
		logger:   logger,
	}
}

// timingHash is compared against when the email is unknown, so both failure
// paths of credential validation cost one bcrypt comparison.
var timingHash = sync.OnceValue(func() string {
	hash, _ := sec.HashPassword("lotmarket-unknown-account")
	return hash
})

// # Registration

// RegisterInput holds the data required to create an account.
type RegisterInput struct {
	Email    string
	Password string
}

/*
Register validates, hashes and persists a new account.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *user.User: The stored account (password hash is never serialised)
  - error: VALIDATION_ERROR, [ErrEmailTaken] or a store failure
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*user.User, error) {

	// ── 1. Normalisation & Validation ────────────────────────────────────

	email := textnorm.Email(input.Email)

	validator := &validate.Validator{}
	validator.
		Required(FieldEmail, email).
		Email(FieldEmail, email).
		MinLen(FieldPassword, input.Password, MinPasswordLength).
		Custom(FieldPassword, len(input.Password) > MaxPasswordLength,
			fmt.Sprintf("%s must be shorter than or equal to %d bytes", FieldPassword, MaxPasswordLength))

	if err := validator.Err(); err != nil {
		return nil, err
	}

	// ── 2. Hashing ───────────────────────────────────────────────────────

	hash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	// ── 3. Persistence ───────────────────────────────────────────────────

	account := &user.User{Email: email, Password: hash}
	if err := service.users.Create(context, account); err != nil {
		if dberr.IsDuplicate(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	service.logger.Info("user_registered", slog.String("user_id", account.ID))
	return account, nil
}

// # Credentials

/*
ValidateCredentials looks up the account by email and verifies the password.

An unknown email and a wrong password both yield [ErrInvalidCredentials].
*/
func (service *Service) ValidateCredentials(context context.Context, email, password string) (*user.User, error) {
	account, err := service.users.FindByEmail(context, textnorm.Email(email))
	if err != nil {
		if dberr.IsNotFound(err) {
			sec.CheckPasswordHash(password, timingHash())
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("auth_service_validate_credentials_failed: %w", err)
	}

	if !sec.CheckPasswordHash(password, account.Password) {
		return nil, ErrInvalidCredentials
	}

	return account, nil
}

// LoginResult is the response of a successful login.
type LoginResult struct {
	Token string `json:"token"`
}

/*
Login issues an access token for an already validated account and records
its remember-me preference.

The password is not checked again; callers must run [Service.ValidateCredentials] first.
*/
func (service *Service) Login(context context.Context, account *user.User, isRememberMe bool) (*LoginResult, error) {
	token, err := service.tokens.GenerateToken(account.ID, account.Email)
	if err != nil {
		return nil, fmt.Errorf("auth_service_login_failed: %w", err)
	}

	if err := service.users.UpdateRememberMe(context, account.ID, isRememberMe); err != nil {
		return nil, fmt.Errorf("auth_service_login_failed: %w", err)
	}

	account.IsRememberMe = isRememberMe
	service.logger.Info("user_logged_in", slog.String("user_id", account.ID))

	return &LoginResult{Token: token}, nil
}

// # Password Recovery

// Acknowledgement is the fixed response of the forgot-password flow.
type Acknowledgement struct {
	Message string `json:"message"`
}

/*
ForgotPassword issues a token for the account and hands it to the [Notifier].

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *Acknowledgement: A fixed message; the token itself is never returned
  - error: [ErrInvalidEmail] for an unknown email, or the delivery failure
*/
func (service *Service) ForgotPassword(context context.Context, email string) (*Acknowledgement, error) {
	account, err := service.users.FindByEmail(context, textnorm.Email(email))
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, ErrInvalidEmail
		}
		return nil, fmt.Errorf("auth_service_forgot_password_failed: %w", err)
	}

	token, err := service.tokens.GenerateToken(account.ID, account.Email)
	if err != nil {
		return nil, fmt.Errorf("auth_service_forgot_password_failed: %w", err)
	}

	if err := service.notifier.SendResetPasswordToken(context, account, token); err != nil {
		return nil, fmt.Errorf("auth_service_send_reset_token_failed: %w", err)
	}

	service.logger.Info("password_reset_requested", slog.String("user_id", account.ID))
	return &Acknowledgement{Message: ForgotPasswordAcknowledgement}, nil
}

// ResetPasswordInput carries the reset-password form of an authenticated user.
type ResetPasswordInput struct {
	Email                   string
	CurrentPassword         string
	NewPassword             string
	NewPasswordConfirmation string
}

/*
ResetPassword replaces the password of the account identified by email.

The checks run in a fixed order: account exists, current password verifies,
new password equals its confirmation byte for byte. The stored hash is swapped
only if it is still the one that was verified.

Returns:
  - *user.User: The account as it was read, before the update
  - error: [ErrUserNotFound], [ErrWrongCurrentPassword], [ErrPasswordMismatch],
    [user.ErrStalePassword] or a store failure
*/
func (service *Service) ResetPassword(context context.Context, input ResetPasswordInput) (*user.User, error) {

	// ── 1. Lookup ────────────────────────────────────────────────────────

	account, err := service.users.FindByEmail(context, textnorm.Email(input.Email))
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("auth_service_reset_password_failed: %w", err)
	}

	// ── 2. Verification ──────────────────────────────────────────────────

	if !sec.CheckPasswordHash(input.CurrentPassword, account.Password) {
		return nil, ErrWrongCurrentPassword
	}

	if input.NewPassword != input.NewPasswordConfirmation {
		return nil, ErrPasswordMismatch
	}

	// ── 3. Replacement ───────────────────────────────────────────────────

	hash, err := sec.HashPassword(input.NewPassword)
	if err != nil {
		return nil, fmt.Errorf("auth_service_reset_password_failed: %w", err)
	}

	if err := service.users.UpdatePassword(context, account.ID, account.Password, hash); err != nil {
		if dberr.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	service.logger.Info("password_reset_completed", slog.String("user_id", account.ID))
	return account, nil
}
