// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "github.com/taibuivan/lotmarket/internal/platform/apperr"

// # Auth Flow Errors
//
// The messages are part of the public API and must not change.

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = apperr.BadRequest("INVALID_CREDENTIALS", "Wrong credentials provided")

	// ErrInvalidEmail is returned by forgot-password for an unknown email.
	ErrInvalidEmail = apperr.BadRequest("INVALID_EMAIL", "Invalid email")

	// ErrWrongCurrentPassword is returned by reset-password when the current password does not verify.
	ErrWrongCurrentPassword = apperr.BadRequest("WRONG_CURRENT_PASSWORD", "Current password is incorrect")

	// ErrPasswordMismatch is returned when the new password and its confirmation differ.
	ErrPasswordMismatch = apperr.BadRequest("PASSWORD_MISMATCH", "Passwords do not match")

	// ErrUserNotFound is returned by reset-password when the token's user no longer exists.
	ErrUserNotFound = apperr.NotFound("User")

	// ErrEmailTaken is returned by register for an email that already has an account.
	ErrEmailTaken = apperr.Conflict("Email is already registered")
)
