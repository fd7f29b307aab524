// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

// # Request Fields

const (
	FieldEmail                   = "email"
	FieldPassword                = "password"
	FieldCurrentPassword         = "currentPassword"
	FieldNewPassword             = "newPassword"
	FieldNewPasswordConfirmation = "newPasswordConfirmation"
)

// # Constraints

const (
	// MinPasswordLength applies to newly registered accounts.
	MinPasswordLength = 8

	// MaxPasswordLength is the bcrypt input limit in bytes.
	MaxPasswordLength = 72
)

// ForgotPasswordAcknowledgement is returned whenever a reset mail was handed off.
const ForgotPasswordAcknowledgement = "The instruction was successfully sent to the user mail"
