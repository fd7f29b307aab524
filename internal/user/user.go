// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package user is the credential store of lotmarket.

It owns the User record and its persistence behind [Repository], with three
drivers: MongoDB (default), PostgreSQL and an in-process map.

Every driver honours the same contract:

  - Email is the unique lookup key and is stored normalised (see pkg/textnorm).
  - Password holds a bcrypt hash; plaintext never reaches this package.
  - Missing records and malformed ids are reported as [dberr.ErrNotFound].
*/
package user

import (
	"context"
	"time"

	"github.com/taibuivan/lotmarket/internal/platform/apperr"
)

// User is a registered account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Password     string    `json:"-"`
	IsRememberMe bool      `json:"isRememberMe"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ErrStalePassword is returned by [Repository.UpdatePassword] when the stored
// hash no longer matches the one the caller verified against.
var ErrStalePassword = apperr.ConflictCode("STALE_PASSWORD", "Password was changed by another request")

// Repository defines the persistence operations for users.
type Repository interface {
	// Create stores u and fills its ID and timestamps. A taken email yields [dberr.ErrDuplicate].
	Create(ctx context.Context, u *User) error

	// FindByEmail looks up a user by normalised email.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// UpdateRememberMe persists the remember-me preference.
	UpdateRememberMe(ctx context.Context, id string, isRememberMe bool) error

	// UpdatePassword swaps the hash only if the stored one still equals expectedHash.
	UpdatePassword(ctx context.Context, id, expectedHash, newHash string) error
}
