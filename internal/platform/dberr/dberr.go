// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// Every store driver (MongoDB, PostgreSQL, in-memory) reports a missing record
// as [ErrNotFound], so callers never branch on driver-specific sentinels.
package dberr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taibuivan/lotmarket/internal/platform/apperr"
)

// uniqueViolation is the PostgreSQL SQLSTATE for duplicate keys.
const uniqueViolation = "23505"

var (
	// ErrNotFound is returned when a queried record doesn't exist or its id is malformed.
	ErrNotFound = &apperr.AppError{
		Code:       "NOT_FOUND",
		Message:    "Not Found",
		HTTPStatus: http.StatusNotFound,
	}

	// ErrDuplicate is returned when a unique index rejects a write.
	ErrDuplicate = apperr.ConflictCode("DUPLICATE_KEY", "Resource already exists")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Already classified
	if errors.Is(err, ErrNotFound) || apperr.IsAppError(err) {
		return err
	}

	// 2. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}

	// 3. Unique constraint violations
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicate.WithCause(err)
	}
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate.WithCause(err)
	}

	// 4. Unknown query errors become Internal Server Errors
	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}

// IsNotFound reports whether err is (or wraps) [ErrNotFound].
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicate reports whether err is (or wraps) [ErrDuplicate].
func IsDuplicate(err error) bool {
	var ae *apperr.AppError
	return errors.As(err, &ae) && ae.Code == ErrDuplicate.Code && ae.HTTPStatus == http.StatusConflict
}
