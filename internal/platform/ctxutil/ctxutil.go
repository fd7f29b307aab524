// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package ctxutil carries per-request values through [context.Context].

Three values travel with every API request:

  - the X-Request-ID correlation id, set by middleware.RequestID;
  - the request-scoped logger, set by middleware.StructuredLogger;
  - the verified token claims, set by middleware.Authenticate.

Keys are private to this package; callers go through the accessors.
*/
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/lotmarket/internal/platform/sec"
)

type contextKey int

const (
	requestIDKey contextKey = iota
	loggerKey
	claimsKey
)

// lookup returns the value stored under key, or the zero T.
func lookup[T any](ctx context.Context, key contextKey) (T, bool) {
	value, ok := ctx.Value(key).(T)
	return value, ok
}

// # Request Tracing

// WithRequestID attaches the correlation id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// GetRequestID returns the correlation id, or "" outside a request.
func GetRequestID(ctx context.Context) string {
	id, _ := lookup[string](ctx, requestIDKey)
	return id
}

// # Structured Logging

// WithLogger attaches the request-scoped logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLogger returns the request-scoped logger, falling back to [slog.Default].
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := lookup[*slog.Logger](ctx, loggerKey); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// # Identity

// WithAuthUser attaches verified token claims.
func WithAuthUser(ctx context.Context, claims *sec.AuthClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// GetAuthUser returns the caller's claims, or nil for anonymous requests.
func GetAuthUser(ctx context.Context) *sec.AuthClaims {
	claims, _ := lookup[*sec.AuthClaims](ctx, claimsKey)
	return claims
}

// GetUserID returns the caller's user id, or "" for anonymous requests.
func GetUserID(ctx context.Context) string {
	if claims := GetAuthUser(ctx); claims != nil {
		return claims.UserID
	}
	return ""
}
