// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants holds the fixed values shared across lotmarket packages:
server and startup timeouts, rate-limit sizing, header names, store
collection names and upload limits. Anything an operator may tune lives in
internal/platform/config instead.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "lotmarket"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 10 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 15 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second

	// StartupTimeout bounds connecting to stores and brokers at boot.
	StartupTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "lotmarket"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
)

// # Health Report Fields

const (
	FieldStatus = "status"
	FieldChecks = "checks"
)

// # Storage Names

const (
	// CollectionUsers and CollectionLots name both the Mongo collections and the SQL tables.
	CollectionUsers = "users"
	CollectionLots  = "lots"
)

// # Uploads

const (
	// MaxLotImageBytes caps a single lot image upload.
	MaxLotImageBytes = 5 << 20
)
