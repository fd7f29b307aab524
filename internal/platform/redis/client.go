// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package redis opens the Redis connection behind the mail queue
// (QUEUE_DRIVER=redis). See internal/platform/mq for the list protocol.
package redis

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// The mail worker parks one connection in BRPOP, and the API publishes from a
// handful of request goroutines; a small pool covers both.
const (
	poolSize     = 8
	minIdleConns = 1

	dialTimeout  = 3 * time.Second
	writeTimeout = 2 * time.Second
	pingTimeout  = 2 * time.Second
)

// NewClient dials redisURL (redis:// or rediss://) and pings it once.
//
// Reads carry no client-side timeout: BRPOP blocks for as long as the
// caller's context allows.
func NewClient(context stdctx.Context, redisURL string, logger *slog.Logger) (*redis.Client, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis_parse_url_failed: %w", err)
	}

	options.PoolSize = poolSize
	options.MinIdleConns = minIdleConns
	options.DialTimeout = dialTimeout
	options.ReadTimeout = -1
	options.WriteTimeout = writeTimeout
	options.ContextTimeoutEnabled = true

	client := redis.NewClient(options)
	if err := Ping(context, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis_client_connected", slog.String("addr", options.Addr), slog.Int("db", options.DB))
	return client, nil
}

// Ping checks reachability within a short deadline.
func Ping(context stdctx.Context, client *redis.Client) error {
	pingCtx, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis_ping_failed: %w", err)
	}
	return nil
}
