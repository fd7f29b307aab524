// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// AttrAttempt counts failed deliveries of a Redis queue message.
	AttrAttempt = "x-attempt"

	redisKeyPrefix      = "mq:"
	redisDeadSuffix     = ":dead"
	defaultPollInterval = time.Second
	defaultMaxAttempts  = 5

	// requeueTimeout bounds a write-back that runs after ctx is already cancelled.
	requeueTimeout = 5 * time.Second
)

// RedisBackend implements a reliable-enough work queue on a Redis list.
//
// Publish appends with RPUSH; Subscribe pops with BLPOP. A failing handler
// re-appends the message with an incremented attempt counter; after
// MaxAttempts it is moved to "<queue>:dead" for manual inspection.
// A handler interrupted by cancellation puts the message back at the head
// of the queue unchanged, so a shutdown never consumes an attempt.
type RedisBackend struct {
	client       *redis.Client
	pollInterval time.Duration
	maxAttempts  int
}

// RedisOption customises a [RedisBackend].
type RedisOption func(*RedisBackend)

// WithPollInterval sets how long a BLPOP blocks before re-checking ctx.
func WithPollInterval(interval time.Duration) RedisOption {
	return func(backend *RedisBackend) { backend.pollInterval = interval }
}

// WithMaxAttempts sets how many failed deliveries are tolerated.
func WithMaxAttempts(attempts int) RedisOption {
	return func(backend *RedisBackend) { backend.maxAttempts = attempts }
}

// NewRedisBackend wraps an existing client. The client is owned by the caller.
func NewRedisBackend(client *redis.Client, opts ...RedisOption) *RedisBackend {
	backend := &RedisBackend{
		client:       client,
		pollInterval: defaultPollInterval,
		maxAttempts:  defaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(backend)
	}
	return backend
}

// Publish appends a message to the queue.
func (r *RedisBackend) Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error) {
	if channel == "" {
		return "", errors.New("mq: redis channel is required")
	}

	message := Message{ID: newMessageID(), Data: data, Attributes: attrs}
	if err := r.push(ctx, redisKeyPrefix+channel, message); err != nil {
		return "", err
	}
	return message.ID, nil
}

// Subscribe pops messages until ctx is cancelled.
func (r *RedisBackend) Subscribe(ctx context.Context, channel string, handler Handler) error {
	if channel == "" {
		return errors.New("mq: redis channel is required")
	}
	key := redisKeyPrefix + channel

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		result, err := r.client.BLPop(ctx, r.pollInterval, key).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("mq: redis pop: %w", err)
		}

		// BLPOP returns [key, value].
		var message Message
		if err := json.Unmarshal([]byte(result[1]), &message); err != nil {
			// Undecodable payloads can never succeed; park them.
			writeCtx, cancel := detached(ctx)
			_ = r.client.RPush(writeCtx, key+redisDeadSuffix, result[1]).Err()
			cancel()
			continue
		}

		if err := handler(ctx, message); err != nil {
			writeCtx, cancel := detached(ctx)
			if ctx.Err() != nil {
				requeueErr := r.requeue(writeCtx, key, result[1])
				cancel()
				return errors.Join(ctx.Err(), requeueErr)
			}

			retryErr := r.retry(writeCtx, key, message)
			cancel()
			if retryErr != nil {
				return retryErr
			}
		}
	}
}

// detached returns a context for writing a popped message back to Redis.
// It outlives the cancellation of ctx but keeps its values.
func detached(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), requeueTimeout)
}

// Ping checks the Redis connection.
func (r *RedisBackend) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close is a no-op; the shared client is closed by its owner.
func (r *RedisBackend) Close() error {
	return nil
}

func (r *RedisBackend) retry(ctx context.Context, key string, message Message) error {
	attempt, _ := strconv.Atoi(message.Attributes[AttrAttempt])
	attempt++

	attrs := make(map[string]string, len(message.Attributes)+1)
	for k, v := range message.Attributes {
		attrs[k] = v
	}
	attrs[AttrAttempt] = strconv.Itoa(attempt)
	message.Attributes = attrs

	if attempt >= r.maxAttempts {
		return r.push(ctx, key+redisDeadSuffix, message)
	}
	return r.push(ctx, key, message)
}

// requeue puts an untouched payload back at the head of the queue.
func (r *RedisBackend) requeue(ctx context.Context, key, payload string) error {
	if err := r.client.LPush(ctx, key, payload).Err(); err != nil {
		return fmt.Errorf("mq: redis requeue: %w", err)
	}
	return nil
}

func (r *RedisBackend) push(ctx context.Context, key string, message Message) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("mq: encode message: %w", err)
	}
	if err := r.client.RPush(ctx, key, payload).Err(); err != nil {
		return fmt.Errorf("mq: redis push: %w", err)
	}
	return nil
}
