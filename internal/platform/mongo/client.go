// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package mongo provides the managed MongoDB client used by the default
document store (STORE_DRIVER=mongo).

Core Responsibilities:

  - Connection: Dials, tunes the pool and verifies reachability at startup.
  - Indexes: Declares the indexes the user and lot stores rely on.
  - Health: Exposes a bounded ping for the readiness probe.
*/
package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/taibuivan/lotmarket/internal/platform/constants"
)

const (
	connectTimeout = 10 * time.Second
	pingTimeout    = 2 * time.Second
	maxPoolSize    = 50
)

// NewClient connects to MongoDB and validates connectivity immediately.
//
// # Parameters
//   - ctx: Context for the initial connection attempt.
//   - uri: A mongodb:// or mongodb+srv:// connection string.
//   - logger: Structured logger for connection events.
func NewClient(ctx context.Context, uri string, logger *slog.Logger) (*mongo.Client, error) {
	clientOptions := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(maxPoolSize).
		SetConnectTimeout(connectTimeout).
		SetAppName(constants.AppName)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("mongo: failed to connect: %w", err)
	}

	if err := Ping(ctx, client); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logger.Info("mongo_client_connected", slog.Int("max_pool_size", maxPoolSize))
	return client, nil
}

// Ping verifies that the MongoDB primary is reachable.
func Ping(ctx context.Context, client *mongo.Client) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongo: ping failed: %w", err)
	}
	return nil
}

// EnsureIndexes creates the indexes required by the stores. It is idempotent.
//
//   - users.email is unique (the credential lookup key).
//   - lots.userId backs the "own lots" listing.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	_, err := database.Collection(constants.CollectionUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("users_email_unique"),
	})
	if err != nil {
		return fmt.Errorf("mongo: create users index: %w", err)
	}

	_, err = database.Collection(constants.CollectionLots).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetName("lots_user_id"),
	})
	if err != nil {
		return fmt.Errorf("mongo: create lots index: %w", err)
	}

	return nil
}
