// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package postgres opens the pgx pool used when STORE_DRIVER=postgres.
// The SQL itself lives with the user and lot repositories.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/lotmarket/internal/platform/constants"
)

const (
	maxConns        = 20
	minConns        = 2
	maxConnLifetime = time.Hour
	maxConnIdleTime = 10 * time.Minute
	connectTimeout  = 5 * time.Second
	pingTimeout     = 2 * time.Second
)

// NewPool parses dsn, tunes the pool and verifies the database answers.
//
// Every physical connection gets a statement_timeout equal to the HTTP request
// deadline, so a slow query cannot outlive the request that issued it.
func NewPool(ctx context.Context, dsn string, logger *slog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres_parse_dsn_failed: %w", err)
	}

	poolConfig.MaxConns = maxConns
	poolConfig.MinConns = minConns
	poolConfig.MaxConnLifetime = maxConnLifetime
	poolConfig.MaxConnIdleTime = maxConnIdleTime
	poolConfig.ConnConfig.ConnectTimeout = connectTimeout
	poolConfig.AfterConnect = func(ctx context.Context, connection *pgx.Conn) error {
		_, err := connection.Exec(ctx, statementTimeout(constants.GlobalRequestTimeout))
		return err
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("postgres_open_pool_failed: %w", err)
	}
	if err := Ping(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("postgres_pool_connected",
		slog.String("database", poolConfig.ConnConfig.Database),
		slog.Int("max_conns", maxConns),
	)
	return pool, nil
}

// Ping checks reachability within a short deadline.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		return fmt.Errorf("postgres_ping_failed: %w", err)
	}
	return nil
}

func statementTimeout(d time.Duration) string {
	return fmt.Sprintf("SET statement_timeout = %d", d.Milliseconds())
}
