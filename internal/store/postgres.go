// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package store owns the PostgreSQL connection pool and schema migrations.
package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"
)

// Connect defaults.
const (
	DefaultConnectRetries = 5
	DefaultConnectBackoff = 500 * time.Millisecond
)

// ConnectOptions tunes Connect.
type ConnectOptions struct {
	// Retries is the number of additional ping attempts after the first.
	Retries uint64
	// Backoff is the first retry delay; it doubles on each attempt.
	Backoff time.Duration
	Logger  *slog.Logger
}

// pinger is the part of *pgxpool.Pool that Connect retries.
type pinger interface {
	Ping(ctx context.Context) error
}

// Connect opens a pool for dsn and waits until the database answers a ping,
// retrying with exponential backoff. The caller owns the returned pool.
func Connect(ctx context.Context, dsn string, opts ConnectOptions) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, oops.Code("DB_CONFIG_INVALID").With("operation", "parse database url").Wrap(err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, oops.Code("DB_CONNECT_FAILED").With("operation", "create pool").Wrap(err)
	}

	if err := waitForDatabase(ctx, pool, opts); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func waitForDatabase(ctx context.Context, db pinger, opts ConnectOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	backoff := opts.Backoff
	if backoff <= 0 {
		backoff = DefaultConnectBackoff
	}

	attempt := 0
	b := retry.WithMaxRetries(opts.Retries, retry.NewExponential(backoff))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		attempt++
		if err := db.Ping(ctx); err != nil {
			logger.WarnContext(ctx, "database not ready", "attempt", attempt, "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return oops.Code("DB_CONNECT_FAILED").
			With("operation", "ping database").
			With("attempts", attempt).
			Wrap(err)
	}
	return nil
}
