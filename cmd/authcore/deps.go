// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"context"
	cryptotls "crypto/tls"
	"net"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/holomush/authcore/internal/auth"
	holoGRPC "github.com/holomush/authcore/internal/grpc"
	"github.com/holomush/authcore/internal/store"
)

// ServeDeps contains injectable dependencies for the serve command.
// All fields with nil values will use their default implementations.
type ServeDeps struct {
	// PoolFactory connects to PostgreSQL.
	// Default: store.Connect
	PoolFactory func(ctx context.Context, dsn string, opts store.ConnectOptions) (DatabasePool, error)

	// MigratorFactory creates a migrator for auto-migration.
	// Default: store.NewMigrator
	MigratorFactory func(dsn string) (AutoMigrator, error)

	// ListenerFactory creates a network listener.
	// Default: net.Listen
	ListenerFactory func(network, address string) (net.Listener, error)

	// TLSCertEnsurer loads or generates the auth server's mTLS config.
	// Only called when grpc.tls_certs_dir is set.
	// Default: ensureTLSCerts
	TLSCertEnsurer func(certsDir, serverName string) (*cryptotls.Config, error)
}

// GatewayDeps contains injectable dependencies for the gateway command.
// All fields with nil values will use their default implementations.
type GatewayDeps struct {
	// ClientFactory creates a client for the remote auth server.
	// Default: holoGRPC.NewClient
	ClientFactory func(cfg holoGRPC.ClientConfig) (AuthClient, error)

	// ListenerFactory creates a network listener.
	// Default: net.Listen
	ListenerFactory func(network, address string) (net.Listener, error)

	// ClientTLSLoader loads the gateway's mTLS client config.
	// Only called when grpc.tls_certs_dir is set.
	// Default: loadGatewayTLS
	ClientTLSLoader func(certsDir, clientName, serverName string) (*cryptotls.Config, error)
}

// DatabasePool is the subset of *pgxpool.Pool used by commands.
type DatabasePool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// AutoMigrator is the subset of store.Migrator used at startup.
type AutoMigrator interface {
	Up() error
	Close() error
}

// Migrator is the subset of store.Migrator used by the migrate command.
type Migrator interface {
	AutoMigrator
	Steps(n int) error
	Down() error
	Force(version int) error
	Status() (store.MigrationStatus, error)
}

// AuthClient is a remote auth.API with a health check.
type AuthClient interface {
	auth.API
	Ping(ctx context.Context) error
	Close() error
}

// The default factories return untyped nil on error so callers never hold
// an interface wrapping a nil pointer.

func defaultPoolFactory(ctx context.Context, dsn string, opts store.ConnectOptions) (DatabasePool, error) {
	pool, err := store.Connect(ctx, dsn, opts)
	if err != nil {
		return nil, err
	}
	return pool, nil
}

func defaultMigratorFactory(dsn string) (Migrator, error) {
	m, err := store.NewMigrator(dsn)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func defaultAutoMigratorFactory(dsn string) (AutoMigrator, error) {
	return defaultMigratorFactory(dsn)
}

func defaultClientFactory(cfg holoGRPC.ClientConfig) (AuthClient, error) {
	c, err := holoGRPC.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return c, nil
}
