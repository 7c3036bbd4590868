// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"

	"github.com/holomush/authcore/internal/auth"
	"github.com/holomush/authcore/internal/auth/postgres"
	holoGRPC "github.com/holomush/authcore/internal/grpc"
	"github.com/holomush/authcore/internal/observability"
	"github.com/holomush/authcore/internal/store"
	"github.com/holomush/authcore/internal/web"
)

// readHeaderTimeout bounds slow clients on the HTTP API.
const readHeaderTimeout = 10 * time.Second

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the auth server",
		Long: `Start the auth server: the gRPC auth service, the cookie-session
HTTP API and the metrics and health endpoints, all backed by PostgreSQL.

Pending migrations are applied at startup unless AUTHCORE_DB_AUTO_MIGRATE=false.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServeWithDeps(cmd.Context(), cmd, nil)
		},
	}
}

// runServeWithDeps runs the server with injectable dependencies.
// A nil deps uses the default implementations.
func runServeWithDeps(ctx context.Context, cmd *cobra.Command, deps *ServeDeps) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if deps == nil {
		deps = &ServeDeps{}
	}
	if deps.PoolFactory == nil {
		deps.PoolFactory = defaultPoolFactory
	}
	if deps.MigratorFactory == nil {
		deps.MigratorFactory = defaultAutoMigratorFactory
	}
	if deps.ListenerFactory == nil {
		deps.ListenerFactory = net.Listen
	}
	if deps.TLSCertEnsurer == nil {
		deps.TLSCertEnsurer = ensureTLSCerts
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.RequireDatabase(); err != nil {
		return err
	}
	logger, err := setupLogging(cfg)
	if err != nil {
		return err
	}

	if parseAutoMigrate() {
		if err := runAutoMigration(cfg.Database.URL, deps.MigratorFactory); err != nil {
			return err
		}
	} else {
		logger.Info("auto-migration disabled", "env", EnvAutoMigrate)
	}

	pool, err := deps.PoolFactory(ctx, cfg.Database.URL, store.ConnectOptions{
		Retries: cfg.Database.ConnectRetries,
		Backoff: cfg.Database.ConnectBackoff.Std(),
		Logger:  logger,
	})
	if err != nil {
		return oops.Code("DB_CONNECT_FAILED").With("operation", "connect to database").Wrap(err)
	}
	defer pool.Close()

	hasher, err := auth.NewArgon2Hasher(cfg.Hasher.Params())
	if err != nil {
		return oops.Code("CONFIG_INVALID").With("key", "hasher").Wrap(err)
	}

	obs := observability.NewServer(cfg.Metrics.Addr, observability.PingReadiness(pool))

	svc, err := auth.NewService(
		postgres.NewCredentialRepository(pool),
		postgres.NewSessionRepository(pool),
		hasher,
		auth.WithLogger(logger),
		auth.WithMetrics(auth.NewMetrics(obs.Registry())),
		auth.WithSessionTTL(cfg.Session.TTL.Std()),
		auth.WithMaxSessionTTL(cfg.Session.EffectiveMaxTTL()),
	)
	if err != nil {
		return oops.Code("SERVICE_INIT_FAILED").Wrap(err)
	}

	var grpcOpts []grpc.ServerOption
	if cfg.GRPC.TLSEnabled() {
		tlsConfig, tlsErr := deps.TLSCertEnsurer(cfg.GRPC.TLSCertsDir, cfg.GRPC.TLSServerName)
		if tlsErr != nil {
			return oops.Code("GRPC_TLS_FAILED").With("certs_dir", cfg.GRPC.TLSCertsDir).Wrap(tlsErr)
		}
		grpcOpts = append(grpcOpts, grpc.Creds(credentials.NewTLS(tlsConfig)))
	} else {
		logger.Warn("gRPC auth server is serving plaintext; set grpc.tls_certs_dir to enable mTLS")
	}

	listeners, err := listenAll(deps.ListenerFactory, cfg.GRPC.Addr, cfg.HTTP.Addr)
	if err != nil {
		return err
	}

	servers := &serverSet{
		logger: logger,
		grpcServer: holoGRPC.NewServer(svc, holoGRPC.ServerConfig{
			Logger:  logger,
			Metrics: obs.Metrics(),
		}, grpcOpts...),
		grpcLis: listeners[0],
		httpServer: &http.Server{
			Handler:           web.NewRouter(svc, webConfig(cfg, logger, obs.Metrics())),
			ReadHeaderTimeout: readHeaderTimeout,
		},
		httpLis:  listeners[1],
		obs:      obs,
		serveObs: cfg.Metrics.Addr != "",
	}

	logger.Info("auth server starting",
		"commit", commit,
		"session_ttl", cfg.Session.TTL.Std().String(),
		"max_session_ttl", cfg.Session.EffectiveMaxTTL().String(),
		"grpc_tls", cfg.GRPC.TLSEnabled(),
	)
	return servers.run(ctx)
}
