// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"context"
	"net"
	"net/http"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	holoGRPC "github.com/holomush/authcore/internal/grpc"
	"github.com/holomush/authcore/internal/observability"
	authtls "github.com/holomush/authcore/internal/tls"
	"github.com/holomush/authcore/internal/web"
)

// NewGatewayCmd creates the gateway subcommand.
func NewGatewayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gateway",
		Short: "Start the HTTP gateway",
		Long: `Start the cookie-session HTTP API without a database, forwarding every
operation to a remote auth server over gRPC.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGatewayWithDeps(cmd.Context(), cmd, nil)
		},
	}
}

// runGatewayWithDeps runs the gateway with injectable dependencies.
// A nil deps uses the default implementations.
func runGatewayWithDeps(ctx context.Context, cmd *cobra.Command, deps *GatewayDeps) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if deps == nil {
		deps = &GatewayDeps{}
	}
	if deps.ClientFactory == nil {
		deps.ClientFactory = defaultClientFactory
	}
	if deps.ListenerFactory == nil {
		deps.ListenerFactory = net.Listen
	}
	if deps.ClientTLSLoader == nil {
		deps.ClientTLSLoader = loadGatewayTLS
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := setupLogging(cfg)
	if err != nil {
		return err
	}

	clientCfg := holoGRPC.ClientConfig{Address: cfg.Gateway.AuthAddr}
	if cfg.GRPC.TLSEnabled() {
		clientCfg.TLSConfig, err = deps.ClientTLSLoader(cfg.GRPC.TLSCertsDir, authtls.ClientName, cfg.GRPC.TLSServerName)
		if err != nil {
			return oops.Code("GATEWAY_TLS_FAILED").With("certs_dir", cfg.GRPC.TLSCertsDir).Wrap(err)
		}
	} else {
		logger.Warn("auth link is plaintext; set grpc.tls_certs_dir to enable mTLS")
	}

	client, err := deps.ClientFactory(clientCfg)
	if err != nil {
		return oops.Code("GATEWAY_CLIENT_FAILED").With("auth_addr", cfg.Gateway.AuthAddr).Wrap(err)
	}
	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			logger.Warn("error closing auth client", "error", closeErr)
		}
	}()

	obs := observability.NewServer(cfg.Metrics.Addr, observability.PingReadiness(client))

	listeners, err := listenAll(deps.ListenerFactory, cfg.HTTP.Addr)
	if err != nil {
		return err
	}

	servers := &serverSet{
		logger: logger,
		httpServer: &http.Server{
			Handler:           web.NewRouter(client, webConfig(cfg, logger, obs.Metrics())),
			ReadHeaderTimeout: readHeaderTimeout,
		},
		httpLis:  listeners[0],
		obs:      obs,
		serveObs: cfg.Metrics.Addr != "",
	}

	logger.Info("gateway starting", "auth_addr", cfg.Gateway.AuthAddr, "grpc_tls", cfg.GRPC.TLSEnabled())
	return servers.run(ctx)
}
