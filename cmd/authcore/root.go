// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"log/slog"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/holomush/authcore/internal/config"
	"github.com/holomush/authcore/internal/logging"
)

// serviceName identifies this binary in logs.
const serviceName = "authcore"

// NewRootCmd creates the root command for the authcore CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "authcore",
		Short: "authcore - session-based authentication service",
		Long: `authcore manages credentials and sessions in PostgreSQL and exposes
them over gRPC and a cookie-session HTTP API.`,
		SilenceUsage: true,
	}

	config.RegisterFlags(cmd.PersistentFlags())

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewGatewayCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewAccountCmd())
	cmd.AddCommand(NewConfigCmd())

	return cmd
}

// loadConfig builds the effective configuration from the command's flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return config.Config{}, oops.With("operation", "load config").Wrap(err)
	}
	return cfg, nil
}

// setupLogging installs the default logger described by cfg and returns it.
func setupLogging(cfg config.Config) (*slog.Logger, error) {
	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	return logging.SetDefault(serviceName, version, cfg.Log.Format, level), nil
}
