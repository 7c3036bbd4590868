// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/holomush/authcore/internal/auth"
	"github.com/holomush/authcore/internal/auth/postgres"
	"github.com/holomush/authcore/internal/store"
)

type poolFactory func(ctx context.Context, dsn string, opts store.ConnectOptions) (DatabasePool, error)

// NewAccountCmd creates the account subcommand.
func NewAccountCmd() *cobra.Command {
	return newAccountCmd(defaultPoolFactory)
}

func newAccountCmd(factory poolFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Administer credentials",
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a credential",
		Long: `Create a credential for --email. The password is read from the first
line of standard input so it never appears in shell history.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			email, err := cmd.Flags().GetString("email")
			if err != nil {
				return oops.Code("FLAG_READ_FAILED").Wrap(err)
			}
			password, err := readPassword(cmd)
			if err != nil {
				return err
			}
			return withService(cmd, factory, func(ctx context.Context, svc *auth.Service) error {
				id, err := svc.CreateAccount(ctx, email, password)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), id)
				return err
			})
		},
	}
	create.Flags().String("email", "", "email address of the new credential")
	_ = create.MarkFlagRequired("email")
	cmd.AddCommand(create)

	cmd.AddCommand(&cobra.Command{
		Use:   "close CREDENTIAL_ID",
		Short: "Deactivate a credential and all of its sessions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, factory, func(ctx context.Context, svc *auth.Service) error {
				if err := svc.CloseAccount(ctx, args[0]); err != nil {
					return err
				}
				cmd.Printf("Closed account %s\n", args[0])
				return nil
			})
		},
	})

	return cmd
}

// readPassword returns the first line of the command's input.
func readPassword(cmd *cobra.Command) (string, error) {
	scanner := bufio.NewScanner(cmd.InOrStdin())
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", oops.Code("PASSWORD_READ_FAILED").Wrap(err)
		}
		return "", oops.Code("PASSWORD_READ_FAILED").Errorf("no password on standard input")
	}
	return strings.TrimRight(scanner.Text(), "\r"), nil
}

// withService connects to the database and runs fn against an auth service.
func withService(cmd *cobra.Command, factory poolFactory, fn func(context.Context, *auth.Service) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
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

	pool, err := factory(ctx, cfg.Database.URL, store.ConnectOptions{
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
	svc, err := auth.NewService(
		postgres.NewCredentialRepository(pool),
		postgres.NewSessionRepository(pool),
		hasher,
		auth.WithLogger(logger),
	)
	if err != nil {
		return oops.Code("SERVICE_INIT_FAILED").Wrap(err)
	}
	return fn(ctx, svc)
}
