// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"fmt"
	"strconv"

	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

// migratorFactory opens a Migrator for a database URL.
type migratorFactory func(databaseURL string) (Migrator, error)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	return newMigrateCmd(defaultMigratorFactory)
}

func newMigrateCmd(factory migratorFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database migrations",
		Long: `Manage the authcore PostgreSQL schema.

Without a subcommand, applies all pending migrations.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd, factory, runMigrateUp)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd, factory, runMigrateUp)
		},
	})

	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			all, err := cmd.Flags().GetBool("all")
			if err != nil {
				return oops.Code("FLAG_READ_FAILED").Wrap(err)
			}
			return withMigrator(cmd, factory, func(cmd *cobra.Command, m Migrator) error {
				return runMigrateDown(cmd, m, all)
			})
		},
	}
	down.Flags().Bool("all", false, "roll back every migration")
	cmd.AddCommand(down)

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the applied version and pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd, factory, runMigrateStatus)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd, factory, runMigrateVersion)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "force VERSION",
		Short: "Set the schema version without running migrations",
		Long: `Set the recorded schema version and clear the dirty flag without
running any migration. Use after repairing a failed migration by hand.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := strconv.Atoi(args[0])
			if err != nil {
				return oops.Code("MIGRATION_INVALID_VERSION").With("version", args[0]).Wrap(err)
			}
			return withMigrator(cmd, factory, func(cmd *cobra.Command, m Migrator) error {
				return runMigrateForce(cmd, m, version)
			})
		},
	})

	return cmd
}

// withMigrator loads config, opens a migrator and runs fn with it.
func withMigrator(cmd *cobra.Command, factory migratorFactory, fn func(*cobra.Command, Migrator) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.RequireDatabase(); err != nil {
		return err
	}

	m, err := factory(cfg.Database.URL)
	if err != nil {
		return oops.Code("MIGRATION_INIT_FAILED").With("operation", "create migrator").Wrap(err)
	}
	defer func() {
		if closeErr := m.Close(); closeErr != nil {
			cmd.PrintErrf("Warning: error closing migrator: %v\n", closeErr)
		}
	}()
	return fn(cmd, m)
}

func runMigrateUp(cmd *cobra.Command, m Migrator) error {
	cmd.Println("Running migrations...")
	if err := m.Up(); err != nil {
		return oops.Code("MIGRATION_FAILED").With("operation", "apply migrations").Wrap(err)
	}
	cmd.Println("Migrations completed successfully")
	return nil
}

func runMigrateDown(cmd *cobra.Command, m Migrator, all bool) error {
	if all {
		cmd.Println("Rolling back all migrations...")
		if err := m.Down(); err != nil {
			return oops.Code("MIGRATION_FAILED").With("operation", "roll back all").Wrap(err)
		}
		cmd.Println("All migrations rolled back")
		return nil
	}

	cmd.Println("Rolling back one migration...")
	if err := m.Steps(-1); err != nil {
		return oops.Code("MIGRATION_FAILED").With("operation", "roll back one").Wrap(err)
	}
	cmd.Println("Rolled back one migration")
	return nil
}

func runMigrateStatus(cmd *cobra.Command, m Migrator) error {
	status, err := m.Status()
	if err != nil {
		return oops.Code("MIGRATION_STATUS_FAILED").Wrap(err)
	}

	if status.Version == 0 {
		cmd.Println("Current version: none")
	} else {
		cmd.Printf("Current version: %d (%s)\n", status.Version, status.Name)
	}
	if status.Dirty {
		cmd.Println("WARNING: database is dirty; repair it and run 'migrate force VERSION'")
	}
	if len(status.Pending) == 0 {
		cmd.Println("Pending: none")
		return nil
	}
	cmd.Printf("Pending: %d\n", len(status.Pending))
	for _, v := range status.Pending {
		cmd.Printf("  %06d\n", v)
	}
	return nil
}

func runMigrateVersion(cmd *cobra.Command, m Migrator) error {
	status, err := m.Status()
	if err != nil {
		return oops.Code("MIGRATION_STATUS_FAILED").Wrap(err)
	}
	suffix := ""
	if status.Dirty {
		suffix = " (dirty)"
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d%s\n", status.Version, suffix)
	return err
}

func runMigrateForce(cmd *cobra.Command, m Migrator, version int) error {
	if err := m.Force(version); err != nil {
		return oops.Code("MIGRATION_FORCE_FAILED").With("version", version).Wrap(err)
	}
	cmd.Printf("Forced schema version to %d\n", version)
	return nil
}
