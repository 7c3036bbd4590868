// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/samber/oops"
)

// EnvAutoMigrate disables startup migrations when set to a false value.
const EnvAutoMigrate = "AUTHCORE_DB_AUTO_MIGRATE"

// parseAutoMigrate reports whether serve should migrate the schema at
// startup. Unset or unrecognised values mean true.
func parseAutoMigrate() bool {
	raw := os.Getenv(EnvAutoMigrate)
	if raw == "" {
		return true
	}
	enabled, err := strconv.ParseBool(raw)
	if err != nil {
		slog.Warn("unrecognized value for auto-migrate, defaulting to true",
			"env", EnvAutoMigrate,
			"value", raw,
		)
		return true
	}
	return enabled
}

// runAutoMigration applies all pending migrations.
func runAutoMigration(databaseURL string, factory func(string) (AutoMigrator, error)) error {
	migrator, err := factory(databaseURL)
	if err != nil {
		return oops.Code("MIGRATION_INIT_FAILED").With("operation", "create migrator").Wrap(err)
	}
	defer func() {
		if closeErr := migrator.Close(); closeErr != nil {
			slog.Warn("error closing migrator, connection may leak", "error", closeErr)
		}
	}()

	slog.Info("running database migrations")
	if err := migrator.Up(); err != nil {
		return oops.Code("AUTO_MIGRATION_FAILED").With("operation", "apply migrations").Wrap(err)
	}
	slog.Info("database migrations complete")
	return nil
}
