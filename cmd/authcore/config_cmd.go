// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"fmt"
	"os"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/holomush/authcore/internal/config"
)

// NewConfigCmd creates the config subcommand.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and validate configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration with secrets redacted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			out, err := cfg.Redacted().YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for config files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			schema, err := config.GenerateSchema()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(schema))
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate FILE",
		Short: "Check a config file against the schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path) //nolint:gosec // operator-supplied config path
			if err != nil {
				return oops.Code("CONFIG_READ_FAILED").With("path", path).Wrap(err)
			}
			if err := config.ValidateYAML(data); err != nil {
				return oops.With("path", path).Wrap(err)
			}
			if err := cmd.Flags().Set(config.FlagConfig, path); err != nil {
				return oops.Code("FLAG_SET_FAILED").Wrap(err)
			}
			if _, err := loadConfig(cmd); err != nil {
				return oops.With("path", path).Wrap(err)
			}
			cmd.Printf("%s: valid\n", path)
			return nil
		},
	})

	return cmd
}
