// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/taibuivan/lotmarket/internal/platform/config"
	"github.com/taibuivan/lotmarket/internal/platform/migration"
)

// migrateCmd groups the PostgreSQL schema commands. The mongo store needs no migrations.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run PostgreSQL schema migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending up migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadMigrationConfig()
		if err != nil {
			return err
		}
		return migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, newLogger(cfg.Debug))
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down [steps]",
	Short: "Roll back the given number of migrations (default 1)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, err := parseSteps(args)
		if err != nil {
			return err
		}

		cfg, err := loadMigrationConfig()
		if err != nil {
			return err
		}
		return migration.RunDown(cfg.DatabaseURL, cfg.MigrationPath, steps, newLogger(cfg.Debug))
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
}

func loadMigrationConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required to run migrations")
	}
	return cfg, nil
}

// parseSteps reads the optional rollback count.
func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	steps, err := strconv.Atoi(args[0])
	if err != nil || steps < 1 {
		return 0, fmt.Errorf("steps must be a positive integer, got %q", args[0])
	}
	return steps, nil
}
