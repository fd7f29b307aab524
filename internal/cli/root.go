// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package cli holds the lotmarket command tree.
//
// # Commands
//
//	lotmarket serve            Start the HTTP API.
//	lotmarket migrate up       Apply PostgreSQL migrations.
//	lotmarket migrate down N   Roll back N PostgreSQL migrations.
//	lotmarket mail-worker      Deliver queued mail over SMTP.
package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/taibuivan/lotmarket/internal/platform/constants"
)

var rootCmd = &cobra.Command{
	Use:           constants.AppName,
	Short:         "Auction marketplace backend",
	Version:       constants.AppVersion,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command tree until completion or SIGINT/SIGTERM.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("command_failed", slog.Any("error", err))
		stop()
		os.Exit(1)
	}
}

// newLogger builds the process logger. It is created before anything else so
// that startup errors are structured JSON.
func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(logger)
	return logger
}
