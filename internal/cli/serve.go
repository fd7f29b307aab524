// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/taibuivan/lotmarket/internal/api"
	"github.com/taibuivan/lotmarket/internal/auth"
	"github.com/taibuivan/lotmarket/internal/lot"
	"github.com/taibuivan/lotmarket/internal/mail"
	"github.com/taibuivan/lotmarket/internal/platform/config"
	"github.com/taibuivan/lotmarket/internal/platform/constants"
	"github.com/taibuivan/lotmarket/internal/platform/sec"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// runServe wires the API and blocks until ctx is cancelled.
//
// # Startup Sequence
//
//  1. Load configuration, then build the logger.
//  2. Open the store selected by STORE_DRIVER.
//  3. Build the mail sender and, when configured, image storage.
//  4. Wire services and handlers.
//  5. Serve until a signal arrives, then drain in-flight requests.
func runServe(ctx context.Context) error {
	// ── 1. Configuration & Logger ─────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := newLogger(cfg.Debug)
	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("store", cfg.StoreDriver),
		slog.String("mail_transport", cfg.MailTransport),
	)

	startupCtx, startupCancel := context.WithTimeout(ctx, constants.StartupTimeout)
	defer startupCancel()

	infra := &infrastructure{logger: log}
	defer infra.Close()

	// ── 2. Stores ─────────────────────────────────────────────────────────
	if err := infra.openStores(startupCtx, cfg); err != nil {
		return fmt.Errorf("open stores: %w", err)
	}

	// ── 3. Mail & Storage ─────────────────────────────────────────────────
	sender, err := infra.mailSender(startupCtx, cfg)
	if err != nil {
		return fmt.Errorf("build mail sender: %w", err)
	}
	if err := infra.openStorage(startupCtx, cfg); err != nil {
		return fmt.Errorf("open image storage: %w", err)
	}

	// ── 4. Domain Wiring ──────────────────────────────────────────────────
	tokens, err := sec.NewTokenService(sec.TokenConfig{
		Secret:     cfg.JWTSecret,
		TimeToLive: cfg.JWTExpiration,
		Issuer:     constants.AuthIssuer,
	})
	if err != nil {
		return err
	}
	log.Info("token_issuer_configured", slog.Duration("ttl", tokens.TimeToLive()))

	mailer := mail.NewMailer(sender, cfg.MailFrom, cfg.MailResetURL)
	authService := auth.NewService(infra.users, tokens, mailer, log)
	lotService := lot.NewService(infra.lots, lot.PolicyFor(cfg.LotOwnerOnlyMutations), infra.images, log)

	liveness, readiness := api.NewHealthHandlers(infra.checks, log)

	server := api.NewServer(ctx, cfg, log, tokens, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService),
		Lot:       lot.NewHandler(lotService),
	})

	// ── 5. Serve & Graceful Shutdown ──────────────────────────────────────
	return server.Run(ctx, constants.ShutdownTimeout)
}
