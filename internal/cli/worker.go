// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/taibuivan/lotmarket/internal/mail"
	"github.com/taibuivan/lotmarket/internal/platform/config"
	"github.com/taibuivan/lotmarket/internal/platform/constants"
)

var mailWorkerCmd = &cobra.Command{
	Use:   "mail-worker",
	Short: "Deliver queued mail over SMTP",
	Long: `Consumes MAIL_QUEUE and delivers every message through SMTP_ADDR.

Run it alongside "serve" when MAIL_TRANSPORT=queue.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMailWorker(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mailWorkerCmd)
}

func runMailWorker(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.ValidateMailWorker(); err != nil {
		return err
	}

	log := newLogger(cfg.Debug)

	infra := &infrastructure{logger: log}
	defer infra.Close()

	startupCtx, cancel := context.WithTimeout(ctx, constants.StartupTimeout)
	queue, err := infra.openQueue(startupCtx, cfg)
	cancel()
	if err != nil {
		return fmt.Errorf("open queue: %w", err)
	}

	worker := mail.NewWorker(queue, cfg.MailQueue, newSMTPSender(cfg), log)
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	log.Info("mail_worker_exited", slog.String("queue", cfg.MailQueue))
	return nil
}
