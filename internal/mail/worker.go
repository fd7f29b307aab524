// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mail

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/taibuivan/lotmarket/internal/platform/mq"
)

// Subscriber is the consuming half of mq.MQ.
type Subscriber interface {
	Subscribe(ctx context.Context, channel string, handler mq.Handler) error
}

// Worker drains the mail queue into a [Sender].
type Worker struct {
	queue   Subscriber
	channel string
	sender  Sender
	logger  *slog.Logger
}

func NewWorker(queue Subscriber, channel string, sender Sender, logger *slog.Logger) *Worker {
	return &Worker{queue: queue, channel: channel, sender: sender, logger: logger}
}

// Run consumes until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	w.logger.Info("mail_worker_started", slog.String("channel", w.channel))
	defer w.logger.Info("mail_worker_stopped", slog.String("channel", w.channel))

	return w.queue.Subscribe(ctx, w.channel, w.handle)
}

// handle drops undecodable payloads and returns delivery errors so the broker redelivers.
func (w *Worker) handle(ctx context.Context, envelope mq.Message) error {
	var msg Message
	if err := json.Unmarshal(envelope.Data, &msg); err != nil || msg.To == "" {
		w.logger.Error("mail_message_dropped", slog.String("message_id", envelope.ID), slog.Any("error", err))
		return nil
	}

	if err := w.sender.Send(ctx, msg); err != nil {
		w.logger.Warn("mail_delivery_failed", slog.String("message_id", envelope.ID), slog.Any("error", err))
		return err
	}

	w.logger.Info("mail_delivered", slog.String("message_id", envelope.ID))
	return nil
}
