// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mail

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strings"
	"time"
)

// # Log

// LogSender writes messages to the log instead of sending them.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	s.logger.InfoContext(ctx, "mail_logged",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.String("body", msg.Body),
	)
	return nil
}

// # SMTP

// SMTPOptions holds the relay settings.
type SMTPOptions struct {
	Addr     string
	Username string
	Password string
}

type sendMailFunc func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error

// SMTPSender delivers messages through an SMTP relay with PLAIN auth when credentials are set.
type SMTPSender struct {
	addr     string
	auth     smtp.Auth
	sendMail sendMailFunc
}

func NewSMTPSender(options SMTPOptions) *SMTPSender {
	var auth smtp.Auth
	if options.Username != "" {
		host, _, err := net.SplitHostPort(options.Addr)
		if err != nil {
			host = options.Addr
		}
		auth = smtp.PlainAuth("", options.Username, options.Password, host)
	}
	return &SMTPSender{addr: options.Addr, auth: auth, sendMail: smtp.SendMail}
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.sendMail(s.addr, s.auth, msg.From, []string{msg.To}, formatMessage(msg, time.Now())); err != nil {
		return fmt.Errorf("mail_smtp_send_failed: %w", err)
	}
	return nil
}

// headerValue strips line breaks so a value cannot start a new header.
func headerValue(v string) string {
	return strings.NewReplacer("\r", "", "\n", "").Replace(v)
}

// formatMessage renders msg as an RFC 5322 plain-text mail.
func formatMessage(msg Message, now time.Time) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", headerValue(msg.From))
	fmt.Fprintf(&b, "To: %s\r\n", headerValue(msg.To))
	fmt.Fprintf(&b, "Subject: %s\r\n", headerValue(msg.Subject))
	fmt.Fprintf(&b, "Date: %s\r\n", now.Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	return []byte(b.String())
}

// # Queue

// Publisher is the publishing half of mq.MQ.
type Publisher interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
}

// QueueSender publishes messages for the mail worker.
type QueueSender struct {
	queue   Publisher
	channel string
}

func NewQueueSender(queue Publisher, channel string) *QueueSender {
	return &QueueSender{queue: queue, channel: channel}
}

func (s *QueueSender) Send(ctx context.Context, msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("mail_encode_failed: %w", err)
	}
	if _, err := s.queue.Publish(ctx, s.channel, data, map[string]string{"kind": "mail"}); err != nil {
		return fmt.Errorf("mail_enqueue_failed: %w", err)
	}
	return nil
}
