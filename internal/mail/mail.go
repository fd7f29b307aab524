// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package mail delivers account notifications.

The [Mailer] renders a [Message] and hands it to a [Sender]. Three senders exist:

  - LogSender writes the message to the log (development).
  - SMTPSender talks to an SMTP relay directly.
  - QueueSender publishes the message for the mail worker, which owns the SMTP delivery.
*/
package mail

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/taibuivan/lotmarket/internal/user"
)

// Message is a rendered plain-text mail.
type Message struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Sender delivers a rendered message. Implementations do not retry.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// ResetPasswordSubject is the subject line of reset instructions.
const ResetPasswordSubject = "Reset your lotmarket password"

// Mailer renders account notifications.
type Mailer struct {
	sender   Sender
	from     string
	resetURL string
}

// NewMailer creates a Mailer. resetURL is the front-end page that accepts the token.
func NewMailer(sender Sender, from, resetURL string) *Mailer {
	return &Mailer{sender: sender, from: from, resetURL: resetURL}
}

// SendResetPasswordToken mails reset instructions carrying token to recipient.
func (m *Mailer) SendResetPasswordToken(ctx context.Context, recipient *user.User, token string) error {
	msg := Message{
		To:      recipient.Email,
		From:    m.from,
		Subject: ResetPasswordSubject,
		Body:    resetPasswordBody(ResetLink(m.resetURL, token)),
	}

	if err := m.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("mail_send_reset_password_failed: %w", err)
	}
	return nil
}

// ResetLink appends token to base as the "token" query parameter.
func ResetLink(base, token string) string {
	parsed, err := url.Parse(base)
	if err != nil || base == "" {
		return base + token
	}

	query := parsed.Query()
	query.Set("token", token)
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

func resetPasswordBody(link string) string {
	var b strings.Builder
	b.WriteString("Hello,\r\n\r\n")
	b.WriteString("We received a request to reset the password of your lotmarket account.\r\n")
	b.WriteString("Open the link below to choose a new one:\r\n\r\n")
	b.WriteString(link)
	b.WriteString("\r\n\r\nIf you did not ask for this, you can ignore this mail.\r\n")
	return b.String()
}
