// Copyright (c) 2025-2026 Inkwell Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package mailer relays contact form submissions by email over SMTP.
package mailer

import (
	"context"
	"fmt"
	"strings"

	"github.com/wneessen/go-mail"

	"github.com/inkwell-blog/inkwell/internal/store"
)

// Config holds the SMTP account used for outbound mail. Credentials are
// injected at construction, never read from the environment here.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

// Mailer sends contact messages. Delivery is synchronous with no retry;
// errors propagate to the caller.
type Mailer struct {
	cfg Config
}

// New creates a Mailer with the given SMTP configuration.
func New(cfg Config) *Mailer {
	return &Mailer{cfg: cfg}
}

// SendContactMessage delivers a contact form submission to the configured
// recipient. The connection uses STARTTLS and plain authentication.
func (m *Mailer) SendContactMessage(ctx context.Context, msg store.ContactMessage) error {
	mm, err := m.buildMessage(msg)
	if err != nil {
		return fmt.Errorf("building message: %w", err)
	}

	client, err := mail.NewClient(m.cfg.Host,
		mail.WithPort(m.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("creating smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, mm); err != nil {
		return fmt.Errorf("sending contact mail: %w", err)
	}

	return nil
}

// buildMessage assembles the outbound mail for a submission.
func (m *Mailer) buildMessage(msg store.ContactMessage) (*mail.Msg, error) {
	mm := mail.NewMsg()
	if err := mm.From(m.cfg.From); err != nil {
		return nil, fmt.Errorf("setting sender: %w", err)
	}
	if err := mm.To(m.cfg.To); err != nil {
		return nil, fmt.Errorf("setting recipient: %w", err)
	}
	if msg.Email != "" {
		if err := mm.ReplyTo(msg.Email); err != nil {
			return nil, fmt.Errorf("setting reply-to: %w", err)
		}
	}

	mm.Subject(fmt.Sprintf("Website Mail [%s]", msg.Reference))
	mm.SetBodyString(mail.TypeTextPlain, formatBody(msg))

	return mm, nil
}

// formatBody renders the plain-text mail body for a submission.
func formatBody(msg store.ContactMessage) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Name: %s\n", msg.Name)
	fmt.Fprintf(&sb, "Email: %s\n", msg.Email)
	fmt.Fprintf(&sb, "Phone: %s\n", msg.Phone)
	fmt.Fprintf(&sb, "\n%s\n", msg.Message)
	return sb.String()
}
