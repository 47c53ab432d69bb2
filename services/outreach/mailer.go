// Copyright (C) 2025 HackathonTwin
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package outreach

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strconv"

	"github.com/wneessen/go-mail"
)

// ErrSMTPNotConfigured is returned when delivery is attempted without a full
// set of credentials. No network connection is made in that case.
var ErrSMTPNotConfigured = errors.New("SMTP credentials not configured")

// SMTPConfig is an immutable snapshot of transport settings, passed into the
// delivery operation at call time rather than mutated on a shared service.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPConfigFromEnv reads host and port with the documented defaults.
// Credentials are supplied separately via the configure-smtp endpoint.
func SMTPConfigFromEnv() SMTPConfig {
	cfg := SMTPConfig{
		Host: "smtp.gmail.com",
		Port: 587,
	}
	if host := os.Getenv("SMTP_SERVER"); host != "" {
		cfg.Host = host
	}
	if port := os.Getenv("SMTP_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Port = p
		} else {
			slog.Warn("Invalid SMTP_PORT, keeping default", "value", port)
		}
	}
	return cfg
}

// Configured reports whether all three required credentials are present.
func (c SMTPConfig) Configured() bool {
	return c.Username != "" && c.Password != "" && c.From != ""
}

// WithCredentials returns a copy carrying the given credentials. The from
// address doubles as the username, matching the configure-smtp contract.
func (c SMTPConfig) WithCredentials(email, password string) SMTPConfig {
	c.Username = email
	c.Password = password
	c.From = email
	return c
}

// SendResult is the per-contact delivery outcome. Failures are recorded here
// and never abort a campaign.
type SendResult struct {
	Success     bool   `json:"success"`
	Email       string `json:"email"`
	ContactType string `json:"contact_type,omitempty"`
	Message     string `json:"message,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Sender delivers one draft to one contact.
type Sender interface {
	Send(ctx context.Context, cfg SMTPConfig, contact Contact, ctype ContactType, draft EmailDraft) SendResult
}

// Mailer sends plain-text mail over an authenticated STARTTLS session.
type Mailer struct{}

func NewMailer() *Mailer {
	return &Mailer{}
}

// Send delivers the draft to the contact. Missing credentials fail
// immediately with ErrSMTPNotConfigured; transport errors are reported in
// the result, never propagated.
func (m *Mailer) Send(ctx context.Context, cfg SMTPConfig, contact Contact, ctype ContactType, draft EmailDraft) SendResult {
	if !cfg.Configured() {
		return SendResult{Success: false, Email: contact.Email, Error: ErrSMTPNotConfigured.Error()}
	}

	msg := mail.NewMsg()
	if err := msg.From(cfg.From); err != nil {
		return SendResult{Success: false, Email: contact.Email, Error: err.Error()}
	}
	if err := msg.To(contact.Email); err != nil {
		return SendResult{Success: false, Email: contact.Email, Error: err.Error()}
	}
	msg.Subject(draft.Subject)
	msg.SetBodyString(mail.TypeTextPlain, draft.Body)

	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
	)
	if err != nil {
		slog.Error("Failed to build SMTP client", "host", cfg.Host, "error", err)
		return SendResult{Success: false, Email: contact.Email, Error: err.Error()}
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		slog.Error("Email delivery failed", "to", contact.Email, "error", err)
		return SendResult{Success: false, Email: contact.Email, Error: err.Error()}
	}

	slog.Info("Email sent", "to", contact.Email, "contact_type", ctype.String())
	return SendResult{
		Success:     true,
		Email:       contact.Email,
		ContactType: ctype.String(),
		Message:     "Email sent successfully",
	}
}

var _ Sender = (*Mailer)(nil)
