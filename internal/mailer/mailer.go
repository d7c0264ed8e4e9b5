// Package mailer delivers transactional email over SMTP.
package mailer

import (
	"context"
	"fmt"

	"github.com/campdir/campdir-api/internal/config"
	"github.com/wneessen/go-mail"
)

// Mailer sends a plain-text email to a single recipient.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPMailer sends email through a configured SMTP relay.
type SMTPMailer struct {
	client    *mail.Client
	fromEmail string
	fromName  string
}

// NewSMTPMailer builds an SMTP mailer from config. Credentials are optional;
// when absent the client connects unauthenticated (local relay).
func NewSMTPMailer(cfg *config.Config) (*SMTPMailer, error) {
	opts := []mail.Option{mail.WithPort(cfg.SMTPPort)}
	if cfg.SMTPUser != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.SMTPUser),
			mail.WithPassword(cfg.SMTPPassword),
		)
	}

	client, err := mail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating smtp client: %w", err)
	}

	return &SMTPMailer{
		client:    client,
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
	}, nil
}

// Send composes and delivers a plain-text message.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.FromFormat(m.fromName, m.fromEmail); err != nil {
		return fmt.Errorf("setting sender: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("setting recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}
	return nil
}
