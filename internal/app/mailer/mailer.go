/*
Package mailer sends transactional email over SMTP.

Its single use today is the password reset message: a short-lived reset link
built from the configured frontend URL.
*/
package mailer

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// Config holds the SMTP connection settings and the sender address.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer sends transactional email through one SMTP account.
type Mailer struct {
	cfg    Config
	client *mail.Client
}

// New constructs a Mailer and its underlying SMTP client.
func New(cfg Config) (*Mailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}

	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	return &Mailer{cfg: cfg, client: client}, nil
}

// SendPasswordReset delivers the password reset link to the given address.
func (m *Mailer) SendPasswordReset(ctx context.Context, to string, resetLink string) error {
	msg := mail.NewMsg()

	if err := msg.From(m.cfg.From); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}

	msg.Subject("Password Reset Link")
	msg.SetBodyString(mail.TypeTextHTML, passwordResetBody(resetLink))

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}

	return nil
}

// passwordResetBody renders the HTML body of the password reset email.
func passwordResetBody(resetLink string) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
  <div style="max-width: 600px; margin: auto; background: #ffffff; padding: 30px; border-radius: 8px; text-align: center;">
    <h2 style="font-size: 18px; color: #333;">Connectify Messenger</h2>
    <h1 style="font-size: 22px; color: #333;">Password Reset Request</h1>
    <p style="font-size: 16px; color: #555;">You have requested to reset your password. Click the button below to proceed.</p>
    <a href="%s" style="display: inline-block; background: #007bff; color: #fff; padding: 12px 20px; text-decoration: none; border-radius: 5px; font-size: 16px; font-weight: bold;">Reset Password</a>
    <p style="margin-top: 20px; font-size: 14px; color: #888;">If you did not request this, please ignore this email.</p>
  </div>
</div>`, resetLink)
}
