// Package mail sends transactional messages. Delivery failures are the
// caller's to log; the web layer never surfaces them to the requester.
package mail

import (
	"fmt"
	"log"

	gomail "github.com/wneessen/go-mail"

	"github.com/voltrack/voltrack/internal/config"
)

// Mailer delivers outbound messages.
type Mailer interface {
	SendPasswordReset(to, fullName, resetURL string) error
}

// New returns an SMTP mailer when cfg.Host is set, otherwise a logger-only
// mailer so development setups work without a mail server.
func New(cfg config.SMTPConfig) Mailer {
	if cfg.Host == "" {
		return LogMailer{}
	}
	return &SMTPMailer{cfg: cfg}
}

func resetBody(fullName, resetURL string) string {
	return fmt.Sprintf(`Hello %s,

To reset your password, click the link below:

%s

If you did not request a password reset, you can safely ignore this email.
`, fullName, resetURL)
}

// SMTPMailer sends via an authenticated SMTP relay.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

// SendPasswordReset mails a reset link to the user.
func (m *SMTPMailer) SendPasswordReset(to, fullName, resetURL string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject("Password Reset Request")
	msg.SetBodyString(gomail.TypeTextPlain, resetBody(fullName, resetURL))

	client, err := gomail.NewClient(m.cfg.Host,
		gomail.WithPort(m.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.cfg.Username),
		gomail.WithPassword(m.cfg.Password),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}
	return nil
}

// LogMailer writes the reset link to the process log instead of sending.
type LogMailer struct{}

// SendPasswordReset logs the link that would have been mailed.
func (LogMailer) SendPasswordReset(to, fullName, resetURL string) error {
	log.Printf("mail: SMTP not configured, reset link for %s: %s", to, resetURL)
	return nil
}
