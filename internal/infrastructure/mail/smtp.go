// Package mail implements outbound account email over SMTP, plus a log-only
// fallback for environments without an SMTP relay.
package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender delivers verification email through an SMTP relay using go-mail.
type SMTPSender struct {
	client *gomail.Client
	from   string
	apiURL string
}

// Config captures the SMTP relay settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// APIURL is the externally reachable base URL the verification link
	// points at.
	APIURL string
}

// NewSMTPSender builds an SMTPSender. The connection is established lazily on
// the first send.
func NewSMTPSender(cfg Config) (*SMTPSender, error) {
	client, err := gomail.NewClient(cfg.Host,
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Username),
		gomail.WithPassword(cfg.Password),
	)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &SMTPSender{client: client, from: cfg.From, apiURL: cfg.APIURL}, nil
}

// SendVerification sends the account verification email with a single-use link.
func (s *SMTPSender) SendVerification(ctx context.Context, email, username, token string) error {
	msg := gomail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := msg.To(email); err != nil {
		return fmt.Errorf("mail to: %w", err)
	}

	link := fmt.Sprintf("%s/auth/verify-email?token=%s", s.apiURL, token)
	msg.Subject("Confirm your email address")
	msg.SetBodyString(gomail.TypeTextPlain, fmt.Sprintf(
		"Hi %s,\n\nConfirm your email address by opening the link below. "+
			"The link is valid for 24 hours and can be used once.\n\n%s\n\n"+
			"If you did not create this account, ignore this message.\n",
		username, link,
	))

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send verification mail: %w", err)
	}
	return nil
}
