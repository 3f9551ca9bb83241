package mail

import (
	"context"

	"github.com/rs/zerolog"
)

// LogSender writes verification tokens to the log instead of sending email.
// Used in development when no SMTP host is configured.
type LogSender struct {
	log zerolog.Logger
}

func NewLogSender(log zerolog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) SendVerification(_ context.Context, email, username, token string) error {
	s.log.Info().
		Str("email", email).
		Str("username", username).
		Str("token", token).
		Msg("verification email (log-only sender)")
	return nil
}
