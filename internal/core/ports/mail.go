package ports

import "context"

// MailSender delivers outbound account email. Implementations may deliver
// asynchronously; an error from SendVerification means the message could not
// be accepted for delivery, not that delivery failed later.
type MailSender interface {
	SendVerification(ctx context.Context, email, username, token string) error
}
