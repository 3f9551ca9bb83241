package ports

import (
	"context"

	"github.com/filmoteka/catalog-api/internal/core/domain"
)

// AccessClaims is the decoded payload of an access token. It is
// self-contained: the authorization middleware never touches storage to
// evaluate role or verification gates.
type AccessClaims struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Username      string `json:"username"`
	Role          string `json:"role"`
	EmailVerified bool   `json:"emailVerified"`
}

// PublicUser is the redacted user view returned by auth and profile
// endpoints. It never carries the password hash or verification token.
type PublicUser struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Username      string `json:"username"`
	Role          string `json:"role"`
	TelegramID    string `json:"telegram_id,omitempty"`
	AvatarURL     string `json:"avatar_url,omitempty"`
	Bio           string `json:"bio,omitempty"`
	EmailVerified bool   `json:"email_verified"`
}

// Session is the token pair produced by one issuance. It is entirely
// client-held; the server keeps no record of active sessions.
type Session struct {
	AccessToken  string
	RefreshToken string
	User         PublicUser
}

// FileUpload is an in-memory uploaded file handed to the core by the
// transport layer.
type FileUpload struct {
	Filename string
	Content  []byte
}

// RegisterInput carries the register operation payload. Password equality
// with its confirmation is checked by request validation before this input
// is built.
type RegisterInput struct {
	Username   string
	Email      string
	Password   string
	TelegramID string
	Avatar     *FileUpload
}

// AuthService implements registration, login, token refresh and the email
// verification lifecycle.
type AuthService interface {
	// Register creates an unverified account, dispatches a verification
	// email and issues a session without requiring a verified email.
	Register(ctx context.Context, input RegisterInput) (*Session, error)

	// Login reports domain.ErrUserNotFound both for an unknown email and for
	// a wrong password, so the response does not reveal which check failed.
	Login(ctx context.Context, email, password string) (*Session, error)

	// Refresh rotates the session from a refresh token. Unlike Register and
	// Login it requires a verified email.
	Refresh(ctx context.Context, refreshToken string) (*Session, error)

	// Validate resolves a user by id, confirming the token subject still
	// exists.
	Validate(ctx context.Context, id string) (*domain.User, error)

	// VerifyEmail consumes a single-use verification token and returns the
	// id of the verified user.
	VerifyEmail(ctx context.Context, token string) (string, error)

	// ResendVerification regenerates the token and resends the email. An
	// unknown address is silently ignored so the endpoint cannot be used to
	// enumerate accounts.
	ResendVerification(ctx context.Context, email string) error
}
