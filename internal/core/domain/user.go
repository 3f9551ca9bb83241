package domain

import "time"

const (
	RoleUser      = "USER"
	RoleModerator = "MODERATOR"
	RoleAdmin     = "ADMIN"
)

// User models a registered account. PasswordHash and the email verification
// token never leave the persistence boundary; outward-facing views go through
// ports.PublicUser instead.
type User struct {
	ID                  string    `json:"id"`
	Email               string    `json:"email"`
	Username            string    `json:"username"`
	TelegramID          string    `json:"telegram_id,omitempty"`
	PasswordHash        string    `json:"-"`
	Role                string    `json:"role"`
	EmailVerified       bool      `json:"email_verified"`
	EmailVerifyToken    string    `json:"-"`
	EmailTokenExpiresAt time.Time `json:"-"`
	AvatarURL           string    `json:"avatar_url,omitempty"`
	Bio                 string    `json:"bio,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// HasVerifyToken reports whether an unconsumed verification token is still
// attached to the account.
func (u *User) HasVerifyToken() bool {
	return u.EmailVerifyToken != ""
}

// ValidRole reports whether role is one of the known user roles.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}
