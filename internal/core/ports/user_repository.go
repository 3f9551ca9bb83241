package ports

import (
	"context"
	"time"

	"github.com/filmoteka/catalog-api/internal/core/domain"
)

// ProfileUpdate carries the mutable profile fields. Empty strings leave the
// stored value untouched; AvatarURL is applied only when SetAvatar is true.
type ProfileUpdate struct {
	Username   string
	Bio        string
	TelegramID string
	AvatarURL  string
	SetAvatar  bool
}

// UserRepository defines the persistence interface for user accounts.
// Uniqueness of email, username and telegram id is enforced by the storage
// layer; a concurrent duplicate insert surfaces as domain.ErrUserExists.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByTelegramID(ctx context.Context, telegramID string) (*domain.User, error)

	// FindByVerifyToken matches a user whose verification token equals token
	// and whose expiry is after now. Consumed tokens never match because they
	// are cleared on use.
	FindByVerifyToken(ctx context.Context, token string, now time.Time) (*domain.User, error)

	// MarkEmailVerified sets emailVerified and clears the token and expiry.
	MarkEmailVerified(ctx context.Context, id string) error

	// SetVerifyToken replaces the verification token and its expiry.
	SetVerifyToken(ctx context.Context, id, token string, expiresAt time.Time) error

	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
