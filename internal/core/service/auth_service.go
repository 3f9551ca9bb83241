package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/filmoteka/catalog-api/internal/core/domain"
	"github.com/filmoteka/catalog-api/internal/core/ports"
)

const emailTokenTTL = 24 * time.Hour

// AuthService implements registration, login, token refresh and the email
// verification lifecycle. Sessions are stateless: both tokens are
// self-contained and nothing is recorded server-side, so logout and refresh
// rotation are purely cookie replacement at the transport layer.
type AuthService struct {
	users      ports.UserRepository
	hasher     *Argon2Hasher
	codec      *TokenCodec
	mail       ports.MailSender
	files      ports.FileStore
	accessTTL  time.Duration
	refreshTTL time.Duration
	logger     zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	hasher *Argon2Hasher,
	codec *TokenCodec,
	mail ports.MailSender,
	files ports.FileStore,
	accessTTL, refreshTTL time.Duration,
	logger zerolog.Logger,
) *AuthService {
	if accessTTL <= 0 {
		accessTTL = time.Hour
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &AuthService{
		users:      users,
		hasher:     hasher,
		codec:      codec,
		mail:       mail,
		files:      files,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		logger:     logger,
	}
}

// Register creates an unverified account and issues a session. Verification
// gates specific actions later; it does not gate login itself.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.Session, error) {
	if existing, err := s.users.FindByEmail(ctx, input.Email); err == nil && existing != nil {
		return nil, domain.ErrEmailTaken
	}
	if input.TelegramID != "" {
		if existing, err := s.users.FindByTelegramID(ctx, input.TelegramID); err == nil && existing != nil {
			return nil, domain.ErrTelegramTaken
		}
	}

	var avatarURL string
	if input.Avatar != nil {
		url, err := s.files.Save(ctx, ports.FileAvatar, input.Avatar.Filename, input.Avatar.Content)
		if err != nil {
			return nil, fmt.Errorf("save avatar: %w", err)
		}
		avatarURL = url
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	verifyToken, err := newEmailToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:               input.Email,
		Username:            input.Username,
		TelegramID:          input.TelegramID,
		PasswordHash:        hash,
		Role:                domain.RoleUser,
		EmailVerified:       false,
		EmailVerifyToken:    verifyToken,
		EmailTokenExpiresAt: now.Add(emailTokenTTL),
		AvatarURL:           avatarURL,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	// A concurrent registration with the same email loses here on the unique
	// index and surfaces as a conflict, not a crash.
	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.mail.SendVerification(ctx, created.Email, created.Username, verifyToken); err != nil {
		s.logger.Error().Err(err).Str("email", created.Email).Msg("verification email dispatch failed")
	}

	s.logger.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user registered")

	return s.issue(ctx, created.ID, false)
}

// Login authenticates by email and password. A wrong password is reported as
// domain.ErrUserNotFound, same as an unknown email, so the caller cannot
// tell which check failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.Session, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	ok, err := s.hasher.Verify(user.PasswordHash, password)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	return s.issue(ctx, user.ID, false)
}

// Refresh rotates the session from a refresh token. This path requires a
// verified email even though register and login do not; an unverified user
// keeps their original session until it expires but cannot renew it.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.Session, error) {
	if refreshToken == "" {
		return nil, domain.ErrTokenInvalid
	}

	subject, err := s.codec.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.Validate(ctx, subject)
	if err != nil {
		return nil, err
	}

	return s.issue(ctx, user.ID, true)
}

// Validate resolves a user by id, confirming the token subject still exists.
// Refresh goes through it; the bearer middleware itself trusts the signed
// claims and stays off the database.
func (s *AuthService) Validate(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// VerifyEmail consumes a single-use verification token. A wrong, expired or
// already consumed token all fail identically because a consumed token no
// longer exists.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", domain.ErrVerifyToken
	}

	user, err := s.users.FindByVerifyToken(ctx, token, time.Now().UTC())
	if err != nil {
		return "", domain.ErrVerifyToken
	}

	if err := s.users.MarkEmailVerified(ctx, user.ID); err != nil {
		return "", fmt.Errorf("mark email verified: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Msg("email verified")
	return user.ID, nil
}

// ResendVerification regenerates the token and resends the email. Unknown
// addresses are ignored without error so the endpoint does not reveal
// whether an account exists.
func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil
	}

	if user.EmailVerified {
		return domain.ErrEmailVerified
	}

	token, err := newEmailToken()
	if err != nil {
		return err
	}

	if err := s.users.SetVerifyToken(ctx, user.ID, token, time.Now().UTC().Add(emailTokenTTL)); err != nil {
		return fmt.Errorf("set verification token: %w", err)
	}

	return s.mail.SendVerification(ctx, user.Email, user.Username, token)
}

// issue loads the user, optionally enforces email verification, and mints
// the access/refresh token pair with a redacted user view.
func (s *AuthService) issue(ctx context.Context, userID string, requireVerified bool) (*ports.Session, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if requireVerified && !user.EmailVerified {
		return nil, domain.ErrEmailNotVerified
	}

	accessToken, err := s.codec.SignAccess(ports.AccessClaims{
		ID:            user.ID,
		Email:         user.Email,
		Username:      user.Username,
		Role:          user.Role,
		EmailVerified: user.EmailVerified,
	}, s.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refreshToken, err := s.codec.SignRefresh(user.ID, s.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	return &ports.Session{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         PublicView(user),
	}, nil
}

// PublicView redacts a user record for responses.
func PublicView(user *domain.User) ports.PublicUser {
	return ports.PublicUser{
		ID:            user.ID,
		Email:         user.Email,
		Username:      user.Username,
		Role:          user.Role,
		TelegramID:    user.TelegramID,
		AvatarURL:     user.AvatarURL,
		Bio:           user.Bio,
		EmailVerified: user.EmailVerified,
	}
}

// newEmailToken returns 32 random bytes hex-encoded.
func newEmailToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate verification token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
