package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/filmoteka/catalog-api/internal/core/domain"
	"github.com/filmoteka/catalog-api/internal/core/ports"
)

// UserService implements profile operations for the authenticated user.
type UserService struct {
	users  ports.UserRepository
	hasher *Argon2Hasher
	files  ports.FileStore
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, hasher *Argon2Hasher, files ports.FileStore, logger zerolog.Logger) *UserService {
	return &UserService{users: users, hasher: hasher, files: files, logger: logger}
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*ports.PublicUser, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	view := PublicView(user)
	return &view, nil
}

// UpdateProfile applies the given fields. A new avatar replaces the stored
// file; the previous one is removed best-effort.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, update ports.ProfileUpdate, avatar *ports.FileUpload) (*ports.PublicUser, error) {
	current, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.Username != "" && update.Username != current.Username {
		if existing, err := s.users.FindByUsername(ctx, update.Username); err == nil && existing.ID != userID {
			return nil, domain.ErrUsernameTaken
		}
	}

	if avatar != nil {
		if current.AvatarURL != "" {
			if err := s.files.Delete(ctx, current.AvatarURL); err != nil {
				s.logger.Warn().Err(err).Str("url", current.AvatarURL).Msg("stale avatar not removed")
			}
		}
		url, err := s.files.Save(ctx, ports.FileAvatar, avatar.Filename, avatar.Content)
		if err != nil {
			return nil, fmt.Errorf("save avatar: %w", err)
		}
		update.AvatarURL = url
		update.SetAvatar = true
	}

	updated, err := s.users.UpdateProfile(ctx, userID, update)
	if err != nil {
		return nil, err
	}

	view := PublicView(updated)
	return &view, nil
}

// ChangePassword stores a new hash after checking the current password. The
// wrong current password is an authorization failure, not a validation one.
func (s *UserService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	ok, err := s.hasher.Verify(user.PasswordHash, currentPassword)
	if err != nil {
		return fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return domain.ErrPasswordMismatch
	}

	same, err := s.hasher.Verify(user.PasswordHash, newPassword)
	if err != nil {
		return fmt.Errorf("verify password: %w", err)
	}
	if same {
		return domain.ErrSamePassword
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", userID).Msg("password changed")
	return nil
}
