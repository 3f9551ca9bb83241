package ports

import "context"

// UserService implements profile operations for the authenticated user.
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*PublicUser, error)

	// UpdateProfile applies the given fields. A username already used by a
	// different account yields domain.ErrUsernameTaken.
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate, avatar *FileUpload) (*PublicUser, error)

	// ChangePassword verifies the current password before storing a new
	// hash. A new password equal to the current one is rejected.
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}
