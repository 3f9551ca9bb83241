package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/filmoteka/catalog-api/internal/core/domain"
	"github.com/filmoteka/catalog-api/internal/core/ports"
)

func seedUser(t *testing.T, repo *stubUserRepo, email, password string) *domain.User {
	t.Helper()
	hash, err := NewArgon2Hasher().Hash(password)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	user, err := repo.Create(context.Background(), &domain.User{
		Email:        email,
		Username:     "user-" + email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	return user
}

func TestUserService_ChangePassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, NewArgon2Hasher(), &stubFileStore{}, zerolog.Nop())
	user := seedUser(t, repo, "alice@example.com", "old-pass")

	if err := svc.ChangePassword(context.Background(), user.ID, "wrong", "new-pass"); err != domain.ErrPasswordMismatch {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
	if err := svc.ChangePassword(context.Background(), user.ID, "old-pass", "old-pass"); err != domain.ErrSamePassword {
		t.Fatalf("expected ErrSamePassword, got %v", err)
	}
	if err := svc.ChangePassword(context.Background(), user.ID, "old-pass", "new-pass"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	ok, err := NewArgon2Hasher().Verify(repo.users[user.ID].PasswordHash, "new-pass")
	if err != nil || !ok {
		t.Fatalf("new password not stored: ok=%v err=%v", ok, err)
	}
}

func TestUserService_UpdateProfileUsernameTaken(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, NewArgon2Hasher(), &stubFileStore{}, zerolog.Nop())
	seedUser(t, repo, "bob@example.com", "pass")
	carol := seedUser(t, repo, "carol@example.com", "pass")

	_, err := svc.UpdateProfile(context.Background(), carol.ID, ports.ProfileUpdate{Username: "user-bob@example.com"}, nil)
	if err != domain.ErrUsernameTaken {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestUserService_UpdateProfileReplacesAvatar(t *testing.T) {
	repo := newStubUserRepo()
	files := &stubFileStore{}
	svc := NewUserService(repo, NewArgon2Hasher(), files, zerolog.Nop())
	user := seedUser(t, repo, "dora@example.com", "pass")
	repo.users[user.ID].AvatarURL = "/uploads/avatars/old.png"

	updated, err := svc.UpdateProfile(context.Background(), user.ID, ports.ProfileUpdate{},
		&ports.FileUpload{Filename: "new.png", Content: []byte{1}})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.AvatarURL == "/uploads/avatars/old.png" || updated.AvatarURL == "" {
		t.Fatalf("avatar not replaced: %s", updated.AvatarURL)
	}
	if len(files.deleted) != 1 || files.deleted[0] != "/uploads/avatars/old.png" {
		t.Fatalf("old avatar not deleted: %v", files.deleted)
	}
}
