package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/filmoteka/catalog-api/internal/core/domain"
	"github.com/filmoteka/catalog-api/internal/core/ports"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email || u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
		if user.TelegramID != "" && u.TelegramID == user.TelegramID {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("u%d", r.nextID)
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByTelegramID(_ context.Context, telegramID string) (*domain.User, error) {
	for _, u := range r.users {
		if u.TelegramID == telegramID {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByVerifyToken(_ context.Context, token string, now time.Time) (*domain.User, error) {
	for _, u := range r.users {
		if u.EmailVerifyToken == token && u.EmailTokenExpiresAt.After(now) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) MarkEmailVerified(_ context.Context, id string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.EmailVerified = true
	u.EmailVerifyToken = ""
	u.EmailTokenExpiresAt = time.Time{}
	return nil
}

func (r *stubUserRepo) SetVerifyToken(_ context.Context, id, token string, expiresAt time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.EmailVerifyToken = token
	u.EmailTokenExpiresAt = expiresAt
	return nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id string, update ports.ProfileUpdate) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if update.Username != "" {
		u.Username = update.Username
	}
	if update.Bio != "" {
		u.Bio = update.Bio
	}
	if update.TelegramID != "" {
		u.TelegramID = update.TelegramID
	}
	if update.SetAvatar {
		u.AvatarURL = update.AvatarURL
	}
	u.UpdatedAt = time.Now().UTC()
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

type stubMailSender struct {
	sent []string // tokens, in dispatch order
	to   []string
}

func (m *stubMailSender) SendVerification(_ context.Context, email, _ string, token string) error {
	m.sent = append(m.sent, token)
	m.to = append(m.to, email)
	return nil
}

type stubFileStore struct {
	saved   []string
	deleted []string
}

func (f *stubFileStore) Save(_ context.Context, kind ports.FileKind, originalName string, _ []byte) (string, error) {
	url := "/uploads/" + string(kind) + "/" + originalName
	f.saved = append(f.saved, url)
	return url, nil
}

func (f *stubFileStore) Delete(_ context.Context, url string) error {
	f.deleted = append(f.deleted, url)
	return nil
}

func newTestAuthService(repo *stubUserRepo, mail *stubMailSender) *AuthService {
	return NewAuthService(repo, NewArgon2Hasher(), NewTokenCodec("secret"),
		mail, &stubFileStore{}, time.Hour, 7*24*time.Hour, zerolog.Nop())
}

func register(t *testing.T, svc *AuthService, email string) *ports.Session {
	t.Helper()
	session, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "user-" + email,
		Email:    email,
		Password: "pass123",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	return session
}

func TestAuthService_RegisterThenLogin(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, &stubMailSender{})

	registered := register(t, svc, "alice@example.com")
	if registered.AccessToken == "" || registered.RefreshToken == "" {
		t.Fatalf("expected both tokens, got %+v", registered)
	}
	if registered.User.EmailVerified {
		t.Fatalf("new user must start unverified")
	}

	logged, err := svc.Login(context.Background(), "alice@example.com", "pass123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if logged.User.ID != registered.User.ID {
		t.Fatalf("login returned different user: %s vs %s", logged.User.ID, registered.User.ID)
	}
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, &stubMailSender{})

	register(t, svc, "bob@example.com")
	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "other",
		Email:    "bob@example.com",
		Password: "pass123",
	})
	if err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected one user record, got %d", len(repo.users))
	}
}

func TestAuthService_RegisterDuplicateTelegram(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, &stubMailSender{})

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "carol", Email: "carol@example.com", Password: "p", TelegramID: "tg1",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "dave", Email: "dave@example.com", Password: "p", TelegramID: "tg1",
	})
	if err != domain.ErrTelegramTaken {
		t.Fatalf("expected ErrTelegramTaken, got %v", err)
	}
}

func TestAuthService_LoginWrongPasswordReportsNotFound(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, &stubMailSender{})

	register(t, svc, "eve@example.com")

	if _, err := svc.Login(context.Background(), "eve@example.com", "wrong"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound for wrong password, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "ghost@example.com", "pass123"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound for unknown email, got %v", err)
	}
}

func TestAuthService_RefreshRequiresVerifiedEmail(t *testing.T) {
	repo := newStubUserRepo()
	mail := &stubMailSender{}
	svc := newTestAuthService(repo, mail)

	session := register(t, svc, "frank@example.com")

	// login still works unverified, refresh does not
	if _, err := svc.Login(context.Background(), "frank@example.com", "pass123"); err != nil {
		t.Fatalf("unverified login must succeed: %v", err)
	}
	if _, err := svc.Refresh(context.Background(), session.RefreshToken); err != domain.ErrEmailNotVerified {
		t.Fatalf("expected ErrEmailNotVerified, got %v", err)
	}

	if _, err := svc.VerifyEmail(context.Background(), mail.sent[0]); err != nil {
		t.Fatalf("verify email failed: %v", err)
	}

	rotated, err := svc.Refresh(context.Background(), session.RefreshToken)
	if err != nil {
		t.Fatalf("refresh after verification failed: %v", err)
	}
	if !rotated.User.EmailVerified {
		t.Fatalf("rotated session must carry emailVerified=true")
	}
}

func TestAuthService_RefreshRejectsBadTokens(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, &stubMailSender{})

	if _, err := svc.Refresh(context.Background(), ""); err != domain.ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid for missing token, got %v", err)
	}
	if _, err := svc.Refresh(context.Background(), "not.a.token"); err != domain.ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}

	// subject no longer resolves
	codec := NewTokenCodec("secret")
	orphan, err := codec.SignRefresh("gone", time.Hour)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	if _, err := svc.Refresh(context.Background(), orphan); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_VerifyEmailSingleUse(t *testing.T) {
	repo := newStubUserRepo()
	mail := &stubMailSender{}
	svc := newTestAuthService(repo, mail)

	session := register(t, svc, "grace@example.com")
	token := mail.sent[0]

	userID, err := svc.VerifyEmail(context.Background(), token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if userID != session.User.ID {
		t.Fatalf("verify returned wrong user id: %s", userID)
	}

	stored := repo.users[userID]
	if !stored.EmailVerified || stored.EmailVerifyToken != "" || !stored.EmailTokenExpiresAt.IsZero() {
		t.Fatalf("token not cleared after consumption: %+v", stored)
	}

	// consumed token no longer exists, resubmission fails
	if _, err := svc.VerifyEmail(context.Background(), token); err != domain.ErrVerifyToken {
		t.Fatalf("expected ErrVerifyToken on reuse, got %v", err)
	}
}

func TestAuthService_VerifyEmailExpiredToken(t *testing.T) {
	repo := newStubUserRepo()
	mail := &stubMailSender{}
	svc := newTestAuthService(repo, mail)

	session := register(t, svc, "henry@example.com")
	repo.users[session.User.ID].EmailTokenExpiresAt = time.Now().UTC().Add(-time.Minute)

	if _, err := svc.VerifyEmail(context.Background(), mail.sent[0]); err != domain.ErrVerifyToken {
		t.Fatalf("expected ErrVerifyToken for expired token, got %v", err)
	}
	if repo.users[session.User.ID].EmailVerified {
		t.Fatalf("expired token must not verify the email")
	}
}

func TestAuthService_ResendVerification(t *testing.T) {
	repo := newStubUserRepo()
	mail := &stubMailSender{}
	svc := newTestAuthService(repo, mail)

	session := register(t, svc, "iris@example.com")
	firstToken := mail.sent[0]

	if err := svc.ResendVerification(context.Background(), "iris@example.com"); err != nil {
		t.Fatalf("resend failed: %v", err)
	}
	if len(mail.sent) != 2 {
		t.Fatalf("expected a second email, got %d", len(mail.sent))
	}
	if mail.sent[1] == firstToken {
		t.Fatalf("resend must rotate the token")
	}
	if repo.users[session.User.ID].EmailVerifyToken != mail.sent[1] {
		t.Fatalf("stored token not rotated")
	}
}

func TestAuthService_ResendVerificationUnknownEmail(t *testing.T) {
	repo := newStubUserRepo()
	mail := &stubMailSender{}
	svc := newTestAuthService(repo, mail)

	if err := svc.ResendVerification(context.Background(), "unknown@x.com"); err != nil {
		t.Fatalf("unknown email must not error: %v", err)
	}
	if len(mail.sent) != 0 {
		t.Fatalf("unknown email must not trigger a send")
	}
	if len(repo.users) != 0 {
		t.Fatalf("unknown email must not create records")
	}
}

func TestAuthService_ResendVerificationAlreadyVerified(t *testing.T) {
	repo := newStubUserRepo()
	mail := &stubMailSender{}
	svc := newTestAuthService(repo, mail)

	register(t, svc, "judy@example.com")
	if _, err := svc.VerifyEmail(context.Background(), mail.sent[0]); err != nil {
		t.Fatalf("verify failed: %v", err)
	}

	if err := svc.ResendVerification(context.Background(), "judy@example.com"); err != domain.ErrEmailVerified {
		t.Fatalf("expected ErrEmailVerified, got %v", err)
	}
}

func TestAuthService_RegisterStoresAvatar(t *testing.T) {
	repo := newStubUserRepo()
	files := &stubFileStore{}
	svc := NewAuthService(repo, NewArgon2Hasher(), NewTokenCodec("secret"),
		&stubMailSender{}, files, time.Hour, 7*24*time.Hour, zerolog.Nop())

	session, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "kate",
		Email:    "kate@example.com",
		Password: "pass123",
		Avatar:   &ports.FileUpload{Filename: "me.png", Content: []byte{1, 2, 3}},
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if session.User.AvatarURL == "" {
		t.Fatalf("avatar url not attached")
	}
	if len(files.saved) != 1 {
		t.Fatalf("expected one saved file, got %d", len(files.saved))
	}
}
