package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/filmoteka/catalog-api/internal/core/domain"
	"github.com/filmoteka/catalog-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, input ports.RegisterInput) (*ports.Session, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.Session, error)
	refreshFn  func(ctx context.Context, token string) (*ports.Session, error)
	verifyFn   func(ctx context.Context, token string) (string, error)
	resendFn   func(ctx context.Context, email string) error
}

func (s *stubAuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.Session, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.Session, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Refresh(ctx context.Context, token string) (*ports.Session, error) {
	return s.refreshFn(ctx, token)
}

func (s *stubAuthService) Validate(ctx context.Context, id string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubAuthService) VerifyEmail(ctx context.Context, token string) (string, error) {
	return s.verifyFn(ctx, token)
}

func (s *stubAuthService) ResendVerification(ctx context.Context, email string) error {
	return s.resendFn(ctx, email)
}

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func refreshCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == refreshCookieName {
			return cookie
		}
	}
	return nil
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (*ports.Session, error) {
			if input.Username != "alice" || input.Email != "alice@example.com" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &ports.Session{
				AccessToken:  "access123",
				RefreshToken: "refresh123",
				User:         ports.PublicUser{Username: "alice", Role: domain.RoleUser},
			}, nil
		},
	}
	h := NewAuthHandler(stub, CookiePolicy{Domain: "localhost", Dev: true})

	c, rec := newTestContext(t, http.MethodPost, "/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"hunter2hunter2","confirmPassword":"hunter2hunter2"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["accessToken"] != "access123" {
		t.Fatalf("expected access token, got %v", resp["accessToken"])
	}
	if _, hasRefresh := resp["refreshToken"]; hasRefresh {
		t.Fatalf("refresh token leaked into the body")
	}

	cookie := refreshCookie(t, rec)
	if cookie == nil {
		t.Fatalf("refresh cookie not set")
	}
	if cookie.Value != "refresh123" || !cookie.HttpOnly {
		t.Fatalf("unexpected cookie: %+v", cookie)
	}
	if cookie.Secure {
		t.Fatalf("dev cookie must not be Secure")
	}
}

func TestAuthHandler_Register_PasswordMismatch(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (*ports.Session, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub, CookiePolicy{})

	c, rec := newTestContext(t, http.MethodPost, "/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"hunter2hunter2","confirmPassword":"different"}`)

	err := h.Register(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v (rec %d)", err, rec.Code)
	}
}

func TestAuthHandler_Register_EmailTaken(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (*ports.Session, error) {
			return nil, domain.ErrEmailTaken
		},
	}
	h := NewAuthHandler(stub, CookiePolicy{})

	c, _ := newTestContext(t, http.MethodPost, "/auth/register",
		`{"username":"bob","email":"bob@example.com","password":"hunter2hunter2","confirmPassword":"hunter2hunter2"}`)

	if err := h.Register(c); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.Session, error) {
			if email != "alice@example.com" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return &ports.Session{
				AccessToken:  "access123",
				RefreshToken: "refresh123",
				User:         ports.PublicUser{Username: "alice"},
			}, nil
		},
	}
	h := NewAuthHandler(stub, CookiePolicy{Domain: "filmoteka.io", Dev: false})

	c, rec := newTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"secret"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	cookie := refreshCookie(t, rec)
	if cookie == nil {
		t.Fatalf("refresh cookie not set")
	}
	if !cookie.Secure || cookie.SameSite != http.SameSiteLaxMode {
		t.Fatalf("production cookie attributes wrong: %+v", cookie)
	}
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.Session, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	h := NewAuthHandler(stub, CookiePolicy{})

	c, _ := newTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"bad"}`)

	// Wrong password and unknown email are indistinguishable on purpose.
	if err := h.Login(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthHandler_Refresh_FromCookie(t *testing.T) {
	stub := &stubAuthService{
		refreshFn: func(ctx context.Context, token string) (*ports.Session, error) {
			if token != "refresh123" {
				t.Fatalf("expected cookie token, got %q", token)
			}
			return &ports.Session{AccessToken: "newaccess", RefreshToken: "newrefresh"}, nil
		},
	}
	h := NewAuthHandler(stub, CookiePolicy{Dev: true})

	c, rec := newTestContext(t, http.MethodPost, "/auth/refresh", "")
	c.Request().AddCookie(&http.Cookie{Name: refreshCookieName, Value: "refresh123"})

	if err := h.Refresh(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	cookie := refreshCookie(t, rec)
	if cookie == nil || cookie.Value != "newrefresh" {
		t.Fatalf("rotated refresh cookie not set: %+v", cookie)
	}
}

func TestAuthHandler_Refresh_IgnoresBodyToken(t *testing.T) {
	stub := &stubAuthService{
		refreshFn: func(ctx context.Context, token string) (*ports.Session, error) {
			if token != "" {
				t.Fatalf("body token leaked into refresh: %q", token)
			}
			return nil, domain.ErrTokenInvalid
		},
	}
	h := NewAuthHandler(stub, CookiePolicy{})

	c, _ := newTestContext(t, http.MethodPost, "/auth/refresh", `{"refreshToken":"smuggled"}`)

	if err := h.Refresh(c); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestAuthHandler_Refresh_MissingToken(t *testing.T) {
	stub := &stubAuthService{
		refreshFn: func(ctx context.Context, token string) (*ports.Session, error) {
			if token != "" {
				t.Fatalf("expected empty token, got %q", token)
			}
			return nil, domain.ErrTokenInvalid
		},
	}
	h := NewAuthHandler(stub, CookiePolicy{})

	c, _ := newTestContext(t, http.MethodPost, "/auth/refresh", "")

	if err := h.Refresh(c); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, CookiePolicy{Dev: true})

	c, rec := newTestContext(t, http.MethodPost, "/auth/logout", "")
	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	cookie := refreshCookie(t, rec)
	if cookie == nil {
		t.Fatalf("clearing cookie not set")
	}
	if cookie.Value != "" || cookie.Expires.Unix() > 0 {
		t.Fatalf("cookie not expired: %+v", cookie)
	}
}

func TestAuthHandler_VerifyEmail(t *testing.T) {
	stub := &stubAuthService{
		verifyFn: func(ctx context.Context, token string) (string, error) {
			if token != "tok123" {
				t.Fatalf("unexpected token %q", token)
			}
			return "user1", nil
		},
	}
	h := NewAuthHandler(stub, CookiePolicy{})

	c, rec := newTestContext(t, http.MethodGet, "/auth/verify-email?token=tok123", "")
	if err := h.VerifyEmail(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"userId":"user1"`) {
		t.Fatalf("user id missing from body: %s", rec.Body.String())
	}
}

func TestAuthHandler_VerifyEmail_MissingToken(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, CookiePolicy{})

	c, _ := newTestContext(t, http.MethodGet, "/auth/verify-email", "")
	err := h.VerifyEmail(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_ResendVerification(t *testing.T) {
	called := false
	stub := &stubAuthService{
		resendFn: func(ctx context.Context, email string) error {
			called = true
			if email != "ghost@example.com" {
				t.Fatalf("unexpected email %q", email)
			}
			return nil
		},
	}
	h := NewAuthHandler(stub, CookiePolicy{})

	c, rec := newTestContext(t, http.MethodPost, "/auth/resend-verification",
		`{"email":"ghost@example.com"}`)

	if err := h.ResendVerification(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("service not called")
	}
	// Unknown addresses get the same 200 as known ones.
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
