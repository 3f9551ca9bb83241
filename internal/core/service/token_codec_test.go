package service

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/filmoteka/catalog-api/internal/core/domain"
	"github.com/filmoteka/catalog-api/internal/core/ports"
)

func TestTokenCodec_AccessRoundTrip(t *testing.T) {
	codec := NewTokenCodec("secret")

	signed, err := codec.SignAccess(ports.AccessClaims{
		ID:            "u1",
		Email:         "alice@example.com",
		Username:      "alice",
		Role:          domain.RoleAdmin,
		EmailVerified: true,
	}, time.Hour)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	claims, err := codec.VerifyAccess(signed)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if claims.ID != "u1" || claims.Email != "alice@example.com" || claims.Role != domain.RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if !claims.EmailVerified {
		t.Fatalf("emailVerified not carried")
	}
}

func TestTokenCodec_Expired(t *testing.T) {
	codec := NewTokenCodec("secret")

	signed, err := codec.SignAccess(ports.AccessClaims{ID: "u1"}, -time.Second)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	if _, err := codec.VerifyAccess(signed); err != domain.ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenCodec_WithinTTL(t *testing.T) {
	codec := NewTokenCodec("secret")

	signed, err := codec.SignAccess(ports.AccessClaims{ID: "u1"}, 2*time.Second)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	if _, err := codec.VerifyAccess(signed); err != nil {
		t.Fatalf("token should still verify inside its TTL: %v", err)
	}
}

func TestTokenCodec_InvalidSignature(t *testing.T) {
	codec := NewTokenCodec("secret")
	other := NewTokenCodec("other-secret")

	signed, err := other.SignAccess(ports.AccessClaims{ID: "u1"}, time.Hour)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	if _, err := codec.VerifyAccess(signed); err != domain.ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
	if _, err := codec.VerifyAccess("garbage.garbage.garbage"); err != domain.ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid for garbage, got %v", err)
	}
}

func TestTokenCodec_RefreshSubject(t *testing.T) {
	codec := NewTokenCodec("secret")

	signed, err := codec.SignRefresh("u42", time.Hour)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	subject, err := codec.VerifyRefresh(signed)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if subject != "u42" {
		t.Fatalf("expected subject u42, got %s", subject)
	}
}

func TestParseTokenTTL(t *testing.T) {
	log := zerolog.Nop()

	cases := []struct {
		in   string
		want time.Duration
	}{
		{"3600", 3600 * time.Second},
		{"45", 45 * time.Second},
		{"30s", 30 * time.Second},
		{"15m", 15 * time.Minute},
		{"2h", 2 * time.Hour},
		{"7d", 7 * 24 * time.Hour},
		{"banana", 3600 * time.Second},
		{"", 3600 * time.Second},
		{"10w", 3600 * time.Second},
		{"-5", 3600 * time.Second},
		{"0", 3600 * time.Second},
	}

	for _, tc := range cases {
		if got := ParseTokenTTL(tc.in, log); got != tc.want {
			t.Fatalf("ParseTokenTTL(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
