package service

import (
	"errors"
	"regexp"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/filmoteka/catalog-api/internal/core/domain"
	"github.com/filmoteka/catalog-api/internal/core/ports"
)

// TokenCodec signs and verifies compact HS256 tokens with a single shared
// secret. Verification distinguishes expiry from any other defect so the
// transport layer can report them separately.
type TokenCodec struct {
	secret []byte
}

func NewTokenCodec(secret string) *TokenCodec {
	return &TokenCodec{secret: []byte(secret)}
}

type accessClaims struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Username      string `json:"username"`
	Role          string `json:"role"`
	EmailVerified bool   `json:"emailVerified"`
	jwt.RegisteredClaims
}

// SignAccess produces an access token embedding the full claims payload.
func (c *TokenCodec) SignAccess(claims ports.AccessClaims, ttl time.Duration) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims{
		ID:            claims.ID,
		Email:         claims.Email,
		Username:      claims.Username,
		Role:          claims.Role,
		EmailVerified: claims.EmailVerified,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return t.SignedString(c.secret)
}

// SignRefresh produces a minimal refresh token carrying only the subject id.
func (c *TokenCodec) SignRefresh(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})
	return t.SignedString(c.secret)
}

// VerifyAccess decodes an access token. It returns domain.ErrTokenExpired
// past expiry and domain.ErrTokenInvalid for any structural or signature
// defect.
func (c *TokenCodec) VerifyAccess(token string) (*ports.AccessClaims, error) {
	var claims accessClaims
	if err := c.verify(token, &claims); err != nil {
		return nil, err
	}
	return &ports.AccessClaims{
		ID:            claims.ID,
		Email:         claims.Email,
		Username:      claims.Username,
		Role:          claims.Role,
		EmailVerified: claims.EmailVerified,
	}, nil
}

// VerifyRefresh decodes a refresh token and returns its subject id.
func (c *TokenCodec) VerifyRefresh(token string) (string, error) {
	var claims jwt.RegisteredClaims
	if err := c.verify(token, &claims); err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", domain.ErrTokenInvalid
	}
	return claims.Subject, nil
}

func (c *TokenCodec) verify(token string, claims jwt.Claims) error {
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.ErrTokenExpired
		}
		return domain.ErrTokenInvalid
	}
	if !parsed.Valid {
		return domain.ErrTokenInvalid
	}
	return nil
}

var ttlPattern = regexp.MustCompile(`^(\d+)([smhd])$`)

const defaultTokenTTL = 3600 * time.Second

// ParseTokenTTL converts a TTL setting into a duration. It accepts a bare
// positive integer (seconds) or a suffixed form like "15m", "2h", "7d". An
// unrecognized or non-positive value falls back to 3600 seconds with a warning instead of
// failing; misconfiguration degrades token lifetime, it does not stop the
// service.
func ParseTokenTTL(value string, log zerolog.Logger) time.Duration {
	if n, err := strconv.Atoi(value); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}

	if m := ttlPattern.FindStringSubmatch(value); m != nil {
		n, _ := strconv.Atoi(m[1])
		switch m[2] {
		case "s":
			return time.Duration(n) * time.Second
		case "m":
			return time.Duration(n) * time.Minute
		case "h":
			return time.Duration(n) * time.Hour
		case "d":
			return time.Duration(n) * 24 * time.Hour
		}
	}

	log.Warn().Str("ttl", value).Msg("unknown token TTL format, falling back to 3600 seconds")
	return defaultTokenTTL
}
