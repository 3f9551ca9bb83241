package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/filmoteka/catalog-api/internal/core/domain"
)

func TestHTTPErrorHandler_DomainMappings(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrContentNotFound, http.StatusNotFound},
		{domain.ErrPersonNotFound, http.StatusNotFound},
		{domain.ErrPersonRoleNotFound, http.StatusNotFound},
		{domain.ErrCommentRatingNotFound, http.StatusNotFound},
		{domain.ErrEmailTaken, http.StatusConflict},
		{domain.ErrBookmarkExists, http.StatusConflict},
		{domain.ErrEmailVerified, http.StatusConflict},
		{domain.ErrPersonExists, http.StatusConflict},
		{domain.ErrPersonInUse, http.StatusConflict},
		{domain.ErrPersonRoleExists, http.StatusConflict},
		// a reply that targets a comment of a different content entry is a
		// state conflict, not a malformed request
		{domain.ErrCommentMismatch, http.StatusConflict},
		{domain.ErrTokenExpired, http.StatusUnauthorized},
		{domain.ErrTokenInvalid, http.StatusUnauthorized},
		{domain.ErrPasswordMismatch, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrEmailNotVerified, http.StatusForbidden},
		{domain.ErrVerifyToken, http.StatusBadRequest},
		{domain.ErrSamePassword, http.StatusBadRequest},
		{errors.New("database exploded"), http.StatusInternalServerError},
	}

	handler := NewHTTPErrorHandler(zerolog.Nop())
	e := echo.New()

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler(tc.err, c)

		if rec.Code != tc.code {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}
	}
}

func TestHTTPErrorHandler_InternalErrorIsOpaque(t *testing.T) {
	handler := NewHTTPErrorHandler(zerolog.Nop())
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler(errors.New("password hash column corrupt"), c)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != `{"error":"internal server error"}`+"\n" {
		t.Fatalf("internal detail leaked: %s", body)
	}
}

func TestHTTPErrorHandler_EchoErrorPassthrough(t *testing.T) {
	handler := NewHTTPErrorHandler(zerolog.Nop())
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler(echo.NewHTTPError(http.StatusTeapot, "short and stout"), c)

	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected 418, got %d", rec.Code)
	}
}
