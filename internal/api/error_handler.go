package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/filmoteka/catalog-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrContentNotFound),
		errors.Is(err, domain.ErrGenreNotFound),
		errors.Is(err, domain.ErrCommentNotFound),
		errors.Is(err, domain.ErrRatingNotFound),
		errors.Is(err, domain.ErrCommentRatingNotFound),
		errors.Is(err, domain.ErrPersonNotFound),
		errors.Is(err, domain.ErrPersonRoleNotFound),
		errors.Is(err, domain.ErrBookmarkNotFound):
		return http.StatusNotFound, err.Error()

	case errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrTelegramTaken),
		errors.Is(err, domain.ErrUserExists),
		errors.Is(err, domain.ErrEmailVerified),
		errors.Is(err, domain.ErrContentExists),
		errors.Is(err, domain.ErrGenreExists),
		errors.Is(err, domain.ErrPersonExists),
		errors.Is(err, domain.ErrPersonInUse),
		errors.Is(err, domain.ErrPersonRoleExists),
		errors.Is(err, domain.ErrCommentMismatch),
		errors.Is(err, domain.ErrBookmarkExists):
		return http.StatusConflict, err.Error()

	case errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrPasswordMismatch),
		errors.Is(err, domain.ErrInvalidCredential):
		return http.StatusUnauthorized, err.Error()

	case errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrEmailNotVerified):
		return http.StatusForbidden, err.Error()

	case errors.Is(err, domain.ErrVerifyToken),
		errors.Is(err, domain.ErrSamePassword):
		return http.StatusBadRequest, err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
