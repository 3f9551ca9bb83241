package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/filmoteka/catalog-api/internal/api/middleware"
	"github.com/filmoteka/catalog-api/internal/core/ports"
)

// ctxClaims extracts the auth claims injected by the Auth middleware.
// A missing or empty claims value means the middleware did not run or the
// token carried no identity; either way the request is rejected with 401
// before any service call.
func ctxClaims(c echo.Context) (*ports.AccessClaims, error) {
	claims, _ := c.Get(middleware.ClaimsKey).(*ports.AccessClaims)
	if claims == nil || claims.ID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claims, nil
}
