package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/filmoteka/catalog-api/internal/api/metrics"
	"github.com/filmoteka/catalog-api/internal/core/ports"
)

// EmailVerified rejects accounts that have not confirmed their email address.
// It must run after Auth.
func EmailVerified() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, _ := c.Get(ClaimsKey).(*ports.AccessClaims)
			if claims == nil || !claims.EmailVerified {
				metrics.GateDenialsTotal.WithLabelValues("unverified").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "email not verified")
			}
			return next(c)
		}
	}
}
