package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/filmoteka/catalog-api/internal/api/metrics"
	"github.com/filmoteka/catalog-api/internal/core/ports"
)

// RBAC enforces role-based access control. It must run after Auth; a request
// without claims is rejected, never crashed on.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, _ := c.Get(ClaimsKey).(*ports.AccessClaims)
			if claims == nil {
				metrics.GateDenialsTotal.WithLabelValues("role").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			if _, ok := allowed[claims.Role]; !ok {
				metrics.GateDenialsTotal.WithLabelValues("role").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
