package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marketplace/commodity-api/internal/core/domain"
)

// RBAC admits only principals whose role is one of allowedRoles. It runs
// after Auth; a token carrying an unknown role is refused here.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if _, ok := allowed[domain.Role(role)]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
