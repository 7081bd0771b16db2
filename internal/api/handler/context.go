package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/marketplace/commodity-api/internal/api/middleware"
	"github.com/marketplace/commodity-api/internal/core/domain"
)

// ctxPrincipal extracts the claims injected by the Auth middleware and
// fails fast before any service call:
//   - user id must be non-empty (presence proves the middleware ran).
//   - role must be a known role; otherwise the token is structurally valid
//     but operationally unusable, so reject with 401.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	id, _ := c.Get(middleware.CtxUserID).(string)
	if id == "" {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	role, _ := c.Get(middleware.CtxRole).(string)
	if !domain.Role(role).Valid() {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "token missing role")
	}

	username, _ := c.Get(middleware.CtxUsername).(string)
	return domain.Principal{ID: id, Username: username, Role: domain.Role(role)}, nil
}

func ctxToken(c echo.Context) (jti string, exp time.Time) {
	jti, _ = c.Get(middleware.CtxTokenID).(string)
	exp, _ = c.Get(middleware.CtxTokenExp).(time.Time)
	return jti, exp
}
