package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/baseapi/user-api/internal/api/middleware"
	"github.com/baseapi/user-api/internal/core/token"
)

// ctxClaims extracts the claims injected by the Auth middleware and performs
// a fast-fail check before any service call: a protected route reached
// without claims means the middleware chain is miswired, reject with 401.
func ctxClaims(c echo.Context) (*token.Claims, error) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil || claims.UserID() == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claims, nil
}

// remoteIP reports the caller's address for audit logging, preferring the
// first X-Forwarded-For hop.
func remoteIP(c echo.Context) string {
	if fwd := c.Request().Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.SplitN(fwd, ",", 2)[0])
	}
	return c.Request().RemoteAddr
}
