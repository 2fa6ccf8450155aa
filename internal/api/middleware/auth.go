package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/baseapi/user-api/internal/core/domain"
	"github.com/baseapi/user-api/internal/core/ports"
	"github.com/baseapi/user-api/internal/core/token"
)

// claimsKey is the echo context key the verified claims are stored under.
const claimsKey = "auth_claims"

// Auth verifies the bearer token and injects the decoded claims into the
// request context. Expired tokens get a distinct response so clients can
// tell "log in again" apart from other auth failures. Signature and issuer
// failures are logged with the caller's address and recorded on the audit
// trail; that is an observability hook, not a security control.
func Auth(verifier token.Verifier, audit ports.AuditRecorder, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := verifier.Verify(parts[1])
			if err != nil {
				if errors.Is(err, token.ErrTokenExpired) {
					// Terminal: does not flow through the generic normalizer.
					return c.JSON(http.StatusUnauthorized, map[string]any{
						"code":    http.StatusUnauthorized,
						"message": "token expired",
					})
				}
				if errors.Is(err, token.ErrTokenInvalidSignature) {
					ip := remoteIP(c)
					log.Warn().Str("remote_ip", ip).Msg("suspicious token verification failure")
					if audit != nil {
						audit.Record(domain.AuditEvent{
							Kind:      domain.AuditSuspiciousToken,
							RemoteIP:  ip,
							Detail:    "invalid signature, algorithm or issuer",
							CreatedAt: time.Now().UTC(),
						})
					}
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// ClaimsFrom extracts the claims stored by Auth. Returns nil when the
// request was not authenticated, so role predicates stay false instead of
// failing.
func ClaimsFrom(c echo.Context) *token.Claims {
	claims, _ := c.Get(claimsKey).(*token.Claims)
	return claims
}

// SetClaims stores claims on the context. Exposed for handler tests.
func SetClaims(c echo.Context, claims *token.Claims) {
	c.Set(claimsKey, claims)
}

func remoteIP(c echo.Context) string {
	if fwd := c.Request().Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.SplitN(fwd, ",", 2)[0])
	}
	return c.Request().RemoteAddr
}
