package api

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/baseapi/user-api/internal/core/domain"
	"github.com/baseapi/user-api/internal/core/token"
)

// errorResponse is the canonical error envelope for all API errors.
// Stack is populated outside production only.
type errorResponse struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
	Stack   string   `json:"stack,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain and token errors to their HTTP status codes.
//   - Carries per-field messages for validation failures.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger, env string) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		resp := resolveError(err, log, c)
		if env != "production" && resp.Code >= http.StatusInternalServerError {
			resp.Stack = string(debug.Stack())
		}
		_ = c.JSON(resp.Code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) errorResponse {
	// Echo's own errors (bind failures, 404/405 from the router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return errorResponse{Code: he.Code, Message: fmt.Sprintf("%v", he.Message)}
	}

	// Validation failures carry the per-field messages.
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return errorResponse{Code: http.StatusBadRequest, Message: "validation failed", Errors: ve.Fields}
	}
	var wpe *domain.WeakPasswordError
	if errors.As(err, &wpe) {
		return errorResponse{Code: http.StatusBadRequest, Message: "weak password", Errors: []string{wpe.Rule}}
	}

	// Known domain and token errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrDuplicateEmail):
		return errorResponse{Code: http.StatusBadRequest, Message: "email already in use"}
	case errors.Is(err, domain.ErrEmailImmutable):
		return errorResponse{Code: http.StatusBadRequest, Message: "email cannot be changed"}
	case errors.Is(err, domain.ErrMissingCredential):
		return errorResponse{Code: http.StatusBadRequest, Message: "missing credential"}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return errorResponse{Code: http.StatusUnauthorized, Message: "invalid credentials"}
	case errors.Is(err, token.ErrTokenExpired):
		return errorResponse{Code: http.StatusUnauthorized, Message: "token expired"}
	case errors.Is(err, token.ErrTokenMalformed),
		errors.Is(err, token.ErrTokenInvalidSignature),
		errors.Is(err, token.ErrMalformedClaims):
		return errorResponse{Code: http.StatusUnauthorized, Message: "invalid token"}
	case errors.Is(err, domain.ErrForbidden):
		return errorResponse{Code: http.StatusForbidden, Message: "access forbidden"}
	case errors.Is(err, domain.ErrAccountLocked):
		return errorResponse{Code: http.StatusLocked, Message: "account locked"}
	case errors.Is(err, domain.ErrUserNotFound):
		return errorResponse{Code: http.StatusNotFound, Message: "user not found"}
	case errors.Is(err, domain.ErrRoleNotFound):
		return errorResponse{Code: http.StatusNotFound, Message: "role not found"}
	case errors.Is(err, domain.ErrUnavailable):
		return errorResponse{Code: http.StatusServiceUnavailable, Message: "store unavailable"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return errorResponse{Code: http.StatusInternalServerError, Message: "internal server error"}
}
