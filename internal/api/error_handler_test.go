package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/baseapi/user-api/internal/core/domain"
	"github.com/baseapi/user-api/internal/core/token"
)

func renderError(t *testing.T, err error, env string) (int, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop(), env)(err, c)

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body %q: %v", rec.Body.String(), err)
	}
	return rec.Code, body
}

func TestErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		err     error
		code    int
		message string
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{domain.ErrAccountLocked, http.StatusLocked, "account locked"},
		{domain.ErrMissingCredential, http.StatusBadRequest, "missing credential"},
		{domain.ErrDuplicateEmail, http.StatusBadRequest, "email already in use"},
		{domain.ErrEmailImmutable, http.StatusBadRequest, "email cannot be changed"},
		{domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{domain.ErrRoleNotFound, http.StatusNotFound, "role not found"},
		{domain.ErrUnavailable, http.StatusServiceUnavailable, "store unavailable"},
		{token.ErrTokenExpired, http.StatusUnauthorized, "token expired"},
		{token.ErrTokenInvalidSignature, http.StatusUnauthorized, "invalid token"},
	}

	for _, tc := range cases {
		code, body := renderError(t, tc.err, "production")
		if code != tc.code {
			t.Fatalf("%v: expected status %d, got %d", tc.err, tc.code, code)
		}
		if body["message"] != tc.message {
			t.Fatalf("%v: expected message %q, got %v", tc.err, tc.message, body["message"])
		}
		if int(body["code"].(float64)) != tc.code {
			t.Fatalf("%v: envelope code mismatch: %v", tc.err, body["code"])
		}
	}
}

func TestErrorHandler_WrappedDomainError(t *testing.T) {
	wrapped := errors.Join(errors.New("login lookup"), domain.ErrUserNotFound)
	code, _ := renderError(t, wrapped, "production")
	if code != http.StatusNotFound {
		t.Fatalf("wrapped error lost its mapping, got %d", code)
	}
}

func TestErrorHandler_ValidationErrors(t *testing.T) {
	err := &domain.ValidationError{Fields: []string{"email is required", "password is required"}}
	code, body := renderError(t, err, "production")
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	fields, ok := body["errors"].([]any)
	if !ok || len(fields) != 2 {
		t.Fatalf("expected two per-field messages, got %v", body["errors"])
	}
}

func TestErrorHandler_WeakPassword(t *testing.T) {
	err := &domain.WeakPasswordError{Rule: "password must contain at least one digit"}
	code, body := renderError(t, err, "production")
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if body["message"] != "weak password" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestErrorHandler_EchoHTTPErrorPassthrough(t *testing.T) {
	code, body := renderError(t, echo.NewHTTPError(http.StatusMethodNotAllowed, "method not allowed"), "production")
	if code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", code)
	}
	if body["message"] != "method not allowed" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestErrorHandler_UnknownErrorHidesDetails(t *testing.T) {
	code, body := renderError(t, errors.New("pq: secret connection string"), "production")
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if body["message"] != "internal server error" {
		t.Fatalf("internal details leaked: %v", body["message"])
	}
	if _, ok := body["stack"]; ok {
		t.Fatalf("stack must not appear in production")
	}
}

func TestErrorHandler_StackOutsideProduction(t *testing.T) {
	_, body := renderError(t, errors.New("boom"), "development")
	stack, ok := body["stack"].(string)
	if !ok || stack == "" {
		t.Fatalf("expected stack trace outside production")
	}

	// 4xx responses stay clean even in development.
	_, body = renderError(t, domain.ErrUserNotFound, "development")
	if _, ok := body["stack"]; ok {
		t.Fatalf("stack must not appear on client errors")
	}
}
