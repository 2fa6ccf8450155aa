package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/baseapi/user-api/internal/core/domain"
	"github.com/baseapi/user-api/internal/core/token"
)

type recordingAudit struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (a *recordingAudit) Record(event domain.AuditEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, event)
}

func newAuthRequest(t *testing.T, header string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuth_ValidToken(t *testing.T) {
	signer := token.NewHS256Signer([]byte("secret"), "user-api", time.Hour)
	signed, err := signer.Issue("user-1", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	c, rec := newAuthRequest(t, "Bearer "+signed)

	called := false
	handler := Auth(signer, nil, zerolog.Nop())(func(c echo.Context) error {
		called = true
		claims := ClaimsFrom(c)
		if claims == nil {
			t.Fatalf("claims not injected")
		}
		if claims.UserID() != "user-1" || !claims.HasRole(domain.RoleAdmin) {
			t.Fatalf("unexpected claims: %+v", claims)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	signer := token.NewHS256Signer([]byte("secret"), "user-api", time.Hour)
	c, _ := newAuthRequest(t, "")

	handler := Auth(signer, nil, zerolog.Nop())(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	signer := token.NewHS256Signer([]byte("secret"), "user-api", time.Hour)

	for _, header := range []string{"Token abc", "Bearer", "Bearer "} {
		c, _ := newAuthRequest(t, header)
		handler := Auth(signer, nil, zerolog.Nop())(func(c echo.Context) error {
			t.Fatalf("should not reach next for header %q", header)
			return nil
		})

		err := handler(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401 HTTPError, got %v", header, err)
		}
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	signer := token.NewHS256Signer([]byte("secret"), "user-api", -time.Minute)
	signed, err := signer.Issue("user-1", domain.RoleClient)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	verifier := token.NewHS256Signer([]byte("secret"), "user-api", time.Hour)
	c, rec := newAuthRequest(t, "Bearer "+signed)

	handler := Auth(verifier, nil, zerolog.Nop())(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("expired token should be answered inline, got error %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body["message"] != "token expired" {
		t.Fatalf("expected expiry message, got %v", body["message"])
	}
}

func TestAuth_WrongSignatureRecordsAudit(t *testing.T) {
	verifier := token.NewHS256Signer([]byte("secret"), "user-api", time.Hour)
	forger := token.NewHS256Signer([]byte("forged-secret"), "user-api", time.Hour)
	signed, err := forger.Issue("user-1", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	audit := &recordingAudit{}
	c, _ := newAuthRequest(t, "Bearer "+signed)
	c.Request().Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")

	handler := Auth(verifier, audit, zerolog.Nop())(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err = handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}

	if len(audit.events) != 1 {
		t.Fatalf("expected one audit event, got %d", len(audit.events))
	}
	event := audit.events[0]
	if event.Kind != domain.AuditSuspiciousToken {
		t.Fatalf("unexpected audit kind: %s", event.Kind)
	}
	if event.RemoteIP != "203.0.113.9" {
		t.Fatalf("expected first forwarded hop, got %q", event.RemoteIP)
	}
}

func TestAuth_GarbageToken(t *testing.T) {
	signer := token.NewHS256Signer([]byte("secret"), "user-api", time.Hour)
	audit := &recordingAudit{}
	c, _ := newAuthRequest(t, "Bearer not.a.token")

	handler := Auth(signer, audit, zerolog.Nop())(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
	// Malformed garbage is noise, not a forgery attempt.
	if len(audit.events) != 0 {
		t.Fatalf("garbage token should not be audited, got %d events", len(audit.events))
	}
}
