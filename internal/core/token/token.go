// Package token issues and verifies the signed claim sets used as bearer
// credentials. Two signing modes exist behind the same Signer interface:
// HS256 with a symmetric secret and RS256 with a PEM keypair.
package token

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenMalformed        = errors.New("malformed token")
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenInvalidSignature = errors.New("invalid token signature")
	ErrMalformedClaims       = errors.New("malformed token claims")
)

// Claims is the decoded, verified content of a token. The role name is a
// snapshot taken at issuance time, not live-joined against the store.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}

// UserID returns the subject (owning user) of the claim set.
func (c *Claims) UserID() string {
	if c == nil {
		return ""
	}
	return c.Subject
}

// HasRole reports whether the claim set carries the given role. Safe to
// call on a nil receiver: an unauthenticated request has no roles.
func (c *Claims) HasRole(name string) bool {
	return c != nil && c.Role == name
}

// Issuer produces a signed, time-bound claim set for an authenticated user.
type Issuer interface {
	Issue(userID, roleName string) (string, error)
}

// Verifier decodes a presented token and validates signature, issuer and
// expiry before the claims are inspected.
type Verifier interface {
	Verify(token string) (*Claims, error)
}

// Signer is the full issue/verify pair sharing one signing configuration.
type Signer interface {
	Issuer
	Verifier
}
