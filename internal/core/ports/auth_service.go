package ports

import (
	"context"

	"github.com/baseapi/user-api/internal/core/domain"
)

// AuthService authenticates credentials and issues tokens.
//
// Login distinguishes three outcomes: unknown email and wrong password both
// yield domain.ErrInvalidCredentials (logs tell them apart, clients cannot),
// an inactive account with the correct password yields domain.ErrAccountLocked,
// and success returns the signed token plus the user with role populated.
type AuthService interface {
	Login(ctx context.Context, email, password, remoteIP string) (string, *domain.User, error)
}
