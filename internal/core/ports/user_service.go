package ports

import (
	"context"
	"time"

	"github.com/baseapi/user-api/internal/core/domain"
	"github.com/baseapi/user-api/internal/core/token"
)

// CreateUserInput carries the fields accepted on user creation. Role is the
// role name, resolved against the store before the user is written.
type CreateUserInput struct {
	Email        string
	Password     string
	Role         string
	FirstName    string
	LastName     string
	Phone        string
	GovernmentID *domain.GovernmentID
	BornDate     *time.Time
}

// UpdateUserInput is a full replace. A submitted Email must match the stored
// one; email is immutable after creation. An empty Password keeps the
// stored hash. Active can only be changed by admins.
type UpdateUserInput struct {
	Email        string
	Password     string
	Role         string
	FirstName    string
	LastName     string
	Phone        string
	GovernmentID *domain.GovernmentID
	BornDate     *time.Time
	Active       *bool
}

// PatchUserInput merges only the provided fields into the stored user.
type PatchUserInput struct {
	Email        *string
	Password     *string
	Role         *string
	FirstName    *string
	LastName     *string
	Phone        *string
	GovernmentID *domain.GovernmentID
	BornDate     *time.Time
	Active       *bool
}

// UserService implements user CRUD. Mutating operations take the caller's
// verified claims explicitly and enforce the admin-or-self ownership rule.
type UserService interface {
	List(ctx context.Context, claims *token.Claims, includeInactive bool) ([]domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, claims *token.Claims, id string, input UpdateUserInput) (*domain.User, error)
	Patch(ctx context.Context, claims *token.Claims, id string, input PatchUserInput) (*domain.User, error)
	Delete(ctx context.Context, claims *token.Claims, id string) error
}
