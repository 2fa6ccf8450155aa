package ports

import (
	"context"

	"github.com/baseapi/user-api/internal/core/domain"
)

// UserRepository is the persistence boundary for user records. Lookups that
// feed authentication include the password hash; uniqueness violations are
// surfaced as domain.ErrDuplicateEmail and store connectivity failures as
// domain.ErrUnavailable.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, onlyActive bool) ([]domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	SetActive(ctx context.Context, id string, active bool) error
}
