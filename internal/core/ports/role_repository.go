package ports

import (
	"context"

	"github.com/baseapi/user-api/internal/core/domain"
)

// RoleRepository resolves role records. Missing roles are reported as
// domain.ErrRoleNotFound.
type RoleRepository interface {
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	FindByID(ctx context.Context, id string) (*domain.Role, error)
	Create(ctx context.Context, role *domain.Role) (*domain.Role, error)
}
