package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/baseapi/user-api/internal/api/metrics"
	"github.com/baseapi/user-api/internal/core/domain"
	"github.com/baseapi/user-api/internal/core/ports"
	"github.com/baseapi/user-api/internal/core/token"
)

const bcryptCost = 10

// UserService implements user CRUD on top of the user and role repositories.
// Password hashing happens here, explicitly, at the write boundary.
type UserService struct {
	users ports.UserRepository
	roles ports.RoleRepository
	audit ports.AuditRecorder
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, roles ports.RoleRepository, audit ports.AuditRecorder, log zerolog.Logger) *UserService {
	return &UserService{users: users, roles: roles, audit: audit, log: log}
}

// List returns users with their role populated. Inactive users are only
// included when the caller is an admin and asked for them.
func (s *UserService) List(ctx context.Context, claims *token.Claims, includeInactive bool) ([]domain.User, error) {
	if includeInactive && !claims.HasRole(domain.RoleAdmin) {
		return nil, domain.ErrForbidden
	}

	users, err := s.users.List(ctx, !includeInactive)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	// Resolve each distinct role once.
	byID := make(map[string]*domain.Role)
	for i := range users {
		role, ok := byID[users[i].RoleID]
		if !ok {
			role, err = s.roles.FindByID(ctx, users[i].RoleID)
			if err != nil {
				return nil, fmt.Errorf("list users: resolve role: %w", err)
			}
			byID[users[i].RoleID] = role
		}
		users[i].Role = role
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	role, err := s.roles.FindByID(ctx, user.RoleID)
	if err != nil {
		return nil, fmt.Errorf("get user: resolve role: %w", err)
	}
	user.Role = role
	return user, nil
}

// Create validates the role reference and the password policy, hashes the
// password, and writes the user. A duplicate email is rejected by the store's
// unique index and surfaces as ErrDuplicateEmail.
func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	role, err := s.roles.FindByName(ctx, strings.ToLower(input.Role))
	if err != nil {
		return nil, err
	}

	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        normalizeEmail(input.Email),
		PasswordHash: string(hash),
		RoleID:       role.ID,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Phone:        strings.TrimSpace(input.Phone),
		GovernmentID: input.GovernmentID,
		BornDate:     input.BornDate,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	created.Role = role

	metrics.UsersCreatedTotal.WithLabelValues(role.Name).Inc()
	s.log.Info().Str("user_id", created.ID).Str("role", role.Name).Msg("user created")
	return created, nil
}

// Update is a full replace of the mutable fields. Email is immutable; the
// caller must be an admin or the subject themself.
func (s *UserService) Update(ctx context.Context, claims *token.Claims, id string, input ports.UpdateUserInput) (*domain.User, error) {
	if err := s.authorizeOwner(claims, id); err != nil {
		return nil, err
	}

	existing, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Email != "" && normalizeEmail(input.Email) != existing.Email {
		return nil, domain.ErrEmailImmutable
	}

	role, err := s.resolveRole(ctx, existing, input.Role)
	if err != nil {
		return nil, err
	}
	existing.RoleID = role.ID

	if input.Password != "" {
		if err := s.rehash(existing, input.Password); err != nil {
			return nil, err
		}
	}

	existing.FirstName = strings.TrimSpace(input.FirstName)
	existing.LastName = strings.TrimSpace(input.LastName)
	existing.Phone = strings.TrimSpace(input.Phone)
	existing.GovernmentID = input.GovernmentID
	existing.BornDate = input.BornDate
	if input.Active != nil {
		// Only admins flip the active flag. Otherwise a deactivated user
		// holding a still-valid token could reactivate their own account.
		if !claims.HasRole(domain.RoleAdmin) {
			return nil, domain.ErrForbidden
		}
		existing.Active = *input.Active
	}
	existing.UpdatedAt = time.Now().UTC()

	updated, err := s.users.Update(ctx, existing)
	if err != nil {
		return nil, err
	}
	updated.Role = role
	return updated, nil
}

// Patch merges only the provided fields, under the same ownership rule as
// Update.
func (s *UserService) Patch(ctx context.Context, claims *token.Claims, id string, input ports.PatchUserInput) (*domain.User, error) {
	if err := s.authorizeOwner(claims, id); err != nil {
		return nil, err
	}

	existing, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Email != nil && normalizeEmail(*input.Email) != existing.Email {
		return nil, domain.ErrEmailImmutable
	}

	roleName := ""
	if input.Role != nil {
		roleName = *input.Role
	}
	role, err := s.resolveRole(ctx, existing, roleName)
	if err != nil {
		return nil, err
	}
	existing.RoleID = role.ID

	if input.Password != nil {
		if err := s.rehash(existing, *input.Password); err != nil {
			return nil, err
		}
	}
	if input.FirstName != nil {
		existing.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		existing.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Phone != nil {
		existing.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.GovernmentID != nil {
		existing.GovernmentID = input.GovernmentID
	}
	if input.BornDate != nil {
		existing.BornDate = input.BornDate
	}
	if input.Active != nil {
		if !claims.HasRole(domain.RoleAdmin) {
			return nil, domain.ErrForbidden
		}
		existing.Active = *input.Active
	}
	existing.UpdatedAt = time.Now().UTC()

	updated, err := s.users.Update(ctx, existing)
	if err != nil {
		return nil, err
	}
	updated.Role = role
	return updated, nil
}

// Delete deactivates the user rather than removing the record, so the
// account shows up as locked instead of silently vanishing.
func (s *UserService) Delete(ctx context.Context, claims *token.Claims, id string) error {
	if err := s.authorizeOwner(claims, id); err != nil {
		return err
	}

	if err := s.users.SetActive(ctx, id, false); err != nil {
		return err
	}

	metrics.UsersDeletedTotal.Inc()
	if s.audit != nil {
		s.audit.Record(domain.AuditEvent{
			Kind:      domain.AuditUserDeleted,
			Subject:   id,
			Detail:    "deactivated by " + claims.UserID(),
			CreatedAt: time.Now().UTC(),
		})
	}
	s.log.Info().Str("user_id", id).Str("by", claims.UserID()).Msg("user deactivated")
	return nil
}

// authorizeOwner enforces the admin-or-self rule shared by update, patch
// and delete.
func (s *UserService) authorizeOwner(claims *token.Claims, id string) error {
	if claims.HasRole(domain.RoleAdmin) || claims.UserID() == id {
		return nil
	}
	return domain.ErrForbidden
}

// resolveRole returns the role the user should end up with: the named role
// when one was submitted, otherwise the user's current role.
func (s *UserService) resolveRole(ctx context.Context, existing *domain.User, name string) (*domain.Role, error) {
	if name == "" {
		return s.roles.FindByID(ctx, existing.RoleID)
	}
	return s.roles.FindByName(ctx, strings.ToLower(name))
}

func (s *UserService) rehash(user *domain.User, password string) error {
	if err := domain.ValidatePassword(password); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
