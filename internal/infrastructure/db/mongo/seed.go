package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/baseapi/user-api/internal/core/domain"
)

// seedPassword is only ever written hashed, and only into empty databases
// behind the SEED_DEFAULTS flag. Change it after first login.
const seedPassword = "Passw0rd!"

type seedRole struct {
	name        string
	description string
	perms       domain.Permissions
}

var defaultRoles = []seedRole{
	{domain.RoleAdmin, "Administrator with full access", domain.Permissions{Read: true, Write: true, Update: true, Delete: true}},
	{domain.RoleClient, "Regular client with limited access", domain.Permissions{Read: true}},
	{domain.RoleModerator, "Moderator with update access", domain.Permissions{Read: true, Update: true}},
	{domain.RoleEditor, "Editor with write access", domain.Permissions{Read: true, Write: true, Update: true}},
	{domain.RoleGuest, "Guest user with read-only access", domain.Permissions{Read: true}},
}

// Seed creates the default roles and two bootstrap users when they do not
// exist yet. Idempotent: rerunning against a seeded database is a no-op.
func Seed(ctx context.Context, db *mongo.Database, log zerolog.Logger) error {
	roles := NewRoleRepository(db)
	users := NewUserRepository(db)

	roleIDs := make(map[string]string, len(defaultRoles))
	for _, sr := range defaultRoles {
		role, err := roles.FindByName(ctx, sr.name)
		if errors.Is(err, domain.ErrRoleNotFound) {
			now := time.Now().UTC()
			role, err = roles.Create(ctx, &domain.Role{
				Name:        sr.name,
				Description: sr.description,
				Permissions: sr.perms,
				Active:      true,
				CreatedAt:   now,
				UpdatedAt:   now,
			})
			if err == nil {
				log.Info().Str("role", sr.name).Msg("seeded role")
			}
		}
		if err != nil {
			return fmt.Errorf("seed role %s: %w", sr.name, err)
		}
		roleIDs[sr.name] = role.ID
	}

	seedUsers := []struct {
		email, first, last, role string
	}{
		{"admin@baseapi.local", "Admin", "BaseAPI", domain.RoleAdmin},
		{"client@baseapi.local", "Client", "BaseAPI", domain.RoleClient},
	}

	for _, su := range seedUsers {
		_, err := users.FindByEmail(ctx, su.email)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrUserNotFound) {
			return fmt.Errorf("seed user %s: %w", su.email, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", su.email, err)
		}
		now := time.Now().UTC()
		if _, err := users.Create(ctx, &domain.User{
			Email:        su.email,
			PasswordHash: string(hash),
			RoleID:       roleIDs[su.role],
			FirstName:    su.first,
			LastName:     su.last,
			Active:       true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}); err != nil {
			return fmt.Errorf("seed user %s: %w", su.email, err)
		}
		log.Info().Str("email", su.email).Str("role", su.role).Msg("seeded user")
	}
	return nil
}
