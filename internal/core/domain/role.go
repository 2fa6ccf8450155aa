package domain

import "time"

// Built-in role names. The set is open: new roles can be created in the
// store, but these are the ones seeded by default and used in access checks.
const (
	RoleAdmin     = "admin"
	RoleClient    = "client"
	RoleModerator = "moderator"
	RoleEditor    = "editor"
	RoleGuest     = "guest"
)

// Permissions are coarse capability flags attached to a role.
type Permissions struct {
	Read   bool `json:"read"`
	Write  bool `json:"write"`
	Update bool `json:"update"`
	Delete bool `json:"delete"`
}

// Role is a named capability bucket users are assigned to.
// Every user references exactly one role.
type Role struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Permissions Permissions `json:"permissions"`
	Active      bool        `json:"active"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
