package domain

import "time"

// GovernmentIDTypes lists the accepted government identification kinds.
var GovernmentIDTypes = []string{"cuil", "cuit", "dni", "lc", "le", "pas"}

// GovernmentID is an optional official identification attached to a user.
type GovernmentID struct {
	Type   string `json:"type,omitempty"`
	Number string `json:"number,omitempty"`
}

// User models an account in the system. PasswordHash is never serialized.
type User struct {
	ID           string        `json:"id"`
	Email        string        `json:"email"`
	PasswordHash string        `json:"-"`
	RoleID       string        `json:"-"`
	Role         *Role         `json:"role,omitempty"`
	FirstName    string        `json:"first_name"`
	LastName     string        `json:"last_name"`
	Phone        string        `json:"phone,omitempty"`
	GovernmentID *GovernmentID `json:"government_id,omitempty"`
	BornDate     *time.Time    `json:"born_date,omitempty"`
	Active       bool          `json:"active"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// RoleName returns the populated role name, or "" when the role
// reference has not been resolved.
func (u *User) RoleName() string {
	if u == nil || u.Role == nil {
		return ""
	}
	return u.Role.Name
}
