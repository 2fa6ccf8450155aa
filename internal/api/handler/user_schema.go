package handler

import "time"

// --- Request types ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type governmentIDRequest struct {
	Type   string `json:"type"   validate:"required,oneof=cuil cuit dni lc le pas"`
	Number string `json:"number" validate:"required"`
}

type createUserRequest struct {
	Email        string               `json:"email"      validate:"required,email"`
	Password     string               `json:"password"   validate:"required"`
	Role         string               `json:"role"       validate:"required"`
	FirstName    string               `json:"first_name" validate:"required"`
	LastName     string               `json:"last_name"  validate:"required"`
	Phone        string               `json:"phone"`
	GovernmentID *governmentIDRequest `json:"government_id"`
	BornDate     *time.Time           `json:"born_date"`
}

// updateUserRequest is a full replace. Email may be echoed back but never
// changed; role and password are optional (empty keeps current values).
type updateUserRequest struct {
	Email        string               `json:"email"      validate:"omitempty,email"`
	Password     string               `json:"password"`
	Role         string               `json:"role"`
	FirstName    string               `json:"first_name" validate:"required"`
	LastName     string               `json:"last_name"  validate:"required"`
	Phone        string               `json:"phone"`
	GovernmentID *governmentIDRequest `json:"government_id"`
	BornDate     *time.Time           `json:"born_date"`
	Active       *bool                `json:"active"`
}

// patchUserRequest merges only the fields present in the body.
type patchUserRequest struct {
	Email        *string              `json:"email" validate:"omitempty,email"`
	Password     *string              `json:"password"`
	Role         *string              `json:"role"`
	FirstName    *string              `json:"first_name"`
	LastName     *string              `json:"last_name"`
	Phone        *string              `json:"phone"`
	GovernmentID *governmentIDRequest `json:"government_id"`
	BornDate     *time.Time           `json:"born_date"`
	Active       *bool                `json:"active"`
}

// --- Response types ---
// Response-only types owned by the transport layer, intentionally separate
// from domain types so the JSON contract is not coupled to internal changes.
// No response type ever carries the password hash.

type roleResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type governmentIDResponse struct {
	Type   string `json:"type"`
	Number string `json:"number"`
}

type userResponse struct {
	ID           string                `json:"id"`
	Email        string                `json:"email"`
	Role         *roleResponse         `json:"role,omitempty"`
	FirstName    string                `json:"first_name"`
	LastName     string                `json:"last_name"`
	Phone        string                `json:"phone,omitempty"`
	GovernmentID *governmentIDResponse `json:"government_id,omitempty"`
	BornDate     *time.Time            `json:"born_date,omitempty"`
	Active       bool                  `json:"active"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// userSummary is the compact shape embedded in the login response.
type userSummary struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  userSummary `json:"user"`
}

type auditEventResponse struct {
	Kind      string    `json:"kind"`
	Subject   string    `json:"subject,omitempty"`
	Email     string    `json:"email,omitempty"`
	RemoteIP  string    `json:"remote_ip,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
