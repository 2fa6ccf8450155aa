package domain

import (
	"errors"
	"strings"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrRoleNotFound       = errors.New("role not found")
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountLocked      = errors.New("account locked")
	ErrForbidden          = errors.New("access forbidden")
	ErrMissingCredential  = errors.New("missing credential")
	ErrEmailImmutable     = errors.New("email cannot be changed")
	ErrUnavailable        = errors.New("store unavailable")
)

// ValidationError carries per-field validation messages so the error
// handler can render them in the response "errors" list.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}

// WeakPasswordError identifies which password policy rule was violated.
type WeakPasswordError struct {
	Rule string
}

func (e *WeakPasswordError) Error() string {
	return "weak password: " + e.Rule
}
