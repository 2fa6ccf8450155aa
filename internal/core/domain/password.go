package domain

import "strings"

const (
	passwordMinLength = 6
	passwordMaxLength = 16

	// passwordSymbols is the fixed special-character set a password must
	// draw at least one symbol from.
	passwordSymbols = "@$!%*?&"
)

// ValidatePassword enforces the write-time password acceptance policy.
// It returns a *WeakPasswordError naming the first rule that failed,
// or nil when the password is acceptable.
func ValidatePassword(password string) error {
	if len(password) < passwordMinLength || len(password) > passwordMaxLength {
		return &WeakPasswordError{Rule: "password must be between 6 and 16 characters"}
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}

	switch {
	case !hasUpper:
		return &WeakPasswordError{Rule: "password must contain at least one uppercase letter"}
	case !hasLower:
		return &WeakPasswordError{Rule: "password must contain at least one lowercase letter"}
	case !hasDigit:
		return &WeakPasswordError{Rule: "password must contain at least one digit"}
	case !hasSymbol:
		return &WeakPasswordError{Rule: "password must contain at least one of " + passwordSymbols}
	}
	return nil
}
