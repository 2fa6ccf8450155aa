package ports

import "context"

// LoginThrottle counts failed login attempts per email inside a sliding
// window. It is advisory: implementations that cannot reach their backing
// store fail open rather than blocking logins.
type LoginThrottle interface {
	TooManyFailures(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}
