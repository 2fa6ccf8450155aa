package ports

import (
	"context"

	"github.com/baseapi/user-api/internal/core/domain"
)

// AuditRepository persists the append-only security audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
	Recent(ctx context.Context, limit int64) ([]domain.AuditEvent, error)
}
