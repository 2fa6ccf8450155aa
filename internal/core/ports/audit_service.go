package ports

import (
	"context"

	"github.com/baseapi/user-api/internal/core/domain"
)

// AuditRecorder accepts an audit event for asynchronous persistence.
// Implementations must never block the caller beyond queueing.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}

// AuditService processes queued audit events and serves the admin-facing
// listing of recent events.
type AuditService interface {
	Process(ctx context.Context, event domain.AuditEvent) error
	Recent(ctx context.Context, limit int64) ([]domain.AuditEvent, error)
}
