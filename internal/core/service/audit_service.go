package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/baseapi/user-api/internal/api/metrics"
	"github.com/baseapi/user-api/internal/core/domain"
	"github.com/baseapi/user-api/internal/core/ports"
)

const auditDefaultLimit = 100

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService implementation backed by the
// audit repository.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Process persists a single audit event. Called from dispatcher workers,
// never from a request goroutine.
func (s *auditService) Process(ctx context.Context, event domain.AuditEvent) error {
	if err := s.repo.Insert(ctx, &event); err != nil {
		return fmt.Errorf("process audit event: %w", err)
	}

	metrics.AuditEventsTotal.WithLabelValues(string(event.Kind)).Inc()
	s.log.Debug().
		Str("kind", string(event.Kind)).
		Str("subject", event.Subject).
		Msg("audit event recorded")
	return nil
}

func (s *auditService) Recent(ctx context.Context, limit int64) ([]domain.AuditEvent, error) {
	if limit <= 0 {
		limit = auditDefaultLimit
	}
	events, err := s.repo.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("recent audit events: %w", err)
	}
	return events, nil
}
