package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/baseapi/user-api/internal/core/domain"
)

const auditCollection = "audit_events"

// AuditRepository is the MongoDB implementation of ports.AuditRepository.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuditEvent struct {
	Kind      string    `bson:"kind"`
	Subject   string    `bson:"subject,omitempty"`
	Email     string    `bson:"email,omitempty"`
	RemoteIP  string    `bson:"remote_ip,omitempty"`
	Detail    string    `bson:"detail,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
}

func (r *AuditRepository) Insert(ctx context.Context, event *domain.AuditEvent) error {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := r.coll.InsertOne(opCtx, mongoAuditEvent{
		Kind:      string(event.Kind),
		Subject:   event.Subject,
		Email:     event.Email,
		RemoteIP:  event.RemoteIP,
		Detail:    event.Detail,
		CreatedAt: event.CreatedAt,
	})
	if err != nil {
		return mapAuditErr(err, "insert audit event")
	}
	return nil
}

func (r *AuditRepository) Recent(ctx context.Context, limit int64) ([]domain.AuditEvent, error) {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cursor, err := r.coll.Find(opCtx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit))
	if err != nil {
		return nil, mapAuditErr(err, "list audit events")
	}
	defer cursor.Close(opCtx)

	var events []domain.AuditEvent
	for cursor.Next(opCtx) {
		var me mongoAuditEvent
		if err := cursor.Decode(&me); err != nil {
			return nil, fmt.Errorf("decode audit event: %w", err)
		}
		events = append(events, domain.AuditEvent{
			Kind:      domain.AuditKind(me.Kind),
			Subject:   me.Subject,
			Email:     me.Email,
			RemoteIP:  me.RemoteIP,
			Detail:    me.Detail,
			CreatedAt: me.CreatedAt.UTC(),
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, mapAuditErr(err, "list audit events")
	}
	return events, nil
}

func mapAuditErr(err error, op string) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded), mongo.IsTimeout(err), mongo.IsNetworkError(err):
		return fmt.Errorf("%s: %w", op, domain.ErrUnavailable)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
