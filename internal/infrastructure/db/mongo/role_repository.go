package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/baseapi/user-api/internal/core/domain"
)

const rolesCollection = "roles"

// RoleRepository is the MongoDB implementation of ports.RoleRepository.
type RoleRepository struct {
	coll *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{coll: db.Collection(rolesCollection)}
}

type mongoRole struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	Permissions struct {
		Read   bool `bson:"read"`
		Write  bool `bson:"write"`
		Update bool `bson:"update"`
		Delete bool `bson:"delete"`
	} `bson:"permissions"`
	Active    bool      `bson:"active"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (r *RoleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var mr mongoRole
	if err := r.coll.FindOne(opCtx, bson.M{"name": name}).Decode(&mr); err != nil {
		return nil, mapRoleErr(err, "find role by name")
	}
	return toDomainRole(&mr), nil
}

func (r *RoleRepository) FindByID(ctx context.Context, id string) (*domain.Role, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrRoleNotFound
	}

	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var mr mongoRole
	if err := r.coll.FindOne(opCtx, bson.M{"_id": oid}).Decode(&mr); err != nil {
		return nil, mapRoleErr(err, "find role by id")
	}
	return toDomainRole(&mr), nil
}

func (r *RoleRepository) Create(ctx context.Context, role *domain.Role) (*domain.Role, error) {
	doc := mongoRole{
		Name:        role.Name,
		Description: role.Description,
		Active:      role.Active,
		CreatedAt:   role.CreatedAt,
		UpdatedAt:   role.UpdatedAt,
	}
	doc.Permissions.Read = role.Permissions.Read
	doc.Permissions.Write = role.Permissions.Write
	doc.Permissions.Update = role.Permissions.Update
	doc.Permissions.Delete = role.Permissions.Delete

	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(opCtx, doc)
	if err != nil {
		return nil, mapRoleErr(err, "insert role")
	}

	created := *role
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func toDomainRole(mr *mongoRole) *domain.Role {
	return &domain.Role{
		ID:          mr.ID.Hex(),
		Name:        mr.Name,
		Description: mr.Description,
		Permissions: domain.Permissions{
			Read:   mr.Permissions.Read,
			Write:  mr.Permissions.Write,
			Update: mr.Permissions.Update,
			Delete: mr.Permissions.Delete,
		},
		Active:    mr.Active,
		CreatedAt: mr.CreatedAt.UTC(),
		UpdatedAt: mr.UpdatedAt.UTC(),
	}
}

func mapRoleErr(err error, op string) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return domain.ErrRoleNotFound
	case errors.Is(err, context.DeadlineExceeded), mongo.IsTimeout(err), mongo.IsNetworkError(err):
		return fmt.Errorf("%s: %w", op, domain.ErrUnavailable)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
