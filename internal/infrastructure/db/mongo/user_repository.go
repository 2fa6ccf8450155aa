package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/baseapi/user-api/internal/core/domain"
)

const usersCollection = "users"

// UserRepository is the MongoDB implementation of ports.UserRepository.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

type mongoGovernmentID struct {
	Type   string `bson:"type"`
	Number string `bson:"number"`
}

type mongoUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	RoleID       primitive.ObjectID `bson:"role_id"`
	FirstName    string             `bson:"first_name"`
	LastName     string             `bson:"last_name"`
	Phone        string             `bson:"phone,omitempty"`
	GovernmentID *mongoGovernmentID `bson:"government_id,omitempty"`
	BornDate     *time.Time         `bson:"born_date,omitempty"`
	Active       bool               `bson:"active"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.coll.FindOne(opCtx, bson.M{"email": email}).Decode(&mu); err != nil {
		return nil, mapUserErr(err, "find user by email")
	}
	return toDomainUser(&mu), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.coll.FindOne(opCtx, bson.M{"_id": oid}).Decode(&mu); err != nil {
		return nil, mapUserErr(err, "find user by id")
	}
	return toDomainUser(&mu), nil
}

func (r *UserRepository) List(ctx context.Context, onlyActive bool) ([]domain.User, error) {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	filter := bson.M{}
	if onlyActive {
		filter["active"] = true
	}

	cursor, err := r.coll.Find(opCtx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, mapUserErr(err, "list users")
	}
	defer cursor.Close(opCtx)

	var users []domain.User
	for cursor.Next(opCtx) {
		var mu mongoUser
		if err := cursor.Decode(&mu); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, *toDomainUser(&mu))
	}
	if err := cursor.Err(); err != nil {
		return nil, mapUserErr(err, "list users")
	}
	return users, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	doc, err := toMongoUser(user)
	if err != nil {
		return nil, err
	}

	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(opCtx, doc)
	if err != nil {
		return nil, mapUserErr(err, "insert user")
	}

	created := *user
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	doc, err := toMongoUser(user)
	if err != nil {
		return nil, err
	}
	doc.ID = oid

	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(opCtx, bson.M{"_id": oid}, doc)
	if err != nil {
		return nil, mapUserErr(err, "update user")
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *UserRepository) SetActive(ctx context.Context, id string, active bool) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(opCtx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{"active": active, "updated_at": time.Now().UTC()},
	})
	if err != nil {
		return mapUserErr(err, "set user active")
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func toMongoUser(user *domain.User) (*mongoUser, error) {
	roleOID, err := primitive.ObjectIDFromHex(user.RoleID)
	if err != nil {
		return nil, domain.ErrRoleNotFound
	}

	doc := &mongoUser{
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		RoleID:       roleOID,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Phone:        user.Phone,
		BornDate:     user.BornDate,
		Active:       user.Active,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
	if user.GovernmentID != nil {
		doc.GovernmentID = &mongoGovernmentID{
			Type:   user.GovernmentID.Type,
			Number: user.GovernmentID.Number,
		}
	}
	return doc, nil
}

func toDomainUser(mu *mongoUser) *domain.User {
	user := &domain.User{
		ID:           mu.ID.Hex(),
		Email:        mu.Email,
		PasswordHash: mu.PasswordHash,
		RoleID:       mu.RoleID.Hex(),
		FirstName:    mu.FirstName,
		LastName:     mu.LastName,
		Phone:        mu.Phone,
		BornDate:     mu.BornDate,
		Active:       mu.Active,
		CreatedAt:    mu.CreatedAt.UTC(),
		UpdatedAt:    mu.UpdatedAt.UTC(),
	}
	if mu.GovernmentID != nil {
		user.GovernmentID = &domain.GovernmentID{
			Type:   mu.GovernmentID.Type,
			Number: mu.GovernmentID.Number,
		}
	}
	return user
}

// mapUserErr translates driver errors into the domain taxonomy: missing
// document, unique-index violation, and connectivity/timeout failures each
// have a deterministic meaning upstream.
func mapUserErr(err error, op string) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return domain.ErrUserNotFound
	case mongo.IsDuplicateKeyError(err):
		return domain.ErrDuplicateEmail
	case errors.Is(err, context.DeadlineExceeded), mongo.IsTimeout(err), mongo.IsNetworkError(err):
		return fmt.Errorf("%s: %w", op, domain.ErrUnavailable)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
