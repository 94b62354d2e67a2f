package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/models"
)

type UserRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewUserRepository(database *mongo.Database) *UserRepository {
	return &UserRepository{
		coll: database.Collection(UsersCollection),
		now:  time.Now,
	}
}

// Create inserts u and fills its id and timestamps. A second account with the
// same email fails with ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	now := r.now().UTC().Truncate(time.Millisecond)
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: users.email", ErrDuplicate)
		}
		return fmt.Errorf("db: insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.coll.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db: find user: %w", err)
	}
	return &u, nil
}
