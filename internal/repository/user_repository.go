package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"eventhub-be/internal/database"
	"eventhub-be/internal/entities"
)

// UserRepository defines the interface for user store operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	UpdateProvider(ctx context.Context, email, provider string, updatedAt time.Time) error
}

type userRepository struct {
	coll *mongo.Collection
}

// NewUserRepository creates a user repository over the users collection
func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{coll: db.Collection(database.UsersCollection)}
}

// Create inserts user and sets its ID from the store
func (r *userRepository) Create(ctx context.Context, user *entities.User) error {
	result, err := r.coll.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return nil
}

// FindByEmail finds a user by exact email match
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

// UpdateProvider records the third-party provider for the user with email
func (r *userRepository) UpdateProvider(ctx context.Context, email, provider string, updatedAt time.Time) error {
	result, err := r.coll.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"provider": provider, "updatedAt": updatedAt}},
	)
	if err != nil {
		return fmt.Errorf("failed to update user provider: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
