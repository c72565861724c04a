package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/veloralabs/storefront_api/internal/database"
	"github.com/veloralabs/storefront_api/internal/models"
)

// UserRepository handles data access for user credential records.
type UserRepository struct {
	db *database.Mongo
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *database.Mongo) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. Returns ErrDuplicate when the email is
// already registered — the unique index is the safety net for
// concurrent signups.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return insertOne(ctx, r.db.Collection(database.ColUsers), user)
}

// GetByEmail returns the user with the given email, or ErrNotFound.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return findOne[models.User](ctx, r.db.Collection(database.ColUsers), bson.D{{Key: "email", Value: email}})
}

// GetByID returns the user with the given id, or ErrNotFound.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return findOne[models.User](ctx, r.db.Collection(database.ColUsers), bson.D{{Key: "_id", Value: id}})
}

// UpdateProfile updates the editable profile fields.
func (r *UserRepository) UpdateProfile(ctx context.Context, id, fullName, phone, avatarURL string) error {
	return updateByID(ctx, r.db.Collection(database.ColUsers), id, bson.D{
		{Key: "full_name", Value: fullName},
		{Key: "phone", Value: phone},
		{Key: "avatar_url", Value: avatarURL},
		{Key: "updated_at", Value: time.Now()},
	})
}

// SetActive toggles the account active flag.
func (r *UserRepository) SetActive(ctx context.Context, id string, active bool) error {
	return updateByID(ctx, r.db.Collection(database.ColUsers), id, bson.D{
		{Key: "is_active", Value: active},
		{Key: "updated_at", Value: time.Now()},
	})
}

// List returns all users, newest first.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return findMany[models.User](ctx, r.db.Collection(database.ColUsers), bson.D{}, opts)
}
