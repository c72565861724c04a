package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/veloralabs/storefront_api/internal/database"
	"github.com/veloralabs/storefront_api/internal/models"
)

// ReviewRepository handles data access for product reviews.
type ReviewRepository struct {
	db *database.Mongo
}

// NewReviewRepository creates a new ReviewRepository.
func NewReviewRepository(db *database.Mongo) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create inserts a new review.
func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	return insertOne(ctx, r.db.Collection(database.ColReviews), review)
}

// GetByID returns a single review by id, or ErrNotFound.
func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*models.Review, error) {
	return findOne[models.Review](ctx, r.db.Collection(database.ColReviews), bson.D{{Key: "_id", Value: id}})
}

// ListByProduct returns a product's reviews, optionally restricted to
// one moderation status, newest first.
func (r *ReviewRepository) ListByProduct(ctx context.Context, productID string, status models.ReviewStatus) ([]models.Review, error) {
	filter := bson.D{{Key: "product_id", Value: productID}}
	if status != "" {
		filter = append(filter, bson.E{Key: "status", Value: status})
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return findMany[models.Review](ctx, r.db.Collection(database.ColReviews), filter, opts)
}

// ListByStatus returns all reviews in one moderation status, oldest
// first so the moderation queue is drained in order.
func (r *ReviewRepository) ListByStatus(ctx context.Context, status models.ReviewStatus) ([]models.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	return findMany[models.Review](ctx, r.db.Collection(database.ColReviews), bson.D{{Key: "status", Value: status}}, opts)
}

// UpdateStatus sets the moderation status of a review.
func (r *ReviewRepository) UpdateStatus(ctx context.Context, id string, status models.ReviewStatus) error {
	return updateByID(ctx, r.db.Collection(database.ColReviews), id, bson.D{
		{Key: "status", Value: status},
		{Key: "updated_at", Value: time.Now()},
	})
}
