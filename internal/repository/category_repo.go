package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/veloralabs/storefront_api/internal/database"
	"github.com/veloralabs/storefront_api/internal/models"
)

// CategoryRepository handles data access for catalog categories.
type CategoryRepository struct {
	db *database.Mongo
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db *database.Mongo) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// List returns all categories ordered by display_order.
func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "display_order", Value: 1}, {Key: "slug", Value: 1}})
	return findMany[models.Category](ctx, r.db.Collection(database.ColCategories), bson.D{}, opts)
}

// GetBySlug returns a single category by slug, or ErrNotFound.
func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return findOne[models.Category](ctx, r.db.Collection(database.ColCategories), bson.D{{Key: "slug", Value: slug}})
}

// GetByID returns a single category by id, or ErrNotFound.
func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	return findOne[models.Category](ctx, r.db.Collection(database.ColCategories), bson.D{{Key: "_id", Value: id}})
}

// Create inserts a new category. Returns ErrDuplicate on a slug clash.
func (r *CategoryRepository) Create(ctx context.Context, cat *models.Category) error {
	return insertOne(ctx, r.db.Collection(database.ColCategories), cat)
}

// Update replaces an existing category.
func (r *CategoryRepository) Update(ctx context.Context, cat *models.Category) error {
	cat.UpdatedAt = time.Now()
	res, err := r.db.Collection(database.ColCategories).ReplaceOne(ctx, bson.D{{Key: "_id", Value: cat.ID}}, cat)
	if err != nil {
		return wrapErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a category by id.
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db.Collection(database.ColCategories), id)
}

// CountChildren reports how many categories name this one as parent.
func (r *CategoryRepository) CountChildren(ctx context.Context, id string) (int64, error) {
	n, err := r.db.Collection(database.ColCategories).CountDocuments(ctx, bson.D{{Key: "parent_id", Value: id}})
	return n, wrapErr(err)
}
