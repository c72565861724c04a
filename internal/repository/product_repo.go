package repository

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/veloralabs/storefront_api/internal/database"
	"github.com/veloralabs/storefront_api/internal/models"
)

// ProductFilter holds the optional predicates for product listings.
// Nil/empty fields are ignored; set fields are combined with AND.
type ProductFilter struct {
	CategoryID   string
	IsFeatured   *bool
	IsNewArrival *bool
	IsHotDeal    *bool
	Search       string
	Page         int
	Limit        int
}

// ProductRepository handles data access for catalog products.
type ProductRepository struct {
	db *database.Mongo
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *database.Mongo) *ProductRepository {
	return &ProductRepository{db: db}
}

// buildFilter translates a ProductFilter into a Mongo query document.
func buildFilter(f *ProductFilter) bson.D {
	filter := bson.D{}
	if f.CategoryID != "" {
		filter = append(filter, bson.E{Key: "category_id", Value: f.CategoryID})
	}
	if f.IsFeatured != nil {
		filter = append(filter, bson.E{Key: "is_featured", Value: *f.IsFeatured})
	}
	if f.IsNewArrival != nil {
		filter = append(filter, bson.E{Key: "is_new_arrival", Value: *f.IsNewArrival})
	}
	if f.IsHotDeal != nil {
		filter = append(filter, bson.E{Key: "is_hot_deal", Value: *f.IsHotDeal})
	}
	if f.Search != "" {
		// Case-insensitive substring match over name, description and tags.
		pattern := regexp.QuoteMeta(f.Search)
		re := bson.D{{Key: "$regex", Value: pattern}, {Key: "$options", Value: "i"}}
		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "name", Value: re}},
			bson.D{{Key: "description", Value: re}},
			bson.D{{Key: "tags", Value: re}},
		}})
	}
	return filter
}

// List returns products matching the filter, newest first, with stable
// pagination, and the total match count.
func (r *ProductRepository) List(ctx context.Context, f *ProductFilter) ([]models.Product, int64, error) {
	page := f.Page
	limit := f.Limit
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}

	col := r.db.Collection(database.ColProducts)
	filter := buildFilter(f)

	total, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, wrapErr(err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	products, err := findMany[models.Product](ctx, col, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// GetBySlug returns a single product by slug, or ErrNotFound.
func (r *ProductRepository) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	return findOne[models.Product](ctx, r.db.Collection(database.ColProducts), bson.D{{Key: "slug", Value: slug}})
}

// GetByID returns a single product by id, or ErrNotFound.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	return findOne[models.Product](ctx, r.db.Collection(database.ColProducts), bson.D{{Key: "_id", Value: id}})
}

// Create inserts a new product. Returns ErrDuplicate on a slug clash.
func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	return insertOne(ctx, r.db.Collection(database.ColProducts), p)
}

// Update replaces the mutable fields of an existing product.
func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	p.UpdatedAt = time.Now()
	res, err := r.db.Collection(database.ColProducts).ReplaceOne(ctx, bson.D{{Key: "_id", Value: p.ID}}, p)
	if err != nil {
		return wrapErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a product by id.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db.Collection(database.ColProducts), id)
}

// DecrementStock atomically reduces stock by qty. It only matches when
// enough stock remains, so overselling shows up as ErrNotFound.
func (r *ProductRepository) DecrementStock(ctx context.Context, id string, qty int) error {
	res, err := r.db.Collection(database.ColProducts).UpdateOne(ctx,
		bson.D{
			{Key: "_id", Value: id},
			{Key: "stock_quantity", Value: bson.D{{Key: "$gte", Value: qty}}},
		},
		bson.D{
			{Key: "$inc", Value: bson.D{{Key: "stock_quantity", Value: -qty}}},
			{Key: "$set", Value: bson.D{{Key: "updated_at", Value: time.Now()}}},
		})
	if err != nil {
		return wrapErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementStock restores stock, used to unwind a partial checkout.
func (r *ProductRepository) IncrementStock(ctx context.Context, id string, qty int) error {
	res, err := r.db.Collection(database.ColProducts).UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{
			{Key: "$inc", Value: bson.D{{Key: "stock_quantity", Value: qty}}},
			{Key: "$set", Value: bson.D{{Key: "updated_at", Value: time.Now()}}},
		})
	if err != nil {
		return wrapErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByCategory reports how many products reference a category.
func (r *ProductRepository) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	n, err := r.db.Collection(database.ColProducts).CountDocuments(ctx, bson.D{{Key: "category_id", Value: categoryID}})
	return n, wrapErr(err)
}
