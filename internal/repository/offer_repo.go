package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/veloralabs/storefront_api/internal/database"
	"github.com/veloralabs/storefront_api/internal/models"
)

// OfferRepository handles data access for promotional offers.
type OfferRepository struct {
	db *database.Mongo
}

// NewOfferRepository creates a new OfferRepository.
func NewOfferRepository(db *database.Mongo) *OfferRepository {
	return &OfferRepository{db: db}
}

// Create inserts a new offer.
func (r *OfferRepository) Create(ctx context.Context, offer *models.Offer) error {
	return insertOne(ctx, r.db.Collection(database.ColOffers), offer)
}

// GetByID returns a single offer by id, or ErrNotFound.
func (r *OfferRepository) GetByID(ctx context.Context, id string) (*models.Offer, error) {
	return findOne[models.Offer](ctx, r.db.Collection(database.ColOffers), bson.D{{Key: "_id", Value: id}})
}

// List returns all offers, newest first.
func (r *OfferRepository) List(ctx context.Context) ([]models.Offer, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return findMany[models.Offer](ctx, r.db.Collection(database.ColOffers), bson.D{}, opts)
}

// ListValid returns active offers whose validity window covers now.
func (r *OfferRepository) ListValid(ctx context.Context, now time.Time) ([]models.Offer, error) {
	filter := bson.D{
		{Key: "is_active", Value: true},
		{Key: "valid_from", Value: bson.D{{Key: "$lte", Value: now}}},
		{Key: "valid_until", Value: bson.D{{Key: "$gte", Value: now}}},
	}
	opts := options.Find().SetSort(bson.D{{Key: "valid_until", Value: 1}})
	return findMany[models.Offer](ctx, r.db.Collection(database.ColOffers), filter, opts)
}

// Update replaces an existing offer.
func (r *OfferRepository) Update(ctx context.Context, offer *models.Offer) error {
	offer.UpdatedAt = time.Now()
	res, err := r.db.Collection(database.ColOffers).ReplaceOne(ctx, bson.D{{Key: "_id", Value: offer.ID}}, offer)
	if err != nil {
		return wrapErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an offer by id.
func (r *OfferRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db.Collection(database.ColOffers), id)
}

// DeactivateExpired flips is_active off for offers past their validity
// window and returns how many were touched.
func (r *OfferRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.Collection(database.ColOffers).UpdateMany(ctx,
		bson.D{
			{Key: "is_active", Value: true},
			{Key: "valid_until", Value: bson.D{{Key: "$lt", Value: now}}},
		},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "is_active", Value: false},
			{Key: "updated_at", Value: now},
		}}})
	if err != nil {
		return 0, wrapErr(err)
	}
	return res.ModifiedCount, nil
}
