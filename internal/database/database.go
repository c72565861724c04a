package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/veloralabs/storefront_api/internal/config"
)

// Collection names, one per document entity.
const (
	ColUsers        = "users"
	ColProducts     = "products"
	ColCategories   = "categories"
	ColOrders       = "orders"
	ColOffers       = "offers"
	ColReviews      = "reviews"
	ColTickets      = "tickets"
	ColTransactions = "transactions"
)

// Mongo wraps the MongoDB client and the application database.
type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// Connect establishes a MongoDB connection, verifies it with a ping and
// ensures all collection indexes exist.
func Connect(cfg *config.MongoConfig) (*Mongo, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect failed: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping failed: %w", err)
	}

	m := &Mongo{Client: client, DB: client.Database(cfg.Database)}
	if err := m.ensureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("ensure indexes failed: %w", err)
	}
	return m, nil
}

// Collection returns a handle for the named collection.
func (m *Mongo) Collection(name string) *mongo.Collection {
	return m.DB.Collection(name)
}

// Ping verifies the connection is still alive.
func (m *Mongo) Ping(ctx context.Context) error {
	return m.Client.Ping(ctx, nil)
}

// Close disconnects from MongoDB.
func (m *Mongo) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.Client.Disconnect(ctx)
}

// ensureIndexes creates all collection indexes. The unique indexes are
// the safety net for concurrent writes: duplicate inserts surface as
// duplicate-key errors which the repositories map to conflicts.
func (m *Mongo) ensureIndexes(ctx context.Context) error {
	type idx struct {
		col    string
		keys   bson.D
		unique bool
	}

	indexes := []idx{
		{ColUsers, bson.D{{Key: "email", Value: 1}}, true},

		{ColProducts, bson.D{{Key: "slug", Value: 1}}, true},
		{ColProducts, bson.D{{Key: "category_id", Value: 1}}, false},
		{ColProducts, bson.D{{Key: "created_at", Value: -1}}, false},

		{ColCategories, bson.D{{Key: "slug", Value: 1}}, true},
		{ColCategories, bson.D{{Key: "display_order", Value: 1}}, false},

		{ColOrders, bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}, false},
		{ColOrders, bson.D{{Key: "status", Value: 1}}, false},

		{ColOffers, bson.D{{Key: "valid_until", Value: 1}}, false},

		{ColReviews, bson.D{{Key: "product_id", Value: 1}, {Key: "status", Value: 1}}, false},

		{ColTickets, bson.D{{Key: "user_id", Value: 1}}, false},
		{ColTickets, bson.D{{Key: "status", Value: 1}}, false},

		{ColTransactions, bson.D{{Key: "order_id", Value: 1}}, false},
		{ColTransactions, bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: 1}}, false},
	}

	for _, ix := range indexes {
		opts := options.Index()
		if ix.unique {
			opts.SetUnique(true)
		}
		_, err := m.DB.Collection(ix.col).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    ix.keys,
			Options: opts,
		})
		if err != nil {
			return fmt.Errorf("index on %s: %w", ix.col, err)
		}
	}
	return nil
}
