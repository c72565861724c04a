package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/veloralabs/storefront_api/internal/database"
	"github.com/veloralabs/storefront_api/internal/models"
)

// OrderRepository handles data access for orders.
type OrderRepository struct {
	db *database.Mongo
}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(db *database.Mongo) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts a new order.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	return insertOne(ctx, r.db.Collection(database.ColOrders), order)
}

// GetByID returns a single order by id, or ErrNotFound.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	return findOne[models.Order](ctx, r.db.Collection(database.ColOrders), bson.D{{Key: "_id", Value: id}})
}

// ListByUser returns the orders of one user, newest first. The filter
// is always scoped by user_id so one user can never see another's.
func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return findMany[models.Order](ctx, r.db.Collection(database.ColOrders), bson.D{{Key: "user_id", Value: userID}}, opts)
}

// ListAll returns all orders, optionally filtered by status, newest first.
func (r *OrderRepository) ListAll(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	filter := bson.D{}
	if status != "" {
		filter = append(filter, bson.E{Key: "status", Value: status})
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return findMany[models.Order](ctx, r.db.Collection(database.ColOrders), filter, opts)
}

// UpdateStatus sets the order status.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error {
	return updateByID(ctx, r.db.Collection(database.ColOrders), id, bson.D{
		{Key: "status", Value: status},
		{Key: "updated_at", Value: time.Now()},
	})
}
