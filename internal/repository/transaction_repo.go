package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/veloralabs/storefront_api/internal/database"
	"github.com/veloralabs/storefront_api/internal/models"
)

// TransactionRepository handles data access for payment transactions.
type TransactionRepository struct {
	db *database.Mongo
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db *database.Mongo) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create inserts a new transaction.
func (r *TransactionRepository) Create(ctx context.Context, trx *models.Transaction) error {
	return insertOne(ctx, r.db.Collection(database.ColTransactions), trx)
}

// GetByID returns a single transaction by id, or ErrNotFound.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	return findOne[models.Transaction](ctx, r.db.Collection(database.ColTransactions), bson.D{{Key: "_id", Value: id}})
}

// ListAll returns all transactions, optionally filtered by status, newest first.
func (r *TransactionRepository) ListAll(ctx context.Context, status models.TransactionStatus) ([]models.Transaction, error) {
	filter := bson.D{}
	if status != "" {
		filter = append(filter, bson.E{Key: "status", Value: status})
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return findMany[models.Transaction](ctx, r.db.Collection(database.ColTransactions), filter, opts)
}

// ListByOrder returns the transactions recorded for one order.
func (r *TransactionRepository) ListByOrder(ctx context.Context, orderID string) ([]models.Transaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	return findMany[models.Transaction](ctx, r.db.Collection(database.ColTransactions), bson.D{{Key: "order_id", Value: orderID}}, opts)
}

// UpdateStatus sets the transaction status.
func (r *TransactionRepository) UpdateStatus(ctx context.Context, id string, status models.TransactionStatus) error {
	return updateByID(ctx, r.db.Collection(database.ColTransactions), id, bson.D{
		{Key: "status", Value: status},
		{Key: "updated_at", Value: time.Now()},
	})
}

// FailStalePending marks transactions stuck in pending longer than
// maxAge as failed and returns how many were touched.
func (r *TransactionRepository) FailStalePending(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge)
	res, err := r.db.Collection(database.ColTransactions).UpdateMany(ctx,
		bson.D{
			{Key: "status", Value: models.TransactionPending},
			{Key: "created_at", Value: bson.D{{Key: "$lt", Value: cutoff}}},
		},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "status", Value: models.TransactionFailed},
			{Key: "updated_at", Value: time.Now()},
		}}})
	if err != nil {
		return 0, wrapErr(err)
	}
	return res.ModifiedCount, nil
}
