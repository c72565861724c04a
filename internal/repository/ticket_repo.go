package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/veloralabs/storefront_api/internal/database"
	"github.com/veloralabs/storefront_api/internal/models"
)

// TicketRepository handles data access for support tickets.
type TicketRepository struct {
	db *database.Mongo
}

// NewTicketRepository creates a new TicketRepository.
func NewTicketRepository(db *database.Mongo) *TicketRepository {
	return &TicketRepository{db: db}
}

// Create inserts a new ticket.
func (r *TicketRepository) Create(ctx context.Context, ticket *models.Ticket) error {
	return insertOne(ctx, r.db.Collection(database.ColTickets), ticket)
}

// GetByID returns a single ticket by id, or ErrNotFound.
func (r *TicketRepository) GetByID(ctx context.Context, id string) (*models.Ticket, error) {
	return findOne[models.Ticket](ctx, r.db.Collection(database.ColTickets), bson.D{{Key: "_id", Value: id}})
}

// ListByUser returns the tickets of one user, newest first.
func (r *TicketRepository) ListByUser(ctx context.Context, userID string) ([]models.Ticket, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return findMany[models.Ticket](ctx, r.db.Collection(database.ColTickets), bson.D{{Key: "user_id", Value: userID}}, opts)
}

// ListAll returns all tickets, optionally filtered by status, newest first.
func (r *TicketRepository) ListAll(ctx context.Context, status models.TicketStatus) ([]models.Ticket, error) {
	filter := bson.D{}
	if status != "" {
		filter = append(filter, bson.E{Key: "status", Value: status})
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return findMany[models.Ticket](ctx, r.db.Collection(database.ColTickets), filter, opts)
}

// AppendReply pushes a reply onto the ticket thread.
func (r *TicketRepository) AppendReply(ctx context.Context, ticketID string, reply models.TicketReply) error {
	res, err := r.db.Collection(database.ColTickets).UpdateOne(ctx,
		bson.D{{Key: "_id", Value: ticketID}},
		bson.D{
			{Key: "$push", Value: bson.D{{Key: "replies", Value: reply}}},
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

// UpdateStatus sets the ticket status.
func (r *TicketRepository) UpdateStatus(ctx context.Context, id string, status models.TicketStatus) error {
	return updateByID(ctx, r.db.Collection(database.ColTickets), id, bson.D{
		{Key: "status", Value: status},
		{Key: "updated_at", Value: time.Now()},
	})
}

// UpdatePriority sets the ticket priority.
func (r *TicketRepository) UpdatePriority(ctx context.Context, id string, priority models.TicketPriority) error {
	return updateByID(ctx, r.db.Collection(database.ColTickets), id, bson.D{
		{Key: "priority", Value: priority},
		{Key: "updated_at", Value: time.Now()},
	})
}
