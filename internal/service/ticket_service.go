package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/veloralabs/storefront_api/internal/models"
	"github.com/veloralabs/storefront_api/internal/repository"
	"github.com/veloralabs/storefront_api/internal/utils"
)

// TicketStore is the ticket persistence needed by TicketService.
type TicketStore interface {
	Create(ctx context.Context, ticket *models.Ticket) error
	GetByID(ctx context.Context, id string) (*models.Ticket, error)
	ListByUser(ctx context.Context, userID string) ([]models.Ticket, error)
	ListAll(ctx context.Context, status models.TicketStatus) ([]models.Ticket, error)
	AppendReply(ctx context.Context, ticketID string, reply models.TicketReply) error
	UpdateStatus(ctx context.Context, id string, status models.TicketStatus) error
	UpdatePriority(ctx context.Context, id string, priority models.TicketPriority) error
}

// TicketService implements support ticket flows for users and admins.
type TicketService struct {
	tickets TicketStore
}

// NewTicketService constructs a TicketService.
func NewTicketService(tickets TicketStore) *TicketService {
	return &TicketService{tickets: tickets}
}

// Open creates a new ticket for the session user. Priority defaults to
// Medium when omitted.
func (s *TicketService) Open(ctx context.Context, userID, subject, message string, priority models.TicketPriority) (*models.Ticket, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" || strings.TrimSpace(message) == "" {
		return nil, utils.Invalid("subject and message are required")
	}
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !priority.Valid() {
		return nil, utils.Invalid("unknown ticket priority")
	}

	now := time.Now()
	ticket := &models.Ticket{
		ID:        utils.NewID("tkt"),
		UserID:    userID,
		Subject:   subject,
		Message:   message,
		Status:    models.TicketOpen,
		Priority:  priority,
		Replies:   []models.TicketReply{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// ListUserTickets returns the session user's tickets.
func (s *TicketService) ListUserTickets(ctx context.Context, userID string) ([]models.Ticket, error) {
	return s.tickets.ListByUser(ctx, userID)
}

// Get returns one ticket. Non-admin callers only see their own;
// someone else's ticket reads as missing.
func (s *TicketService) Get(ctx context.Context, userID, ticketID string, isAdmin bool) (*models.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	if !isAdmin && ticket.UserID != userID {
		return nil, utils.ErrNotFound
	}
	return ticket, nil
}

// Reply appends a message to the ticket thread. Closed tickets do not
// take further replies.
func (s *TicketService) Reply(ctx context.Context, userID, ticketID, message string, isAdmin bool) (*models.Ticket, error) {
	if strings.TrimSpace(message) == "" {
		return nil, utils.Invalid("message is required")
	}

	ticket, err := s.Get(ctx, userID, ticketID, isAdmin)
	if err != nil {
		return nil, err
	}
	if ticket.Status == models.TicketClosed {
		return nil, utils.Invalid("ticket is closed")
	}

	reply := models.TicketReply{
		ID:        utils.NewID("rpl"),
		UserID:    userID,
		Message:   message,
		IsStaff:   isAdmin,
		CreatedAt: time.Now(),
	}
	if err := s.tickets.AppendReply(ctx, ticketID, reply); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	ticket.Replies = append(ticket.Replies, reply)
	return ticket, nil
}

// ListAll returns all tickets for the admin console.
func (s *TicketService) ListAll(ctx context.Context, status models.TicketStatus) ([]models.Ticket, error) {
	if status != "" && !status.Valid() {
		return nil, utils.Invalid("unknown ticket status")
	}
	return s.tickets.ListAll(ctx, status)
}

// UpdateStatus sets a ticket's status from the admin console.
func (s *TicketService) UpdateStatus(ctx context.Context, ticketID string, status models.TicketStatus) error {
	if !status.Valid() {
		return utils.Invalid("unknown ticket status")
	}
	err := s.tickets.UpdateStatus(ctx, ticketID, status)
	if errors.Is(err, repository.ErrNotFound) {
		return utils.ErrNotFound
	}
	return err
}

// UpdatePriority sets a ticket's priority from the admin console.
func (s *TicketService) UpdatePriority(ctx context.Context, ticketID string, priority models.TicketPriority) error {
	if !priority.Valid() {
		return utils.Invalid("unknown ticket priority")
	}
	err := s.tickets.UpdatePriority(ctx, ticketID, priority)
	if errors.Is(err, repository.ErrNotFound) {
		return utils.ErrNotFound
	}
	return err
}
