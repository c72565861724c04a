package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veloralabs/storefront_api/internal/models"
	"github.com/veloralabs/storefront_api/internal/repository"
	"github.com/veloralabs/storefront_api/internal/utils"
)

type fakeTicketStore struct {
	mu      sync.Mutex
	tickets map[string]*models.Ticket
}

func newFakeTicketStore() *fakeTicketStore {
	return &fakeTicketStore{tickets: make(map[string]*models.Ticket)}
}

func (f *fakeTicketStore) Create(ctx context.Context, ticket *models.Ticket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *ticket
	f.tickets[ticket.ID] = &cp
	return nil
}

func (f *fakeTicketStore) GetByID(ctx context.Context, id string) (*models.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tk, ok := f.tickets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *tk
	return &cp, nil
}

func (f *fakeTicketStore) ListByUser(ctx context.Context, userID string) ([]models.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Ticket{}
	for _, tk := range f.tickets {
		if tk.UserID == userID {
			out = append(out, *tk)
		}
	}
	return out, nil
}

func (f *fakeTicketStore) ListAll(ctx context.Context, status models.TicketStatus) ([]models.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Ticket{}
	for _, tk := range f.tickets {
		if status != "" && tk.Status != status {
			continue
		}
		out = append(out, *tk)
	}
	return out, nil
}

func (f *fakeTicketStore) AppendReply(ctx context.Context, ticketID string, reply models.TicketReply) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	tk, ok := f.tickets[ticketID]
	if !ok {
		return repository.ErrNotFound
	}
	tk.Replies = append(tk.Replies, reply)
	return nil
}

func (f *fakeTicketStore) UpdateStatus(ctx context.Context, id string, status models.TicketStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	tk, ok := f.tickets[id]
	if !ok {
		return repository.ErrNotFound
	}
	tk.Status = status
	return nil
}

func (f *fakeTicketStore) UpdatePriority(ctx context.Context, id string, priority models.TicketPriority) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	tk, ok := f.tickets[id]
	if !ok {
		return repository.ErrNotFound
	}
	tk.Priority = priority
	return nil
}

func TestOpenTicketDefaults(t *testing.T) {
	svc := NewTicketService(newFakeTicketStore())
	ctx := context.Background()

	ticket, err := svc.Open(ctx, "user_1", "Broken mug", "It arrived in pieces", "")
	require.NoError(t, err)
	assert.Equal(t, models.TicketOpen, ticket.Status)
	assert.Equal(t, models.PriorityMedium, ticket.Priority)
	assert.NotNil(t, ticket.Replies)

	_, err = svc.Open(ctx, "user_1", "  ", "message", "")
	require.Error(t, err)
	assert.Equal(t, 400, utils.StatusFor(err))

	_, err = svc.Open(ctx, "user_1", "subject", "message", models.TicketPriority("Urgent"))
	require.Error(t, err)
	assert.Equal(t, 400, utils.StatusFor(err))
}

func TestTicketScoping(t *testing.T) {
	svc := NewTicketService(newFakeTicketStore())
	ctx := context.Background()

	ticket, err := svc.Open(ctx, "user_1", "Broken mug", "It arrived in pieces", models.PriorityHigh)
	require.NoError(t, err)

	got, err := svc.Get(ctx, "user_1", ticket.ID, false)
	require.NoError(t, err)
	assert.Equal(t, ticket.ID, got.ID)

	// Someone else's ticket reads as missing unless the caller is staff.
	_, err = svc.Get(ctx, "user_2", ticket.ID, false)
	require.ErrorIs(t, err, utils.ErrNotFound)

	got, err = svc.Get(ctx, "admin_1", ticket.ID, true)
	require.NoError(t, err)
	assert.Equal(t, ticket.ID, got.ID)
}

func TestTicketReplies(t *testing.T) {
	store := newFakeTicketStore()
	svc := NewTicketService(store)
	ctx := context.Background()

	ticket, err := svc.Open(ctx, "user_1", "Broken mug", "It arrived in pieces", "")
	require.NoError(t, err)

	updated, err := svc.Reply(ctx, "admin_1", ticket.ID, "A replacement is on the way", true)
	require.NoError(t, err)
	require.Len(t, updated.Replies, 1)
	assert.True(t, updated.Replies[0].IsStaff)

	_, err = svc.Reply(ctx, "user_1", ticket.ID, "   ", false)
	require.Error(t, err)
	assert.Equal(t, 400, utils.StatusFor(err))

	require.NoError(t, svc.UpdateStatus(ctx, ticket.ID, models.TicketClosed))
	_, err = svc.Reply(ctx, "user_1", ticket.ID, "hello?", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "closed")
}

func TestTicketAdminUpdates(t *testing.T) {
	svc := NewTicketService(newFakeTicketStore())
	ctx := context.Background()

	ticket, err := svc.Open(ctx, "user_1", "Broken mug", "It arrived in pieces", "")
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(ctx, ticket.ID, models.TicketInProgress))
	require.NoError(t, svc.UpdatePriority(ctx, ticket.ID, models.PriorityHigh))

	err = svc.UpdateStatus(ctx, ticket.ID, models.TicketStatus("Escalated"))
	require.Error(t, err)
	assert.Equal(t, 400, utils.StatusFor(err))

	err = svc.UpdateStatus(ctx, "tkt_missing", models.TicketResolved)
	require.ErrorIs(t, err, utils.ErrNotFound)

	all, err := svc.ListAll(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = svc.ListAll(ctx, models.TicketStatus("Escalated"))
	require.Error(t, err)
}
