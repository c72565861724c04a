package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatusEnums(t *testing.T) {
	for _, s := range []OrderStatus{OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, OrderStatus("teleported").Valid())
	assert.False(t, OrderStatus("").Valid())

	for _, s := range []ReviewStatus{ReviewPending, ReviewApproved, ReviewFlagged} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, ReviewStatus("Deleted").Valid())

	for _, s := range []TicketStatus{TicketOpen, TicketInProgress, TicketResolved, TicketClosed} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, TicketStatus("Escalated").Valid())

	for _, p := range []TicketPriority{PriorityLow, PriorityMedium, PriorityHigh} {
		assert.True(t, p.Valid(), string(p))
	}
	assert.False(t, TicketPriority("Urgent").Valid())

	for _, s := range []TransactionStatus{TransactionPending, TransactionCompleted, TransactionFailed, TransactionRefunded} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, TransactionStatus("voided").Valid())
}

func TestOfferValidAt(t *testing.T) {
	now := time.Now()
	offer := Offer{
		IsActive:   true,
		ValidFrom:  now.Add(-time.Hour),
		ValidUntil: now.Add(time.Hour),
	}
	assert.True(t, offer.ValidAt(now))
	assert.False(t, offer.ValidAt(now.Add(-2*time.Hour)))
	assert.False(t, offer.ValidAt(now.Add(2*time.Hour)))

	offer.IsActive = false
	assert.False(t, offer.ValidAt(now))
	offer.IsActive = true

	offer.UsageLimit = 3
	offer.UsageCount = 3
	assert.False(t, offer.ValidAt(now))

	offer.UsageCount = 2
	assert.True(t, offer.ValidAt(now))
}
