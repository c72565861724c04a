package models

import "time"

// TicketStatus enumerates support ticket states.
type TicketStatus string

const (
	TicketOpen       TicketStatus = "Open"
	TicketInProgress TicketStatus = "In Progress"
	TicketResolved   TicketStatus = "Resolved"
	TicketClosed     TicketStatus = "Closed"
)

// Valid reports whether the status is a known ticket state.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketOpen, TicketInProgress, TicketResolved, TicketClosed:
		return true
	}
	return false
}

// TicketPriority enumerates support ticket priorities.
type TicketPriority string

const (
	PriorityLow    TicketPriority = "Low"
	PriorityMedium TicketPriority = "Medium"
	PriorityHigh   TicketPriority = "High"
)

// Valid reports whether the priority is known.
func (p TicketPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// TicketReply is a message appended to a ticket thread. IsStaff marks
// replies written from the admin console.
type TicketReply struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Message   string    `bson:"message" json:"message"`
	IsStaff   bool      `bson:"is_staff" json:"is_staff"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Ticket is a customer support request with an embedded reply thread.
type Ticket struct {
	ID        string         `bson:"_id" json:"id"`
	UserID    string         `bson:"user_id" json:"user_id"`
	Subject   string         `bson:"subject" json:"subject"`
	Message   string         `bson:"message" json:"message"`
	Status    TicketStatus   `bson:"status" json:"status"`
	Priority  TicketPriority `bson:"priority" json:"priority"`
	Replies   []TicketReply  `bson:"replies" json:"replies"`
	CreatedAt time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time      `bson:"updated_at" json:"updated_at"`
}
