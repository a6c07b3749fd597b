package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusPending    TicketStatus = "pending"
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// Valid reports whether the status is one of the recognized lifecycle states.
// Unrecognized values are rejected at the service boundary.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusPending, TicketStatusOpen, TicketStatusInProgress,
		TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// Ticket is a user-submitted support/order request. After creation only
// Status and AdminResponse may change, and only through admin action.
type Ticket struct {
	ID            string
	UserID        string
	Subject       string
	Message       string
	Screenshot    *string
	Status        TicketStatus
	AdminResponse *string
	CreatedAt     time.Time
}

// TicketWithOwner joins a ticket with its owner's identity for admin listings.
type TicketWithOwner struct {
	Ticket
	OwnerUsername string
	OwnerEmail    string
}
