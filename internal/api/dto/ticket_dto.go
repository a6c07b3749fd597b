package dto

import (
	"time"

	"github.com/flamecloud/flamecloud-api/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Subject    string  `json:"subject"`
	Message    string  `json:"message"`
	Screenshot *string `json:"screenshot"`
}

// UpdateTicketRequest is a partial admin update.
type UpdateTicketRequest struct {
	Status        *string `json:"status"`
	AdminResponse *string `json:"admin_response"`
}

// TicketResponse response.
type TicketResponse struct {
	ID            string              `json:"id"`
	UserID        string              `json:"user_id"`
	Subject       string              `json:"subject"`
	Message       string              `json:"message"`
	Screenshot    *string             `json:"screenshot,omitempty"`
	Status        domain.TicketStatus `json:"status"`
	AdminResponse *string             `json:"admin_response,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
}

// AdminTicketResponse joins a ticket with owner identity.
type AdminTicketResponse struct {
	TicketResponse
	OwnerUsername string `json:"owner_username"`
	OwnerEmail    string `json:"owner_email"`
}

// NewTicketResponse maps a domain ticket.
func NewTicketResponse(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:            ticket.ID,
		UserID:        ticket.UserID,
		Subject:       ticket.Subject,
		Message:       ticket.Message,
		Screenshot:    ticket.Screenshot,
		Status:        ticket.Status,
		AdminResponse: ticket.AdminResponse,
		CreatedAt:     ticket.CreatedAt,
	}
}

// NewAdminTicketResponse maps a joined ticket row.
func NewAdminTicketResponse(item *domain.TicketWithOwner) AdminTicketResponse {
	return AdminTicketResponse{
		TicketResponse: NewTicketResponse(&item.Ticket),
		OwnerUsername:  item.OwnerUsername,
		OwnerEmail:     item.OwnerEmail,
	}
}
