package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/flamecloud/flamecloud-api/internal/domain"
	"github.com/flamecloud/flamecloud-api/internal/events"
	"github.com/flamecloud/flamecloud-api/internal/repository"
	apperrors "github.com/flamecloud/flamecloud-api/pkg/util"
)

// TicketService coordinates support ticket workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(tickets repository.TicketRepository, dispatcher events.Dispatcher) *TicketService {
	return &TicketService{tickets: tickets, dispatcher: dispatcher}
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Subject    string
	Message    string
	Screenshot *string
}

// TicketUpdateInput is a partial update; nil fields are left untouched.
type TicketUpdateInput struct {
	Status        *domain.TicketStatus
	AdminResponse *string
}

// CreateTicket creates a ticket for a user. New tickets always start pending.
func (s *TicketService) CreateTicket(ctx context.Context, userID string, input TicketCreateInput) (*domain.Ticket, error) {
	subject := strings.TrimSpace(input.Subject)
	message := strings.TrimSpace(input.Message)
	if subject == "" || message == "" {
		return nil, apperrors.NewValidationError("subject and message required", nil)
	}

	ticket := &domain.Ticket{
		UserID:     userID,
		Subject:    subject,
		Message:    message,
		Screenshot: input.Screenshot,
		Status:     domain.TicketStatusPending,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:  events.EventTicketCreated,
		Actor: events.Actor{UserID: userID},
		Payload: events.TicketCreatedPayload{
			TicketID: ticket.ID,
			Subject:  ticket.Subject,
		},
	})
	return ticket, nil
}

// ListUserTickets returns the caller's tickets, newest first.
func (s *TicketService) ListUserTickets(ctx context.Context, userID string) ([]domain.Ticket, error) {
	return s.tickets.ListByUser(ctx, userID)
}

// ListAllTickets returns every ticket joined with owner identity. Admin only.
func (s *TicketService) ListAllTickets(ctx context.Context, caller *domain.User) ([]domain.TicketWithOwner, error) {
	if caller == nil || !caller.IsAdmin {
		return nil, apperrors.NewForbidden("admin role required")
	}
	return s.tickets.ListAllWithOwner(ctx)
}

// UpdateTicket applies a partial status/response update. Admin only. Statuses
// outside the recognized enum are rejected rather than stored free-form.
func (s *TicketService) UpdateTicket(ctx context.Context, caller *domain.User, ticketID string, input TicketUpdateInput) (*domain.Ticket, error) {
	if caller == nil || !caller.IsAdmin {
		return nil, apperrors.NewForbidden("admin role required")
	}
	if input.Status == nil && input.AdminResponse == nil {
		return nil, apperrors.NewValidationError("nothing to update", nil)
	}
	if input.Status != nil && !input.Status.Valid() {
		return nil, apperrors.NewValidationError("unrecognized ticket status", map[string]any{
			"status": string(*input.Status),
		})
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	oldStatus := ticket.Status
	if input.Status != nil {
		ticket.Status = *input.Status
	}
	if input.AdminResponse != nil {
		ticket.AdminResponse = input.AdminResponse
	}
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}

	if input.Status != nil && oldStatus != ticket.Status {
		s.publishEvent(ctx, events.Event{
			Type:  events.EventTicketStatusChanged,
			Actor: events.Actor{UserID: caller.ID, IsAdmin: true},
			Payload: events.TicketStatusChangedPayload{
				TicketID:  ticket.ID,
				OldStatus: oldStatus,
				NewStatus: ticket.Status,
			},
		})
	}
	return ticket, nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
