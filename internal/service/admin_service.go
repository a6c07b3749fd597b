package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/flamecloud/flamecloud-api/internal/domain"
	"github.com/flamecloud/flamecloud-api/internal/events"
	"github.com/flamecloud/flamecloud-api/internal/persistence"
	"github.com/flamecloud/flamecloud-api/internal/repository"
	apperrors "github.com/flamecloud/flamecloud-api/pkg/util"
)

// AdminService is the privileged composite surface over users, tickets and
// chat. Every operation checks the caller's role.
type AdminService struct {
	users      repository.UserRepository
	tickets    repository.TicketRepository
	messages   repository.ChatMessageRepository
	unread     *persistence.UnreadCache
	dispatcher events.Dispatcher
}

// AdminDependencies bundles repositories for the admin service.
type AdminDependencies struct {
	UserRepo    repository.UserRepository
	TicketRepo  repository.TicketRepository
	MessageRepo repository.ChatMessageRepository
	UnreadCache *persistence.UnreadCache
	Dispatcher  events.Dispatcher
}

// NewAdminService constructs the service.
func NewAdminService(deps AdminDependencies) *AdminService {
	return &AdminService{
		users:      deps.UserRepo,
		tickets:    deps.TicketRepo,
		messages:   deps.MessageRepo,
		unread:     deps.UnreadCache,
		dispatcher: deps.Dispatcher,
	}
}

// UserUpdateInput is a partial admin edit; nil fields are left untouched.
type UserUpdateInput struct {
	Username *string
	Email    *string
	Avatar   *string
	IsAdmin  *bool
}

// Overview aggregates dashboard counts.
type Overview struct {
	Users         int64
	Tickets       int64
	UnreadMessage int64
}

// ListUsers returns the full user directory.
func (s *AdminService) ListUsers(ctx context.Context, caller *domain.User) ([]domain.User, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	return s.users.List(ctx)
}

// UpdateUser applies a partial edit to any account.
func (s *AdminService) UpdateUser(ctx context.Context, caller *domain.User, id string, input UserUpdateInput) (*domain.User, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}

	if input.Username != nil {
		trimmed := strings.TrimSpace(*input.Username)
		if trimmed == "" {
			return nil, apperrors.NewValidationError("username cannot be empty", nil)
		}
		user.Username = trimmed
	}
	if input.Email != nil {
		trimmed := strings.TrimSpace(*input.Email)
		if trimmed == "" {
			return nil, apperrors.NewValidationError("email cannot be empty", nil)
		}
		user.Email = trimmed
	}
	if input.Avatar != nil {
		user.Avatar = *input.Avatar
	}
	if input.IsAdmin != nil {
		if user.ID == caller.ID && !*input.IsAdmin {
			return nil, apperrors.NewInvariantViolation("cannot revoke your own admin role")
		}
		user.IsAdmin = *input.IsAdmin
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes a non-admin account and its dependents. Chat messages
// and tickets go first, then the user row, all in one transaction.
func (s *AdminService) DeleteUser(ctx context.Context, caller *domain.User, id string) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}

	target, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", nil)
		}
		return err
	}
	if target.IsAdmin {
		return apperrors.NewInvariantViolation("admin accounts cannot be deleted")
	}

	if err := s.users.DeleteWithDependents(ctx, id); err != nil {
		return err
	}
	s.unread.Invalidate(ctx, id)

	s.publishEvent(ctx, events.Event{
		Type:    events.EventUserDeleted,
		Actor:   events.Actor{UserID: caller.ID, IsAdmin: true},
		Payload: events.UserDeletedPayload{UserID: id},
	})
	return nil
}

// GetOverview returns dashboard counts for the admin panel.
func (s *AdminService) GetOverview(ctx context.Context, caller *domain.User) (*Overview, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}

	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	tickets, err := s.tickets.Count(ctx)
	if err != nil {
		return nil, err
	}
	unread, err := s.messages.UnreadTotal(ctx)
	if err != nil {
		return nil, err
	}
	return &Overview{Users: users, Tickets: tickets, UnreadMessage: unread}, nil
}

func requireAdmin(caller *domain.User) error {
	if caller == nil || !caller.IsAdmin {
		return apperrors.NewForbidden("admin role required")
	}
	return nil
}

func (s *AdminService) publishEvent(ctx context.Context, event events.Event) {
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
