package service

import (
	"context"
	"errors"
	"net/http"
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

// ChatService coordinates point-to-point messaging between non-admin users
// and the admin pool, with read-tracking.
type ChatService struct {
	messages   repository.ChatMessageRepository
	users      repository.UserRepository
	unread     *persistence.UnreadCache
	dispatcher events.Dispatcher
}

// NewChatService constructs the service. The unread cache may be nil.
func NewChatService(messages repository.ChatMessageRepository, users repository.UserRepository, unread *persistence.UnreadCache, dispatcher events.Dispatcher) *ChatService {
	return &ChatService{messages: messages, users: users, unread: unread, dispatcher: dispatcher}
}

// SendMessage inserts one directed message. A non-admin sender may omit the
// receiver, in which case the first admin by id is picked. Every message must
// pair exactly one admin with one non-admin.
func (s *ChatService) SendMessage(ctx context.Context, sender *domain.User, receiverID, text string) (*domain.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.NewValidationError("message text required", nil)
	}

	var receiver *domain.User
	if receiverID == "" {
		if sender.IsAdmin {
			return nil, apperrors.NewValidationError("receiver required", nil)
		}
		admin, err := s.resolveAdminPeer(ctx)
		if err != nil {
			return nil, err
		}
		receiver = admin
	} else {
		var err error
		receiver, err = s.users.GetByID(ctx, receiverID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("receiver", nil)
			}
			return nil, err
		}
	}

	if sender.IsAdmin == receiver.IsAdmin {
		return nil, apperrors.NewInvariantViolation("messages must pair one admin with one non-admin")
	}

	msg := &domain.ChatMessage{
		SenderID:   sender.ID,
		ReceiverID: receiver.ID,
		Message:    text,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}
	s.unread.Invalidate(ctx, receiver.ID)

	s.publishEvent(ctx, events.Event{
		Type:  events.EventChatMessageSent,
		Actor: events.Actor{UserID: sender.ID, IsAdmin: sender.IsAdmin},
		Payload: events.ChatMessageSentPayload{
			MessageID:  msg.ID,
			SenderID:   msg.SenderID,
			ReceiverID: msg.ReceiverID,
		},
	})
	return msg, nil
}

// LoadConversation returns both directions between viewer and the other user,
// oldest first. As a side effect it marks everything sent to the viewer by
// the other party as read, so a first call flips the flags and later calls
// are idempotent.
func (s *ChatService) LoadConversation(ctx context.Context, viewer *domain.User, otherID string) ([]domain.ChatMessage, error) {
	other, err := s.users.GetByID(ctx, otherID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	if viewer.IsAdmin == other.IsAdmin {
		return nil, apperrors.NewForbidden("conversations pair one admin with one non-admin")
	}

	flipped, err := s.messages.MarkRead(ctx, viewer.ID, other.ID)
	if err != nil {
		return nil, err
	}
	if flipped > 0 {
		s.unread.Invalidate(ctx, viewer.ID)
	}

	msgs, err := s.messages.ListConversation(ctx, viewer.ID, other.ID)
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// ListPeers returns every non-admin user with the count of their messages the
// requesting admin has not read yet. Admin only.
func (s *ChatService) ListPeers(ctx context.Context, caller *domain.User) ([]domain.ChatPeer, error) {
	if caller == nil || !caller.IsAdmin {
		return nil, apperrors.NewForbidden("admin role required")
	}
	return s.messages.PeersWithUnread(ctx, caller.ID)
}

// UnreadCount returns the number of unread messages addressed to the user.
func (s *ChatService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	if count, ok := s.unread.Get(ctx, userID); ok {
		return count, nil
	}
	count, err := s.messages.UnreadCount(ctx, userID)
	if err != nil {
		return 0, err
	}
	s.unread.Set(ctx, userID, count)
	return count, nil
}

// resolveAdminPeer picks the first admin by id to receive messages from users
// that have not selected one explicitly.
func (s *ChatService) resolveAdminPeer(ctx context.Context) (*domain.User, error) {
	admin, err := s.users.FirstAdmin(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewDomainError("NO_ADMIN_AVAILABLE", "no admin available", http.StatusServiceUnavailable, nil)
		}
		return nil, err
	}
	return admin, nil
}

func (s *ChatService) publishEvent(ctx context.Context, event events.Event) {
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
