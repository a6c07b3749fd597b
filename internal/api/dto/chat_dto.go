package dto

import (
	"time"

	"github.com/flamecloud/flamecloud-api/internal/domain"
)

// SendMessageRequest payload. ReceiverID may be empty for non-admin senders;
// the service then routes to an admin.
type SendMessageRequest struct {
	ReceiverID string `json:"receiver_id"`
	Message    string `json:"message"`
}

// ChatMessageResponse response.
type ChatMessageResponse struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Message    string    `json:"message"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

// ChatPeerResponse pairs a user with the admin's unread count for them.
type ChatPeerResponse struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Avatar      string `json:"avatar,omitempty"`
	UnreadCount int64  `json:"unread_count"`
}

// UnreadCountResponse response.
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

// NewChatMessageResponse maps a domain message.
func NewChatMessageResponse(msg *domain.ChatMessage) ChatMessageResponse {
	return ChatMessageResponse{
		ID:         msg.ID,
		SenderID:   msg.SenderID,
		ReceiverID: msg.ReceiverID,
		Message:    msg.Message,
		IsRead:     msg.IsRead,
		CreatedAt:  msg.CreatedAt,
	}
}

// NewChatPeerResponse maps a domain peer.
func NewChatPeerResponse(peer *domain.ChatPeer) ChatPeerResponse {
	return ChatPeerResponse{
		UserID:      peer.UserID,
		Username:    peer.Username,
		Email:       peer.Email,
		Avatar:      peer.Avatar,
		UnreadCount: peer.UnreadCount,
	}
}
