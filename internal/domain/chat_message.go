package domain

import "time"

// ChatMessage is one directed message between an admin and a non-admin user.
// IsRead transitions false→true exactly once, when the receiver loads the
// conversation; it is never reset.
type ChatMessage struct {
	ID         string
	SenderID   string
	ReceiverID string
	Message    string
	IsRead     bool
	CreatedAt  time.Time
}

// ChatPeer is a non-admin user paired with the count of their messages the
// requesting admin has not read yet.
type ChatPeer struct {
	UserID      string
	Username    string
	Email       string
	Avatar      string
	UnreadCount int64
}
