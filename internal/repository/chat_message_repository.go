package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flamecloud/flamecloud-api/internal/domain"
)

// ChatMessageRepository manages directed user↔admin messages.
type ChatMessageRepository interface {
	Create(ctx context.Context, msg *domain.ChatMessage) error
	// ListConversation returns both directions between the two users,
	// oldest first.
	ListConversation(ctx context.Context, viewerID, otherID string) ([]domain.ChatMessage, error)
	// MarkRead flips is_read on messages sent by senderID to receiverID.
	// Returns the number of rows flipped.
	MarkRead(ctx context.Context, receiverID, senderID string) (int64, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	UnreadTotal(ctx context.Context) (int64, error)
	// PeersWithUnread lists every non-admin user together with the count of
	// their unread messages addressed to the given admin, as a single
	// grouped aggregate.
	PeersWithUnread(ctx context.Context, adminID string) ([]domain.ChatPeer, error)
}

type chatMessageRepository struct {
	pool *pgxpool.Pool
}

// NewChatMessageRepository builds repository.
func NewChatMessageRepository(pool *pgxpool.Pool) ChatMessageRepository {
	return &chatMessageRepository{pool: pool}
}

func (r *chatMessageRepository) Create(ctx context.Context, msg *domain.ChatMessage) error {
	const query = `
        INSERT INTO chat_messages (sender_id, receiver_id, message, is_read)
        VALUES ($1, $2, $3, false)
        RETURNING id, is_read, created_at`
	return r.pool.QueryRow(ctx, query,
		msg.SenderID,
		msg.ReceiverID,
		msg.Message,
	).Scan(&msg.ID, &msg.IsRead, &msg.CreatedAt)
}

func (r *chatMessageRepository) ListConversation(ctx context.Context, viewerID, otherID string) ([]domain.ChatMessage, error) {
	const query = `
        SELECT id, sender_id, receiver_id, message, is_read, created_at
        FROM chat_messages
        WHERE (sender_id=$1 AND receiver_id=$2) OR (sender_id=$2 AND receiver_id=$1)
        ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, viewerID, otherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ChatMessage
	for rows.Next() {
		var msg domain.ChatMessage
		if err := rows.Scan(
			&msg.ID,
			&msg.SenderID,
			&msg.ReceiverID,
			&msg.Message,
			&msg.IsRead,
			&msg.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, msg)
	}
	return result, rows.Err()
}

func (r *chatMessageRepository) MarkRead(ctx context.Context, receiverID, senderID string) (int64, error) {
	const query = `
        UPDATE chat_messages SET is_read=true
        WHERE receiver_id=$1 AND sender_id=$2 AND is_read=false`
	cmd, err := r.pool.Exec(ctx, query, receiverID, senderID)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *chatMessageRepository) UnreadCount(ctx context.Context, userID string) (int64, error) {
	const query = `SELECT COUNT(*) FROM chat_messages WHERE receiver_id=$1 AND is_read=false`
	var count int64
	err := r.pool.QueryRow(ctx, query, userID).Scan(&count)
	return count, err
}

func (r *chatMessageRepository) UnreadTotal(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM chat_messages WHERE is_read=false`
	var count int64
	err := r.pool.QueryRow(ctx, query).Scan(&count)
	return count, err
}

func (r *chatMessageRepository) PeersWithUnread(ctx context.Context, adminID string) ([]domain.ChatPeer, error) {
	// One grouped aggregate instead of a count query per user.
	const query = `
        SELECT u.id, u.username, u.email, u.avatar, COUNT(m.id) AS unread
        FROM users u
        LEFT JOIN chat_messages m
            ON m.sender_id = u.id AND m.receiver_id = $1 AND m.is_read = false
        WHERE u.is_admin = false
        GROUP BY u.id, u.username, u.email, u.avatar
        ORDER BY unread DESC, u.username ASC`
	rows, err := r.pool.Query(ctx, query, adminID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ChatPeer
	for rows.Next() {
		var peer domain.ChatPeer
		if err := rows.Scan(
			&peer.UserID,
			&peer.Username,
			&peer.Email,
			&peer.Avatar,
			&peer.UnreadCount,
		); err != nil {
			return nil, err
		}
		result = append(result, peer)
	}
	return result, rows.Err()
}
