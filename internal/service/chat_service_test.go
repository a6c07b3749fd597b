package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flamecloud/flamecloud-api/internal/domain"
	apperrors "github.com/flamecloud/flamecloud-api/pkg/util"
)

func newChatFixture(t *testing.T) (*ChatService, *fakeUserRepo, *fakeMessageRepo) {
	t.Helper()
	users := newFakeUserRepo()
	messages := newFakeMessageRepo(users)
	return NewChatService(messages, users, nil, nil), users, messages
}

func TestSendMessageResolvesAdminWhenReceiverOmitted(t *testing.T) {
	svc, users, _ := newChatFixture(t)
	admin := users.add(&domain.User{Username: "admin", Email: "admin@example.com", IsAdmin: true})
	user := users.add(&domain.User{Username: "customer", Email: "customer@example.com"})

	msg, err := svc.SendMessage(context.Background(), user, "", "hello, I need help")
	require.NoError(t, err)
	assert.Equal(t, user.ID, msg.SenderID)
	assert.Equal(t, admin.ID, msg.ReceiverID)
	assert.False(t, msg.IsRead)
}

func TestSendMessageNoAdminAvailable(t *testing.T) {
	svc, users, _ := newChatFixture(t)
	user := users.add(&domain.User{Username: "customer", Email: "customer@example.com"})

	_, err := svc.SendMessage(context.Background(), user, "", "anyone there?")
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "NO_ADMIN_AVAILABLE", domainErr.Code)
	assert.Equal(t, http.StatusServiceUnavailable, domainErr.HTTPStatus)
}

func TestSendMessageAdminMustNameReceiver(t *testing.T) {
	svc, users, _ := newChatFixture(t)
	admin := users.add(&domain.User{Username: "admin", Email: "admin@example.com", IsAdmin: true})

	_, err := svc.SendMessage(context.Background(), admin, "", "who am I talking to?")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestSendMessageRejectsSameRolePair(t *testing.T) {
	svc, users, _ := newChatFixture(t)
	alice := users.add(&domain.User{Username: "alice", Email: "alice@example.com"})
	bob := users.add(&domain.User{Username: "bob", Email: "bob@example.com"})
	admin1 := users.add(&domain.User{Username: "admin1", Email: "admin1@example.com", IsAdmin: true})
	admin2 := users.add(&domain.User{Username: "admin2", Email: "admin2@example.com", IsAdmin: true})

	_, err := svc.SendMessage(context.Background(), alice, bob.ID, "hi bob")
	require.Error(t, err)
	assert.Equal(t, "INVARIANT_VIOLATION", apperrors.ToDomainError(err).Code)

	_, err = svc.SendMessage(context.Background(), admin1, admin2.ID, "hi admin")
	require.Error(t, err)
	assert.Equal(t, "INVARIANT_VIOLATION", apperrors.ToDomainError(err).Code)
}

func TestSendMessageUnknownReceiver(t *testing.T) {
	svc, users, _ := newChatFixture(t)
	user := users.add(&domain.User{Username: "customer", Email: "customer@example.com"})

	_, err := svc.SendMessage(context.Background(), user, "missing-id", "hello?")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestSendMessageRejectsEmptyText(t *testing.T) {
	svc, users, _ := newChatFixture(t)
	users.add(&domain.User{Username: "admin", Email: "admin@example.com", IsAdmin: true})
	user := users.add(&domain.User{Username: "customer", Email: "customer@example.com"})

	_, err := svc.SendMessage(context.Background(), user, "", "   ")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestLoadConversationMarksRead(t *testing.T) {
	svc, users, _ := newChatFixture(t)
	admin := users.add(&domain.User{Username: "admin", Email: "admin@example.com", IsAdmin: true})
	user := users.add(&domain.User{Username: "customer", Email: "customer@example.com"})

	_, err := svc.SendMessage(context.Background(), user, admin.ID, "first")
	require.NoError(t, err)
	_, err = svc.SendMessage(context.Background(), user, admin.ID, "second")
	require.NoError(t, err)

	unread, err := svc.UnreadCount(context.Background(), admin.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)

	// The first load already returns the messages flagged read.
	msgs, err := svc.LoadConversation(context.Background(), admin, user.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "first", msgs[0].Message)
	assert.Equal(t, "second", msgs[1].Message)
	for _, msg := range msgs {
		assert.True(t, msg.IsRead)
	}

	unread, err = svc.UnreadCount(context.Background(), admin.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), unread)

	// A second load is idempotent.
	msgs, err = svc.LoadConversation(context.Background(), admin, user.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	for _, msg := range msgs {
		assert.True(t, msg.IsRead)
	}
}

func TestLoadConversationLeavesOwnSentUnreadAlone(t *testing.T) {
	svc, users, _ := newChatFixture(t)
	admin := users.add(&domain.User{Username: "admin", Email: "admin@example.com", IsAdmin: true})
	user := users.add(&domain.User{Username: "customer", Email: "customer@example.com"})

	_, err := svc.SendMessage(context.Background(), admin, user.ID, "are you there?")
	require.NoError(t, err)

	// Admin reloading the thread must not mark their own outbound message read.
	msgs, err := svc.LoadConversation(context.Background(), admin, user.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.False(t, msgs[0].IsRead)

	unread, err := svc.UnreadCount(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)
}

func TestLoadConversationForbidsSameRolePair(t *testing.T) {
	svc, users, _ := newChatFixture(t)
	alice := users.add(&domain.User{Username: "alice", Email: "alice@example.com"})
	bob := users.add(&domain.User{Username: "bob", Email: "bob@example.com"})

	_, err := svc.LoadConversation(context.Background(), alice, bob.ID)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)
}

func TestListPeersAdminOnly(t *testing.T) {
	svc, users, _ := newChatFixture(t)
	user := users.add(&domain.User{Username: "customer", Email: "customer@example.com"})

	_, err := svc.ListPeers(context.Background(), user)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)
}

func TestListPeersReturnsUnreadCounts(t *testing.T) {
	svc, users, _ := newChatFixture(t)
	admin := users.add(&domain.User{Username: "admin", Email: "admin@example.com", IsAdmin: true})
	quiet := users.add(&domain.User{Username: "quiet", Email: "quiet@example.com"})
	noisy := users.add(&domain.User{Username: "noisy", Email: "noisy@example.com"})

	for i := 0; i < 3; i++ {
		_, err := svc.SendMessage(context.Background(), noisy, admin.ID, "ping")
		require.NoError(t, err)
	}

	peers, err := svc.ListPeers(context.Background(), admin)
	require.NoError(t, err)
	require.Len(t, peers, 2)

	assert.Equal(t, noisy.ID, peers[0].UserID)
	assert.Equal(t, int64(3), peers[0].UnreadCount)
	assert.Equal(t, quiet.ID, peers[1].UserID)
	assert.Equal(t, int64(0), peers[1].UnreadCount)
}

func TestUnreadCountFallsBackToStore(t *testing.T) {
	svc, users, _ := newChatFixture(t)
	admin := users.add(&domain.User{Username: "admin", Email: "admin@example.com", IsAdmin: true})
	user := users.add(&domain.User{Username: "customer", Email: "customer@example.com"})

	_, err := svc.SendMessage(context.Background(), admin, user.ID, "welcome aboard")
	require.NoError(t, err)

	count, err := svc.UnreadCount(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
