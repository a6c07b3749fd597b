package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flamecloud/flamecloud-api/internal/domain"
	"github.com/flamecloud/flamecloud-api/internal/events"
	apperrors "github.com/flamecloud/flamecloud-api/pkg/util"
)

func newAdminFixture(t *testing.T) (*AdminService, *fakeUserRepo, *fakeTicketRepo, *fakeMessageRepo, *recordingDispatcher) {
	t.Helper()
	users := newFakeUserRepo()
	tickets := newFakeTicketRepo(users)
	messages := newFakeMessageRepo(users)
	dispatcher := &recordingDispatcher{}
	svc := NewAdminService(AdminDependencies{
		UserRepo:    users,
		TicketRepo:  tickets,
		MessageRepo: messages,
		Dispatcher:  dispatcher,
	})
	return svc, users, tickets, messages, dispatcher
}

func TestAdminOperationsRequireAdmin(t *testing.T) {
	svc, users, _, _, _ := newAdminFixture(t)
	user := users.add(&domain.User{Username: "customer", Email: "customer@example.com"})

	_, err := svc.ListUsers(context.Background(), user)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)

	_, err = svc.UpdateUser(context.Background(), user, user.ID, UserUpdateInput{})
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)

	err = svc.DeleteUser(context.Background(), user, user.ID)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)

	_, err = svc.GetOverview(context.Background(), user)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)
}

func TestDeleteUserRefusesAdminTarget(t *testing.T) {
	svc, users, _, _, _ := newAdminFixture(t)
	admin := users.add(&domain.User{Username: "admin", Email: "admin@example.com", IsAdmin: true})
	other := users.add(&domain.User{Username: "other-admin", Email: "other@example.com", IsAdmin: true})

	err := svc.DeleteUser(context.Background(), admin, other.ID)
	require.Error(t, err)
	assert.Equal(t, "INVARIANT_VIOLATION", apperrors.ToDomainError(err).Code)

	// Target must still exist.
	_, err = users.GetByID(context.Background(), other.ID)
	require.NoError(t, err)
}

func TestDeleteUserUnknownTarget(t *testing.T) {
	svc, users, _, _, _ := newAdminFixture(t)
	admin := users.add(&domain.User{Username: "admin", Email: "admin@example.com", IsAdmin: true})

	err := svc.DeleteUser(context.Background(), admin, "missing-id")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestDeleteUserRemovesAccountAndPublishes(t *testing.T) {
	svc, users, _, _, dispatcher := newAdminFixture(t)
	admin := users.add(&domain.User{Username: "admin", Email: "admin@example.com", IsAdmin: true})
	target := users.add(&domain.User{Username: "customer", Email: "customer@example.com"})

	err := svc.DeleteUser(context.Background(), admin, target.ID)
	require.NoError(t, err)

	_, err = users.GetByID(context.Background(), target.ID)
	require.Error(t, err)

	published := dispatcher.published()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventUserDeleted, published[0].Type)
	payload, ok := published[0].Payload.(events.UserDeletedPayload)
	require.True(t, ok)
	assert.Equal(t, target.ID, payload.UserID)
}

func TestUpdateUserCannotRevokeOwnAdminRole(t *testing.T) {
	svc, users, _, _, _ := newAdminFixture(t)
	admin := users.add(&domain.User{Username: "admin", Email: "admin@example.com", IsAdmin: true})

	demote := false
	_, err := svc.UpdateUser(context.Background(), admin, admin.ID, UserUpdateInput{IsAdmin: &demote})
	require.Error(t, err)
	assert.Equal(t, "INVARIANT_VIOLATION", apperrors.ToDomainError(err).Code)
}

func TestUpdateUserPromotesAccount(t *testing.T) {
	svc, users, _, _, _ := newAdminFixture(t)
	admin := users.add(&domain.User{Username: "admin", Email: "admin@example.com", IsAdmin: true})
	target := users.add(&domain.User{Username: "customer", Email: "customer@example.com"})

	promote := true
	name := "promoted"
	updated, err := svc.UpdateUser(context.Background(), admin, target.ID, UserUpdateInput{
		Username: &name,
		IsAdmin:  &promote,
	})
	require.NoError(t, err)
	assert.True(t, updated.IsAdmin)
	assert.Equal(t, "promoted", updated.Username)
}

func TestUpdateUserValidation(t *testing.T) {
	svc, users, _, _, _ := newAdminFixture(t)
	admin := users.add(&domain.User{Username: "admin", Email: "admin@example.com", IsAdmin: true})
	target := users.add(&domain.User{Username: "customer", Email: "customer@example.com"})

	empty := "   "
	_, err := svc.UpdateUser(context.Background(), admin, target.ID, UserUpdateInput{Username: &empty})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestGetOverviewCounts(t *testing.T) {
	svc, users, tickets, messages, _ := newAdminFixture(t)
	admin := users.add(&domain.User{Username: "admin", Email: "admin@example.com", IsAdmin: true})
	user := users.add(&domain.User{Username: "customer", Email: "customer@example.com"})

	require.NoError(t, tickets.Create(context.Background(), &domain.Ticket{
		UserID:  user.ID,
		Subject: "s",
		Message: "m",
		Status:  domain.TicketStatusPending,
	}))
	require.NoError(t, messages.Create(context.Background(), &domain.ChatMessage{
		SenderID:   user.ID,
		ReceiverID: admin.ID,
		Message:    "hello",
	}))

	overview, err := svc.GetOverview(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, int64(2), overview.Users)
	assert.Equal(t, int64(1), overview.Tickets)
	assert.Equal(t, int64(1), overview.UnreadMessage)
}
