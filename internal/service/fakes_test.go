package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/flamecloud/flamecloud-api/internal/domain"
	"github.com/flamecloud/flamecloud-api/internal/events"
)

// fakeUserRepo is an in-memory repository.UserRepository.
type fakeUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*domain.User
	order []string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) add(user *domain.User) *domain.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.ID == "" {
		f.seq++
		user.ID = fmt.Sprintf("user-%03d", f.seq)
	}
	copied := *user
	f.users[copied.ID] = &copied
	f.order = append(f.order, copied.ID)
	return user
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.add(user)
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range f.order {
		if f.users[id].Email == email {
			copied := *f.users[id]
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]domain.User, 0, len(f.order))
	for _, id := range f.order {
		result = append(result, *f.users[id])
	}
	return result, nil
}

func (f *fakeUserRepo) FirstAdmin(_ context.Context) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := append([]string{}, f.order...)
	sort.Strings(ids)
	for _, id := range ids {
		if f.users[id].IsAdmin {
			copied := *f.users[id]
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) DeleteWithDependents(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.users, id)
	for i, existing := range f.order {
		if existing == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

// fakeTicketRepo is an in-memory repository.TicketRepository.
type fakeTicketRepo struct {
	mu      sync.Mutex
	seq     int
	tickets map[string]*domain.Ticket
	owners  *fakeUserRepo
}

func newFakeTicketRepo(owners *fakeUserRepo) *fakeTicketRepo {
	return &fakeTicketRepo{tickets: make(map[string]*domain.Ticket), owners: owners}
}

func (f *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	ticket.ID = fmt.Sprintf("ticket-%03d", f.seq)
	ticket.CreatedAt = time.Now()
	copied := *ticket
	f.tickets[ticket.ID] = &copied
	return nil
}

func (f *fakeTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.tickets[ticket.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Status = ticket.Status
	stored.AdminResponse = ticket.AdminResponse
	return nil
}

func (f *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ticket, ok := f.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *ticket
	return &copied, nil
}

func (f *fakeTicketRepo) ListByUser(_ context.Context, userID string) ([]domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.Ticket
	for _, ticket := range f.tickets {
		if ticket.UserID == userID {
			result = append(result, *ticket)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (f *fakeTicketRepo) ListAllWithOwner(ctx context.Context) ([]domain.TicketWithOwner, error) {
	f.mu.Lock()
	tickets := make([]domain.Ticket, 0, len(f.tickets))
	for _, ticket := range f.tickets {
		tickets = append(tickets, *ticket)
	}
	f.mu.Unlock()

	sort.Slice(tickets, func(i, j int) bool {
		return tickets[i].CreatedAt.After(tickets[j].CreatedAt)
	})

	result := make([]domain.TicketWithOwner, 0, len(tickets))
	for _, ticket := range tickets {
		entry := domain.TicketWithOwner{Ticket: ticket}
		if f.owners != nil {
			if owner, err := f.owners.GetByID(ctx, ticket.UserID); err == nil {
				entry.OwnerUsername = owner.Username
				entry.OwnerEmail = owner.Email
			}
		}
		result = append(result, entry)
	}
	return result, nil
}

func (f *fakeTicketRepo) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.tickets)), nil
}

// fakeMessageRepo is an in-memory repository.ChatMessageRepository.
type fakeMessageRepo struct {
	mu       sync.Mutex
	seq      int
	messages []*domain.ChatMessage
	users    *fakeUserRepo
}

func newFakeMessageRepo(users *fakeUserRepo) *fakeMessageRepo {
	return &fakeMessageRepo{users: users}
}

func (f *fakeMessageRepo) Create(_ context.Context, msg *domain.ChatMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	msg.ID = fmt.Sprintf("msg-%03d", f.seq)
	msg.IsRead = false
	msg.CreatedAt = time.Now().Add(time.Duration(f.seq) * time.Millisecond)
	copied := *msg
	f.messages = append(f.messages, &copied)
	return nil
}

func (f *fakeMessageRepo) ListConversation(_ context.Context, viewerID, otherID string) ([]domain.ChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.ChatMessage
	for _, msg := range f.messages {
		if (msg.SenderID == viewerID && msg.ReceiverID == otherID) ||
			(msg.SenderID == otherID && msg.ReceiverID == viewerID) {
			result = append(result, *msg)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (f *fakeMessageRepo) MarkRead(_ context.Context, receiverID, senderID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var flipped int64
	for _, msg := range f.messages {
		if msg.ReceiverID == receiverID && msg.SenderID == senderID && !msg.IsRead {
			msg.IsRead = true
			flipped++
		}
	}
	return flipped, nil
}

func (f *fakeMessageRepo) UnreadCount(_ context.Context, userID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, msg := range f.messages {
		if msg.ReceiverID == userID && !msg.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeMessageRepo) UnreadTotal(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, msg := range f.messages {
		if !msg.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeMessageRepo) PeersWithUnread(ctx context.Context, adminID string) ([]domain.ChatPeer, error) {
	users, err := f.users.List(ctx)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.ChatPeer
	for _, user := range users {
		if user.IsAdmin {
			continue
		}
		peer := domain.ChatPeer{
			UserID:   user.ID,
			Username: user.Username,
			Email:    user.Email,
			Avatar:   user.Avatar,
		}
		for _, msg := range f.messages {
			if msg.SenderID == user.ID && msg.ReceiverID == adminID && !msg.IsRead {
				peer.UnreadCount++
			}
		}
		result = append(result, peer)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].UnreadCount != result[j].UnreadCount {
			return result[i].UnreadCount > result[j].UnreadCount
		}
		return result[i].Username < result[j].Username
	})
	return result, nil
}

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) published() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event{}, d.events...)
}

// fakeFreePlanRepo is an in-memory repository.FreePlanRepository.
type fakeFreePlanRepo struct {
	mu    sync.Mutex
	seq   int
	plans map[string]*domain.FreePlan
}

func newFakeFreePlanRepo() *fakeFreePlanRepo {
	return &fakeFreePlanRepo{plans: make(map[string]*domain.FreePlan)}
}

func (f *fakeFreePlanRepo) Create(_ context.Context, plan *domain.FreePlan) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	plan.ID = fmt.Sprintf("free-plan-%03d", f.seq)
	copied := *plan
	f.plans[plan.ID] = &copied
	return nil
}

func (f *fakeFreePlanRepo) Update(_ context.Context, plan *domain.FreePlan) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.plans[plan.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *plan
	f.plans[plan.ID] = &copied
	return nil
}

func (f *fakeFreePlanRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.plans[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.plans, id)
	return nil
}

func (f *fakeFreePlanRepo) GetByID(_ context.Context, id string) (*domain.FreePlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	plan, ok := f.plans[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *plan
	return &copied, nil
}

func (f *fakeFreePlanRepo) List(_ context.Context, onlyActive bool) ([]domain.FreePlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.FreePlan
	for _, plan := range f.plans {
		if onlyActive && !plan.Active {
			continue
		}
		result = append(result, *plan)
	}
	return result, nil
}
