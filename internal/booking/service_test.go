package booking

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shareit-go/shareit-server/internal/item"
	"github.com/shareit-go/shareit-server/internal/user"
)

// fakeRepo is an in-memory Repository. The list methods record the window
// they were called with so tests can pin the pagination quirk.
type fakeRepo struct {
	bookings map[int64]*Booking
	nextID   int64

	lastState  State
	lastLimit  uint64
	lastOffset uint64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{bookings: make(map[int64]*Booking), nextID: 1}
}

func (r *fakeRepo) Create(_ context.Context, b *Booking) error {
	b.ID = r.nextID
	r.nextID++
	saved := *b
	r.bookings[saved.ID] = &saved
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id int64, status Status) error {
	b, ok := r.bookings[id]
	if !ok {
		return ErrNotFound
	}
	b.Status = status
	return nil
}

func (r *fakeRepo) ListByBooker(_ context.Context, bookerID int64, state State, now time.Time, limit, offset uint64) ([]*Booking, error) {
	r.lastState, r.lastLimit, r.lastOffset = state, limit, offset
	var out []*Booking
	for _, b := range r.bookings {
		if b.BookerID == bookerID && matches(b, state, now) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListByOwner(_ context.Context, ownerID int64, state State, now time.Time, limit, offset uint64) ([]*Booking, error) {
	r.lastState, r.lastLimit, r.lastOffset = state, limit, offset
	var out []*Booking
	for _, b := range r.bookings {
		if b.ItemOwnerID == ownerID && matches(b, state, now) {
			out = append(out, b)
		}
	}
	return out, nil
}

func matches(b *Booking, state State, now time.Time) bool {
	switch state {
	case StateCurrent:
		return !b.Start.After(now) && !b.End.Before(now)
	case StateFuture:
		return b.Start.After(now)
	case StatePast:
		return b.End.Before(now)
	case StateWaiting:
		return b.Status == StatusWaiting
	case StateRejected:
		return b.Status == StatusRejected
	default:
		return true
	}
}

func (r *fakeRepo) LastCompleted(context.Context, int64, time.Time) (*item.BookingSnapshot, error) {
	return nil, nil
}

func (r *fakeRepo) NextUpcoming(context.Context, int64, time.Time) (*item.BookingSnapshot, error) {
	return nil, nil
}

func (r *fakeRepo) HasFinishedRental(context.Context, int64, int64, time.Time) (bool, error) {
	return false, nil
}

type fakeUsers struct {
	users map[int64]*user.User
}

func (f *fakeUsers) GetUserOrNotFound(_ context.Context, id int64) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

type fakeItems struct {
	items map[int64]*item.Item
}

func (f *fakeItems) GetItemOrNotFound(_ context.Context, id int64) (*item.Item, error) {
	i, ok := f.items[id]
	if !ok {
		return nil, item.ErrNotFound
	}
	return i, nil
}

type fixture struct {
	repo    *fakeRepo
	service Service
	now     time.Time
}

// newFixture sets up item 1 owned by user 1 (available) and item 2 owned by
// user 2 (unavailable), with users 1-3 existing.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	repo := newFakeRepo()
	users := &fakeUsers{users: map[int64]*user.User{
		1: {ID: 1, Name: "owner", Email: "owner@example.com"},
		2: {ID: 2, Name: "neighbor", Email: "neighbor@example.com"},
		3: {ID: 3, Name: "booker", Email: "booker@example.com"},
	}}
	items := &fakeItems{items: map[int64]*item.Item{
		1: {ID: 1, OwnerID: 1, Name: "drill", Available: true},
		2: {ID: 2, OwnerID: 2, Name: "ladder", Available: false},
	}}

	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	svc := NewService(repo, items, users, zerolog.Nop()).(*service)
	svc.now = func() time.Time { return now }

	return &fixture{repo: repo, service: svc, now: now}
}

func (f *fixture) createWaiting(t *testing.T, bookerID int64) *Booking {
	t.Helper()
	b, err := f.service.Create(context.Background(), bookerID, CreateRequest{
		ItemID: 1,
		Start:  f.now.Add(24 * time.Hour),
		End:    f.now.Add(48 * time.Hour),
	})
	require.NoError(t, err)
	return b
}

func TestCreateBooking(t *testing.T) {
	f := newFixture(t)

	b := f.createWaiting(t, 3)

	assert.Equal(t, StatusWaiting, b.Status)
	assert.Equal(t, int64(3), b.BookerID)
	assert.Equal(t, int64(1), b.ItemID)
	assert.Equal(t, "drill", b.ItemName)
	assert.Equal(t, int64(1), b.ItemOwnerID)
}

func TestCreateBookingUnknownItem(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Create(context.Background(), 3, CreateRequest{ItemID: 99, Start: f.now, End: f.now.Add(time.Hour)})
	assert.ErrorIs(t, err, item.ErrNotFound)
}

func TestCreateBookingUnknownUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Create(context.Background(), 99, CreateRequest{ItemID: 1, Start: f.now, End: f.now.Add(time.Hour)})
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestCreateBookingUnavailableItem(t *testing.T) {
	f := newFixture(t)

	// Unavailable always fails regardless of dates or requester.
	_, err := f.service.Create(context.Background(), 3, CreateRequest{
		ItemID: 2,
		Start:  f.now.Add(time.Hour),
		End:    f.now.Add(2 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrItemUnavailable)
}

func TestCreateBookingSelfBooking(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Create(context.Background(), 1, CreateRequest{
		ItemID: 1,
		Start:  f.now.Add(time.Hour),
		End:    f.now.Add(2 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrSelfBooking)
}

func TestCreateBookingTimeRange(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Create(context.Background(), 3, CreateRequest{
		ItemID: 1,
		Start:  f.now.Add(2 * time.Hour),
		End:    f.now.Add(time.Hour),
	})
	assert.ErrorIs(t, err, ErrStartAfterEnd)

	// end == start is accepted: the check is strict-before only.
	instant := f.now.Add(time.Hour)
	b, err := f.service.Create(context.Background(), 3, CreateRequest{ItemID: 1, Start: instant, End: instant})
	require.NoError(t, err)
	assert.Equal(t, StatusWaiting, b.Status)
}

func TestSetApproval(t *testing.T) {
	f := newFixture(t)
	b := f.createWaiting(t, 3)

	approved, err := f.service.SetApproval(context.Background(), b.ID, 1, true)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, approved.Status)

	stored, err := f.repo.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, stored.Status)
}

func TestSetApprovalReject(t *testing.T) {
	f := newFixture(t)
	b := f.createWaiting(t, 3)

	rejected, err := f.service.SetApproval(context.Background(), b.ID, 1, false)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, rejected.Status)
}

func TestSetApprovalAlreadyApproved(t *testing.T) {
	f := newFixture(t)
	b := f.createWaiting(t, 3)

	_, err := f.service.SetApproval(context.Background(), b.ID, 1, true)
	require.NoError(t, err)

	// A second call is a hard failure even with the same flag.
	_, err = f.service.SetApproval(context.Background(), b.ID, 1, true)
	assert.ErrorIs(t, err, ErrAlreadyApproved)

	// Flipping an approved booking to rejected is just as forbidden.
	_, err = f.service.SetApproval(context.Background(), b.ID, 1, false)
	assert.ErrorIs(t, err, ErrAlreadyApproved)
}

func TestSetApprovalRejectedIsFinal(t *testing.T) {
	f := newFixture(t)
	b := f.createWaiting(t, 3)

	_, err := f.service.SetApproval(context.Background(), b.ID, 1, false)
	require.NoError(t, err)

	// The status transitions exactly once; a rejected booking cannot be
	// approved afterwards.
	_, err = f.service.SetApproval(context.Background(), b.ID, 1, true)
	assert.ErrorIs(t, err, ErrAlreadyDecided)
}

func TestSetApprovalNotOwner(t *testing.T) {
	f := newFixture(t)
	b := f.createWaiting(t, 3)

	// Neither the booker nor a bystander may approve.
	_, err := f.service.SetApproval(context.Background(), b.ID, 3, true)
	assert.ErrorIs(t, err, ErrNotOwner)
	_, err = f.service.SetApproval(context.Background(), b.ID, 2, true)
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestSetApprovalUnknownBooking(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.SetApproval(context.Background(), 42, 1, true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetByID(t *testing.T) {
	f := newFixture(t)
	b := f.createWaiting(t, 3)

	// Booker and item owner may read the booking.
	got, err := f.service.GetByID(context.Background(), b.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	_, err = f.service.GetByID(context.Background(), b.ID, 1)
	require.NoError(t, err)

	// Anyone else gets a not-found, not a permission error.
	_, err = f.service.GetByID(context.Background(), b.ID, 2)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestListByBookerUnknownState(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.ListByBooker(context.Background(), 3, "NONSENSE", 0, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown state: NONSENSE")
}

func TestListByBookerStates(t *testing.T) {
	f := newFixture(t)
	b := f.createWaiting(t, 3)

	waiting, err := f.service.ListByBooker(context.Background(), 3, "WAITING", 0, 10)
	require.NoError(t, err)
	require.Len(t, waiting, 1)
	assert.Equal(t, b.ID, waiting[0].ID)

	future, err := f.service.ListByBooker(context.Background(), 3, "FUTURE", 0, 10)
	require.NoError(t, err)
	assert.Len(t, future, 1)

	past, err := f.service.ListByBooker(context.Background(), 3, "PAST", 0, 10)
	require.NoError(t, err)
	assert.Empty(t, past)

	// After approval the WAITING view empties while ALL keeps the booking.
	_, err = f.service.SetApproval(context.Background(), b.ID, 1, true)
	require.NoError(t, err)

	waiting, err = f.service.ListByBooker(context.Background(), 3, "WAITING", 0, 10)
	require.NoError(t, err)
	assert.Empty(t, waiting)

	all, err := f.service.ListByBooker(context.Background(), 3, "ALL", 0, 10)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestListCurrentIgnoresStatus(t *testing.T) {
	f := newFixture(t)

	// A WAITING booking whose window contains now still counts as CURRENT.
	b, err := f.service.Create(context.Background(), 3, CreateRequest{
		ItemID: 1,
		Start:  f.now.Add(-time.Hour),
		End:    f.now.Add(time.Hour),
	})
	require.NoError(t, err)
	require.Equal(t, StatusWaiting, b.Status)

	current, err := f.service.ListByOwner(context.Background(), 1, "CURRENT", 0, 10)
	require.NoError(t, err)
	require.Len(t, current, 1)
	assert.Equal(t, b.ID, current[0].ID)
}

func TestListPaginationWindow(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.ListByBooker(context.Background(), 3, "ALL", 20, 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), f.repo.lastLimit)
	assert.Equal(t, uint64(20), f.repo.lastOffset)

	// A from that is not a multiple of size snaps back to the start of its
	// page: from=25, size=10 queries offset 20, not 25.
	_, err = f.service.ListByBooker(context.Background(), 3, "ALL", 25, 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(20), f.repo.lastOffset)
}

func TestListUnknownUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.ListByBooker(context.Background(), 99, "ALL", 0, 10)
	assert.ErrorIs(t, err, user.ErrNotFound)
	_, err = f.service.ListByOwner(context.Background(), 99, "ALL", 0, 10)
	assert.ErrorIs(t, err, user.ErrNotFound)
}
