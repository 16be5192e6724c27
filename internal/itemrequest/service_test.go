package itemrequest

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shareit-go/shareit-server/internal/user"
)

type fakeRepo struct {
	requests map[int64]*ItemRequest
	replies  map[int64][]Reply
	nextID   int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{requests: map[int64]*ItemRequest{}, replies: map[int64][]Reply{}, nextID: 1}
}

func (r *fakeRepo) Create(_ context.Context, req *ItemRequest) error {
	req.ID = r.nextID
	r.nextID++
	clone := *req
	r.requests[req.ID] = &clone
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*ItemRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *req
	return &clone, nil
}

func (r *fakeRepo) ListByRequester(_ context.Context, requesterID int64) ([]*ItemRequest, error) {
	return r.collect(func(req *ItemRequest) bool { return req.RequesterID == requesterID }, 0, 0), nil
}

func (r *fakeRepo) ListOthers(_ context.Context, requesterID int64, limit, offset uint64) ([]*ItemRequest, error) {
	return r.collect(func(req *ItemRequest) bool { return req.RequesterID != requesterID }, limit, offset), nil
}

func (r *fakeRepo) ListReplies(_ context.Context, requestID int64) ([]Reply, error) {
	return r.replies[requestID], nil
}

// collect returns matching requests newest first, like the store does.
func (r *fakeRepo) collect(match func(*ItemRequest) bool, limit, offset uint64) []*ItemRequest {
	var out []*ItemRequest
	for _, req := range r.requests {
		if match(req) {
			clone := *req
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Created.After(out[j].Created) })

	if limit == 0 {
		return out
	}
	if offset >= uint64(len(out)) {
		return nil
	}
	out = out[offset:]
	if uint64(len(out)) > limit {
		out = out[:limit]
	}
	return out
}

type fakeUsers struct {
	known map[int64]bool
}

func (f *fakeUsers) Create(context.Context, user.CreateRequest) (*user.User, error) { return nil, nil }
func (f *fakeUsers) Update(context.Context, int64, user.UpdateRequest) (*user.User, error) {
	return nil, nil
}
func (f *fakeUsers) List(context.Context) ([]*user.User, error) { return nil, nil }
func (f *fakeUsers) Delete(context.Context, int64) error        { return nil }

func (f *fakeUsers) GetUserOrNotFound(_ context.Context, id int64) (*user.User, error) {
	if !f.known[id] {
		return nil, user.ErrNotFound
	}
	return &user.User{ID: id}, nil
}

type fixture struct {
	repo    *fakeRepo
	clock   time.Time
	service *service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repo := newFakeRepo()
	users := &fakeUsers{known: map[int64]bool{1: true, 2: true, 3: true}}

	f := &fixture{repo: repo, clock: time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)}
	svc := NewService(repo, users, zerolog.Nop()).(*service)
	svc.now = func() time.Time {
		// Each creation gets a strictly later timestamp.
		f.clock = f.clock.Add(time.Minute)
		return f.clock
	}
	f.service = svc
	return f
}

func TestAddRequest(t *testing.T) {
	f := newFixture(t)

	req, err := f.service.Add(context.Background(), 1, "  need a drill  ")
	require.NoError(t, err)
	assert.Equal(t, "need a drill", req.Description)
	assert.Equal(t, int64(1), req.RequesterID)
	assert.False(t, req.Created.IsZero())
}

func TestAddRequestEmptyDescription(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Add(context.Background(), 1, "   ")
	assert.ErrorIs(t, err, ErrDescriptionMissing)
}

func TestAddRequestUnknownUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Add(context.Background(), 99, "need a drill")
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestListOwnNewestFirst(t *testing.T) {
	f := newFixture(t)
	first, err := f.service.Add(context.Background(), 1, "need a drill")
	require.NoError(t, err)
	second, err := f.service.Add(context.Background(), 1, "need a ladder")
	require.NoError(t, err)
	_, err = f.service.Add(context.Background(), 2, "need a saw")
	require.NoError(t, err)

	own, err := f.service.ListOwn(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, own, 2)
	assert.Equal(t, second.ID, own[0].ID)
	assert.Equal(t, first.ID, own[1].ID)
}

func TestListOthersExcludesOwn(t *testing.T) {
	f := newFixture(t)
	_, err := f.service.Add(context.Background(), 1, "need a drill")
	require.NoError(t, err)
	other, err := f.service.Add(context.Background(), 2, "need a saw")
	require.NoError(t, err)

	others, err := f.service.ListOthers(context.Background(), 1, 0, 10)
	require.NoError(t, err)
	require.Len(t, others, 1)
	assert.Equal(t, other.ID, others[0].ID)
}

func TestGetByIDWithReplies(t *testing.T) {
	f := newFixture(t)
	req, err := f.service.Add(context.Background(), 1, "need a drill")
	require.NoError(t, err)
	f.repo.replies[req.ID] = []Reply{
		{ID: 7, Name: "drill", Available: true, OwnerID: 2, RequestID: req.ID},
	}

	// Any known user may read a request, not just its requester.
	d, err := f.service.GetByID(context.Background(), req.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, "need a drill", d.Description)
	require.Len(t, d.Replies, 1)
	assert.Equal(t, int64(7), d.Replies[0].ID)
}

func TestGetByIDUnknownRequest(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.GetByID(context.Background(), 42, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetByIDUnknownUser(t *testing.T) {
	f := newFixture(t)
	req, err := f.service.Add(context.Background(), 1, "need a drill")
	require.NoError(t, err)

	_, err = f.service.GetByID(context.Background(), req.ID, 99)
	assert.ErrorIs(t, err, user.ErrNotFound)
}
