package booking

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shareit-go/shareit-server/internal/item"
	"github.com/shareit-go/shareit-server/internal/pkg/pagequery"
	"github.com/shareit-go/shareit-server/internal/user"
)

// UserDirectory resolves acting users. Satisfied by the user service.
type UserDirectory interface {
	GetUserOrNotFound(ctx context.Context, id int64) (*user.User, error)
}

// ItemCatalog resolves booked items. Satisfied by the item service.
type ItemCatalog interface {
	GetItemOrNotFound(ctx context.Context, id int64) (*item.Item, error)
}

// CreateRequest carries the fields of a booking request.
type CreateRequest struct {
	ItemID int64
	Start  time.Time
	End    time.Time
}

// Service is the booking admission engine: it decides whether a booking
// request is accepted, drives the WAITING -> APPROVED/REJECTED transition,
// and answers the temporal list queries.
type Service interface {
	Create(ctx context.Context, bookerID int64, req CreateRequest) (*Booking, error)
	SetApproval(ctx context.Context, bookingID, actingUserID int64, approved bool) (*Booking, error)
	GetByID(ctx context.Context, bookingID, actingUserID int64) (*Booking, error)
	ListByBooker(ctx context.Context, bookerID int64, state string, from, size int) ([]*Booking, error)
	ListByOwner(ctx context.Context, ownerID int64, state string, from, size int) ([]*Booking, error)
}

type service struct {
	repo  Repository
	items ItemCatalog
	users UserDirectory
	log   zerolog.Logger
	now   func() time.Time
}

// NewService creates a new booking Service.
func NewService(repo Repository, items ItemCatalog, users UserDirectory, log zerolog.Logger) Service {
	return &service{
		repo:  repo,
		items: items,
		users: users,
		log:   log,
		now:   time.Now,
	}
}

// Create admits a booking request. The checks run in a fixed order and the
// first failure wins; clients depend on which error class each check maps
// to, in particular the self-booking case being a 404 rather than a 403.
func (s *service) Create(ctx context.Context, bookerID int64, req CreateRequest) (*Booking, error) {
	i, err := s.items.GetItemOrNotFound(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	booker, err := s.users.GetUserOrNotFound(ctx, bookerID)
	if err != nil {
		return nil, err
	}

	if !i.Available {
		return nil, ErrItemUnavailable
	}
	if booker.ID == i.OwnerID {
		return nil, ErrSelfBooking
	}
	// Strict before-check: a booking that starts and ends at the same
	// instant is accepted.
	if req.End.Before(req.Start) {
		return nil, ErrStartAfterEnd
	}

	b := &Booking{
		Start:       req.Start,
		End:         req.End,
		ItemID:      i.ID,
		BookerID:    booker.ID,
		Status:      StatusWaiting,
		ItemName:    i.Name,
		ItemOwnerID: i.OwnerID,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	s.log.Info().Int64("booking_id", b.ID).Int64("item_id", i.ID).Int64("booker_id", booker.ID).Msg("booking created")

	return b, nil
}

// SetApproval moves a WAITING booking to APPROVED or REJECTED. A booking
// that is already APPROVED can never be touched again, not even to reject
// it; that is a hard failure, not a no-op.
func (s *service) SetApproval(ctx context.Context, bookingID, actingUserID int64, approved bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status == StatusApproved {
		return nil, ErrAlreadyApproved
	}
	if b.Status != StatusWaiting {
		return nil, ErrAlreadyDecided
	}
	actor, err := s.users.GetUserOrNotFound(ctx, actingUserID)
	if err != nil {
		return nil, err
	}
	if b.ItemOwnerID != actor.ID {
		return nil, ErrNotOwner
	}

	if approved {
		b.Status = StatusApproved
	} else {
		b.Status = StatusRejected
	}
	if err := s.repo.UpdateStatus(ctx, b.ID, b.Status); err != nil {
		return nil, err
	}
	s.log.Info().Int64("booking_id", b.ID).Str("status", string(b.Status)).Msg("booking status changed")

	return b, nil
}

// GetByID returns a booking to its booker or to the owner of the booked
// item; everyone else gets a not-found.
func (s *service) GetByID(ctx context.Context, bookingID, actingUserID int64) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.GetUserOrNotFound(ctx, actingUserID); err != nil {
		return nil, err
	}

	if b.BookerID != actingUserID && b.ItemOwnerID != actingUserID {
		return nil, ErrAccessDenied
	}
	return b, nil
}

func (s *service) ListByBooker(ctx context.Context, bookerID int64, state string, from, size int) ([]*Booking, error) {
	if _, err := s.users.GetUserOrNotFound(ctx, bookerID); err != nil {
		return nil, err
	}
	st, err := ParseState(state)
	if err != nil {
		return nil, err
	}

	limit, offset := pagequery.Window(from, size)
	return s.repo.ListByBooker(ctx, bookerID, st, s.now(), limit, offset)
}

func (s *service) ListByOwner(ctx context.Context, ownerID int64, state string, from, size int) ([]*Booking, error) {
	if _, err := s.users.GetUserOrNotFound(ctx, ownerID); err != nil {
		return nil, err
	}
	st, err := ParseState(state)
	if err != nil {
		return nil, err
	}

	limit, offset := pagequery.Window(from, size)
	return s.repo.ListByOwner(ctx, ownerID, st, s.now(), limit, offset)
}
