package item

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shareit-go/shareit-server/internal/itemrequest"
	"github.com/shareit-go/shareit-server/internal/pkg/pagequery"
	"github.com/shareit-go/shareit-server/internal/user"
)

// CreateRequest carries the fields for a new item listing.
type CreateRequest struct {
	Name        string
	Description string
	Available   bool
	RequestID   *int64
}

// UpdateRequest carries a partial item update; nil fields are left unchanged.
type UpdateRequest struct {
	Name        *string
	Description *string
	Available   *bool
}

// Detail is an item enriched with its comments and, for the owner's view,
// the last and next approved booking of the item. The enrichment is computed
// from current store state on every read, never persisted.
type Detail struct {
	Item
	LastBooking *BookingSnapshot
	NextBooking *BookingSnapshot
	Comments    []Comment
}

// Service defines business logic related to items.
type Service interface {
	Add(ctx context.Context, ownerID int64, req CreateRequest) (*Item, error)
	GetByID(ctx context.Context, itemID, actingUserID int64) (*Detail, error)
	ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]*Detail, error)
	Update(ctx context.Context, itemID, actingUserID int64, req UpdateRequest) (*Item, error)
	Delete(ctx context.Context, itemID int64) error
	Search(ctx context.Context, text string, from, size int) ([]*Item, error)
	AddComment(ctx context.Context, itemID, authorID int64, text string) (*Comment, error)

	// GetItemOrNotFound resolves an item by ID, failing with ErrNotFound if absent.
	GetItemOrNotFound(ctx context.Context, id int64) (*Item, error)
}

type service struct {
	repo     Repository
	users    user.Service
	requests itemrequest.Service
	bookings BookingLookup
	log      zerolog.Logger
	now      func() time.Time
}

// NewService creates a new item Service.
func NewService(repo Repository, users user.Service, requests itemrequest.Service, bookings BookingLookup, log zerolog.Logger) Service {
	return &service{
		repo:     repo,
		users:    users,
		requests: requests,
		bookings: bookings,
		log:      log,
		now:      time.Now,
	}
}

func (s *service) Add(ctx context.Context, ownerID int64, req CreateRequest) (*Item, error) {
	if _, err := s.users.GetUserOrNotFound(ctx, ownerID); err != nil {
		return nil, err
	}
	if req.RequestID != nil {
		if _, err := s.requests.GetItemRequestOrNotFound(ctx, *req.RequestID); err != nil {
			return nil, err
		}
	}

	i := &Item{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
		RequestID:   req.RequestID,
	}
	if err := s.repo.Create(ctx, i); err != nil {
		return nil, err
	}
	s.log.Info().Int64("item_id", i.ID).Int64("owner_id", ownerID).Msg("item created")

	return i, nil
}

func (s *service) GetByID(ctx context.Context, itemID, actingUserID int64) (*Detail, error) {
	if _, err := s.users.GetUserOrNotFound(ctx, actingUserID); err != nil {
		return nil, err
	}
	i, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	// Booking snapshots are shown to the item's owner only.
	return s.enrich(ctx, i, i.OwnerID == actingUserID)
}

func (s *service) ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]*Detail, error) {
	if _, err := s.users.GetUserOrNotFound(ctx, ownerID); err != nil {
		return nil, err
	}

	limit, offset := pagequery.Window(from, size)
	items, err := s.repo.ListByOwner(ctx, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}

	details := make([]*Detail, 0, len(items))
	for _, i := range items {
		d, err := s.enrich(ctx, i, true)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, nil
}

func (s *service) Update(ctx context.Context, itemID, actingUserID int64, req UpdateRequest) (*Item, error) {
	i, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if i.OwnerID != actingUserID {
		return nil, ErrNotOwner
	}

	if req.Name != nil {
		i.Name = *req.Name
	}
	if req.Description != nil {
		i.Description = *req.Description
	}
	if req.Available != nil {
		i.Available = *req.Available
	}

	if err := s.repo.Update(ctx, i); err != nil {
		return nil, err
	}
	s.log.Info().Int64("item_id", i.ID).Msg("item updated")

	return i, nil
}

func (s *service) Delete(ctx context.Context, itemID int64) error {
	if _, err := s.repo.GetByID(ctx, itemID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, itemID); err != nil {
		return err
	}
	s.log.Info().Int64("item_id", itemID).Msg("item deleted")
	return nil
}

func (s *service) Search(ctx context.Context, text string, from, size int) ([]*Item, error) {
	// An empty query returns an empty list, not an error.
	if strings.TrimSpace(text) == "" {
		return []*Item{}, nil
	}

	limit, offset := pagequery.Window(from, size)
	return s.repo.Search(ctx, text, limit, offset)
}

func (s *service) AddComment(ctx context.Context, itemID, authorID int64, text string) (*Comment, error) {
	i, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	author, err := s.users.GetUserOrNotFound(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyComment
	}

	// Only a renter with a finished approved booking may comment.
	finished, err := s.bookings.HasFinishedRental(ctx, authorID, i.ID, s.now())
	if err != nil {
		return nil, err
	}
	if !finished {
		return nil, ErrRentalNotFinished
	}

	comment := &Comment{
		Text:       text,
		ItemID:     i.ID,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Created:    s.now(),
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	s.log.Info().Int64("comment_id", comment.ID).Int64("item_id", i.ID).Msg("comment added")

	return comment, nil
}

func (s *service) GetItemOrNotFound(ctx context.Context, id int64) (*Item, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) enrich(ctx context.Context, i *Item, withBookings bool) (*Detail, error) {
	d := &Detail{Item: *i}

	if withBookings {
		now := s.now()
		last, err := s.bookings.LastCompleted(ctx, i.ID, now)
		if err != nil {
			return nil, err
		}
		next, err := s.bookings.NextUpcoming(ctx, i.ID, now)
		if err != nil {
			return nil, err
		}
		d.LastBooking = last
		d.NextBooking = next
	}

	comments, err := s.repo.ListComments(ctx, i.ID)
	if err != nil {
		return nil, err
	}
	d.Comments = comments

	return d, nil
}
