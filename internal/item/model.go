package item

import (
	"context"
	"net/http"
	"time"

	"github.com/shareit-go/shareit-server/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "item not found")
	ErrNotOwner          = apperror.New(http.StatusNotFound, "item does not belong to this user")
	ErrRentalNotFinished = apperror.New(http.StatusBadRequest, "item was never rented or the rental is not finished yet")
	ErrEmptyComment      = apperror.New(http.StatusBadRequest, "comment text is required")
)

// Item is a thing offered for rental. Availability is owner-controlled and
// gates booking admission.
type Item struct {
	ID          int64
	OwnerID     int64
	Name        string
	Description string
	Available   bool
	RequestID   *int64
}

// Comment is feedback left by a renter after a completed rental.
type Comment struct {
	ID         int64
	Text       string
	ItemID     int64
	AuthorID   int64
	AuthorName string // joined from the users table at read time
	Created    time.Time
}

// BookingSnapshot is the minimal view of a booking shown on an item card.
type BookingSnapshot struct {
	ID       int64
	BookerID int64
}

// BookingLookup is the slice of the booking store the item module needs for
// its read-time enrichment. It is satisfied by the booking repository.
type BookingLookup interface {
	// LastCompleted returns the most recently finished approved booking of
	// the item (end before now, latest end first), or nil.
	LastCompleted(ctx context.Context, itemID int64, now time.Time) (*BookingSnapshot, error)
	// NextUpcoming returns the soonest-ending approved booking of the item
	// that has not finished yet, or nil.
	NextUpcoming(ctx context.Context, itemID int64, now time.Time) (*BookingSnapshot, error)
	// HasFinishedRental reports whether the user has at least one approved
	// booking of the item that ended before now.
	HasFinishedRental(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
}
