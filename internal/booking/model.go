package booking

import (
	"net/http"
	"time"

	"github.com/shareit-go/shareit-server/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "booking not found")
	ErrItemUnavailable = apperror.New(http.StatusBadRequest, "item is unavailable for rental")
	ErrSelfBooking     = apperror.New(http.StatusNotFound, "owner cannot book own item")
	ErrStartAfterEnd   = apperror.New(http.StatusBadRequest, "booking start is after its end")
	ErrAlreadyApproved = apperror.New(http.StatusBadRequest, "booking is already approved")
	ErrAlreadyDecided  = apperror.New(http.StatusBadRequest, "booking has already been decided")
	ErrNotOwner        = apperror.New(http.StatusNotFound, "user is not the item owner, approval denied")
	ErrAccessDenied    = apperror.New(http.StatusNotFound, "access denied, user is unrelated to the booking")
)

// Status is the stored approval state of a booking. A booking starts as
// WAITING and moves exactly once to APPROVED or REJECTED.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Booking is a time-ranged rental request against an item.
//
// ItemName and ItemOwnerID are not stored on the booking row; they are
// joined from the items table on every read, so renaming an item changes
// what old bookings show.
type Booking struct {
	ID       int64
	Start    time.Time
	End      time.Time
	ItemID   int64
	BookerID int64
	Status   Status

	ItemName    string
	ItemOwnerID int64
}
