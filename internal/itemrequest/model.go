package itemrequest

import (
	"net/http"
	"time"

	"github.com/shareit-go/shareit-server/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "item request not found")
	ErrDescriptionMissing = apperror.New(http.StatusBadRequest, "description is required")
)

// ItemRequest is a want-ad: a user describes an item they would like to
// rent, and other users may post items in reply.
type ItemRequest struct {
	ID          int64
	Description string
	RequesterID int64
	Created     time.Time
}

// Reply is an item posted in answer to a request. It is read from the items
// table at query time; the request itself stores nothing about replies.
type Reply struct {
	ID          int64
	Name        string
	Description string
	Available   bool
	OwnerID     int64
	RequestID   int64
}
