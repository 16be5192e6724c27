package user

import (
	"net/http"

	"github.com/shareit-go/shareit-server/internal/pkg/apperror"
)

var (
	ErrNotFound     = apperror.New(http.StatusNotFound, "user not found")
	ErrEmailInUse   = apperror.New(http.StatusConflict, "email already in use")
	ErrEmailMissing = apperror.New(http.StatusBadRequest, "email is required")
)

// User represents an account that can own items and book other users' items.
type User struct {
	ID    int64
	Name  string
	Email string
}
