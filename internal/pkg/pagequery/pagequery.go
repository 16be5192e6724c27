package pagequery

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shareit-go/shareit-server/internal/pkg/apperror"
)

var (
	errNegativeFrom = apperror.New(http.StatusBadRequest, "from must not be negative")
	errInvalidSize  = apperror.New(http.StatusBadRequest, "size must be a positive integer")
)

// Params holds the from/size paging parameters shared by all list endpoints.
type Params struct {
	From int `form:"from,default=0"`
	Size int `form:"size,default=10"`
}

// Bind reads from/size query parameters off the request, applying the
// defaults from=0 and size=10 and rejecting negative/non-positive values.
func Bind(c *gin.Context) (Params, error) {
	var p Params
	if err := c.ShouldBindQuery(&p); err != nil {
		return Params{}, apperror.Wrap(err, http.StatusBadRequest, "invalid paging parameters")
	}
	if p.From < 0 {
		return Params{}, errNegativeFrom
	}
	if p.Size < 1 {
		return Params{}, errInvalidSize
	}
	return p, nil
}

// Window converts a from/size pair into a LIMIT/OFFSET window.
//
// The offset is (from/size)*size: the page index is from/size with integer
// division, so a from that is not a multiple of size snaps back to the start
// of its page. Callers are expected to pass aligned offsets.
func Window(from, size int) (limit, offset uint64) {
	page := from / size
	return uint64(size), uint64(page * size)
}
