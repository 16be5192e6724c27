package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shareit-go/shareit-server/internal/booking"
	"github.com/shareit-go/shareit-server/internal/identity"
	"github.com/shareit-go/shareit-server/internal/pkg/pagequery"
	"github.com/shareit-go/shareit-server/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	b, err := h.service.Create(c.Request.Context(), identity.UserID(c), booking.CreateRequest{
		ItemID: body.ItemID,
		Start:  body.Start.Time(),
		End:    body.End.Time(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) SetApproval(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "approved must be true or false"})
		return
	}

	b, err := h.service.SetApproval(c.Request.Context(), id, identity.UserID(c), approved)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id, identity.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) ListByBooker(c *gin.Context) {
	params, err := pagequery.Bind(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	bookings, err := h.service.ListByBooker(
		c.Request.Context(), identity.UserID(c), c.DefaultQuery("state", "ALL"), params.From, params.Size)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponses(bookings))
}

func (h *Handler) ListByOwner(c *gin.Context) {
	params, err := pagequery.Bind(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	bookings, err := h.service.ListByOwner(
		c.Request.Context(), identity.UserID(c), c.DefaultQuery("state", "ALL"), params.From, params.Size)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponses(bookings))
}

func toResponses(bookings []*booking.Booking) []BookingResponse {
	items := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, NewBookingResponse(b))
	}
	return items
}

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, booking.ErrNotFound
	}
	return id, nil
}
