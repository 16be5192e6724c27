package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shareit-go/shareit-server/internal/identity"
	"github.com/shareit-go/shareit-server/internal/itemrequest"
	"github.com/shareit-go/shareit-server/internal/pkg/pagequery"
	"github.com/shareit-go/shareit-server/internal/pkg/response"
)

type Handler struct {
	service itemrequest.Service
}

func NewHandler(service itemrequest.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateItemRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req, err := h.service.Add(c.Request.Context(), identity.UserID(c), body.Description)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewItemRequestResponse(req, nil))
}

func (h *Handler) ListOwn(c *gin.Context) {
	details, err := h.service.ListOwn(c.Request.Context(), identity.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponses(details))
}

func (h *Handler) ListOthers(c *gin.Context) {
	params, err := pagequery.Bind(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	details, err := h.service.ListOthers(c.Request.Context(), identity.UserID(c), params.From, params.Size)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponses(details))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		response.Error(c, itemrequest.ErrNotFound)
		return
	}

	detail, err := h.service.GetByID(c.Request.Context(), id, identity.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewItemRequestResponse(&detail.ItemRequest, detail.Replies))
}

func toResponses(details []*itemrequest.Detail) []ItemRequestResponse {
	items := make([]ItemRequestResponse, 0, len(details))
	for _, d := range details {
		items = append(items, NewItemRequestResponse(&d.ItemRequest, d.Replies))
	}
	return items
}
