package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shareit-go/shareit-server/internal/identity"
	"github.com/shareit-go/shareit-server/internal/item"
	"github.com/shareit-go/shareit-server/internal/pkg/pagequery"
	"github.com/shareit-go/shareit-server/internal/pkg/response"
)

type Handler struct {
	service item.Service
}

func NewHandler(service item.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateItemBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	i, err := h.service.Add(c.Request.Context(), identity.UserID(c), item.CreateRequest{
		Name:        body.Name,
		Description: body.Description,
		Available:   *body.Available,
		RequestID:   body.RequestID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewItemResponse(i))
}

func (h *Handler) List(c *gin.Context) {
	params, err := pagequery.Bind(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	details, err := h.service.ListByOwner(c.Request.Context(), identity.UserID(c), params.From, params.Size)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ItemResponse, 0, len(details))
	for _, d := range details {
		items = append(items, NewItemDetailResponse(d))
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	d, err := h.service.GetByID(c.Request.Context(), id, identity.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewItemDetailResponse(d))
}

func (h *Handler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var body UpdateItemBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	i, err := h.service.Update(c.Request.Context(), id, identity.UserID(c), item.UpdateRequest{
		Name:        body.Name,
		Description: body.Description,
		Available:   body.Available,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewItemResponse(i))
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusOK)
}

func (h *Handler) Search(c *gin.Context) {
	params, err := pagequery.Bind(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	items, err := h.service.Search(c.Request.Context(), c.Query("text"), params.From, params.Size)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := make([]ItemResponse, 0, len(items))
	for _, i := range items {
		resp = append(resp, NewItemResponse(i))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) AddComment(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var body CreateCommentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	comment, err := h.service.AddComment(c.Request.Context(), id, identity.UserID(c), body.Text)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewCommentResponse(comment))
}

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, item.ErrNotFound
	}
	return id, nil
}
