package http

import (
	"github.com/shareit-go/shareit-server/internal/item"
	"github.com/shareit-go/shareit-server/internal/pkg/timefmt"
)

type BookingTag struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

type CommentResponse struct {
	ID         int64             `json:"id"`
	Text       string            `json:"text"`
	AuthorName string            `json:"authorName"`
	Created    timefmt.LocalTime `json:"created"`
}

func NewCommentResponse(c *item.Comment) CommentResponse {
	return CommentResponse{
		ID:         c.ID,
		Text:       c.Text,
		AuthorName: c.AuthorName,
		Created:    timefmt.LocalTime(c.Created),
	}
}

type ItemResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Available   bool              `json:"available"`
	RequestID   *int64            `json:"requestId,omitempty"`
	LastBooking *BookingTag       `json:"lastBooking"`
	NextBooking *BookingTag       `json:"nextBooking"`
	Comments    []CommentResponse `json:"comments"`
}

func NewItemResponse(i *item.Item) ItemResponse {
	return ItemResponse{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Available:   i.Available,
		RequestID:   i.RequestID,
		Comments:    []CommentResponse{},
	}
}

func NewItemDetailResponse(d *item.Detail) ItemResponse {
	resp := NewItemResponse(&d.Item)
	if d.LastBooking != nil {
		resp.LastBooking = &BookingTag{ID: d.LastBooking.ID, BookerID: d.LastBooking.BookerID}
	}
	if d.NextBooking != nil {
		resp.NextBooking = &BookingTag{ID: d.NextBooking.ID, BookerID: d.NextBooking.BookerID}
	}
	for i := range d.Comments {
		resp.Comments = append(resp.Comments, NewCommentResponse(&d.Comments[i]))
	}
	return resp
}

type CreateItemBody struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Available   *bool  `json:"available" binding:"required"`
	RequestID   *int64 `json:"requestId"`
}

type UpdateItemBody struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type CreateCommentBody struct {
	Text string `json:"text" binding:"required"`
}
