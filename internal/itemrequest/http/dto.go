package http

import (
	"github.com/shareit-go/shareit-server/internal/itemrequest"
	"github.com/shareit-go/shareit-server/internal/pkg/timefmt"
)

type ReplyResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"ownerId"`
	RequestID   int64  `json:"requestId"`
}

type ItemRequestResponse struct {
	ID          int64             `json:"id"`
	Description string            `json:"description"`
	Created     timefmt.LocalTime `json:"created"`
	Items       []ReplyResponse   `json:"items"`
}

func NewItemRequestResponse(req *itemrequest.ItemRequest, replies []itemrequest.Reply) ItemRequestResponse {
	items := make([]ReplyResponse, 0, len(replies))
	for _, rep := range replies {
		items = append(items, ReplyResponse{
			ID:          rep.ID,
			Name:        rep.Name,
			Description: rep.Description,
			Available:   rep.Available,
			OwnerID:     rep.OwnerID,
			RequestID:   rep.RequestID,
		})
	}

	return ItemRequestResponse{
		ID:          req.ID,
		Description: req.Description,
		Created:     timefmt.LocalTime(req.Created),
		Items:       items,
	}
}

type CreateItemRequestBody struct {
	Description string `json:"description" binding:"required"`
}
