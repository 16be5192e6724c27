package http

import (
	"github.com/shareit-go/shareit-server/internal/booking"
	"github.com/shareit-go/shareit-server/internal/pkg/timefmt"
)

// ItemTag and BookerTag are the denormalized snapshots embedded in a booking
// response. They reflect current item/user state at read time.
type ItemTag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BookerTag struct {
	ID int64 `json:"id"`
}

type BookingResponse struct {
	ID     int64             `json:"id"`
	Start  timefmt.LocalTime `json:"start"`
	End    timefmt.LocalTime `json:"end"`
	ItemID int64             `json:"itemId"`
	Item   ItemTag           `json:"item"`
	Booker BookerTag         `json:"booker"`
	Status string            `json:"status"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:     b.ID,
		Start:  timefmt.LocalTime(b.Start),
		End:    timefmt.LocalTime(b.End),
		ItemID: b.ItemID,
		Item:   ItemTag{ID: b.ItemID, Name: b.ItemName},
		Booker: BookerTag{ID: b.BookerID},
		Status: string(b.Status),
	}
}

type CreateBookingBody struct {
	ItemID int64             `json:"itemId" binding:"required"`
	Start  timefmt.LocalTime `json:"start" binding:"required"`
	End    timefmt.LocalTime `json:"end" binding:"required"`
}
