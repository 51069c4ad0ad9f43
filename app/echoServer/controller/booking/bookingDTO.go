package booking

import (
	"github.com/ds-skoropad/java-shareit/model"
	bookingsvc "github.com/ds-skoropad/java-shareit/service/booking"
)

type CreateBookingReq struct {
	ItemID int64          `json:"itemId"`
	Start  model.DateTime `json:"start"`
	End    model.DateTime `json:"end"`
}

type ItemShort struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Booker struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type BookingResp struct {
	ID     int64               `json:"id"`
	Start  model.DateTime      `json:"start"`
	End    model.DateTime      `json:"end"`
	Status model.BookingStatus `json:"status"`
	Item   ItemShort           `json:"item"`
	Booker Booker              `json:"booker"`
}

func toResp(row *bookingsvc.Row) BookingResp {
	return BookingResp{
		ID:     row.ID,
		Start:  model.NewDateTime(row.Start),
		End:    model.NewDateTime(row.End),
		Status: row.Status,
		Item:   ItemShort{ID: row.ItemID, Name: row.ItemName},
		Booker: Booker{ID: row.BookerID, Name: row.BookerName, Email: row.BookerEmail},
	}
}

func toResps(rows []bookingsvc.Row) []BookingResp {
	out := make([]BookingResp, 0, len(rows))
	for i := range rows {
		out = append(out, toResp(&rows[i]))
	}
	return out
}
