package item

import (
	"github.com/ds-skoropad/java-shareit/model"
	itemsvc "github.com/ds-skoropad/java-shareit/service/item"
)

type CreateItemReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
	RequestID   *int64 `json:"requestId"`
}

type CreateCommentReq struct {
	Text string `json:"text"`
}

type BookingShort struct {
	ID    int64          `json:"id"`
	Start model.DateTime `json:"start"`
	End   model.DateTime `json:"end"`
}

type CommentResp struct {
	ID         int64          `json:"id"`
	ItemID     int64          `json:"itemId"`
	Text       string         `json:"text"`
	AuthorName string         `json:"authorName"`
	Created    model.DateTime `json:"created"`
}

type ViewResp struct {
	model.Item
	LastBooking *BookingShort `json:"lastBooking,omitempty"`
	NextBooking *BookingShort `json:"nextBooking,omitempty"`
	Comments    []CommentResp `json:"comments"`
}

func toShort(b *itemsvc.BookingShort) *BookingShort {
	if b == nil {
		return nil
	}
	return &BookingShort{ID: b.ID, Start: model.NewDateTime(b.Start), End: model.NewDateTime(b.End)}
}

func toCommentResp(c *itemsvc.Comment) CommentResp {
	return CommentResp{
		ID:         c.ID,
		ItemID:     c.ItemID,
		Text:       c.Text,
		AuthorName: c.AuthorName,
		Created:    model.NewDateTime(c.Created),
	}
}

func toViewResp(v *itemsvc.View) ViewResp {
	comments := make([]CommentResp, 0, len(v.Comments))
	for i := range v.Comments {
		comments = append(comments, toCommentResp(&v.Comments[i]))
	}
	return ViewResp{
		Item:        v.Item,
		LastBooking: toShort(v.LastBooking),
		NextBooking: toShort(v.NextBooking),
		Comments:    comments,
	}
}

func toViewResps(views []itemsvc.View) []ViewResp {
	out := make([]ViewResp, 0, len(views))
	for i := range views {
		out = append(out, toViewResp(&views[i]))
	}
	return out
}
