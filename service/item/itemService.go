package item

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ds-skoropad/java-shareit/model"
	commentrepo "github.com/ds-skoropad/java-shareit/repository/comment"
)

type ErrCode string

const (
	ErrNotFound    ErrCode = "NOT_FOUND"
	ErrForbidden   ErrCode = "FORBIDDEN"
	ErrNotEligible ErrCode = "NOT_ELIGIBLE"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// Comment = repository shape
type Comment = commentrepo.Row

// BookingShort is the calendar hint attached to an owner's item view.
type BookingShort struct {
	ID    int64     `json:"id"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// View is an item with its comments and, for the owner, the nearest
// bookings on either side of now.
type View struct {
	model.Item
	LastBooking *BookingShort `json:"lastBooking,omitempty"`
	NextBooking *BookingShort `json:"nextBooking,omitempty"`
	Comments    []Comment     `json:"comments"`
}

type Repo interface {
	Create(ctx context.Context, it *model.Item) error
	ByID(ctx context.Context, id int64) (*model.Item, error)
	Update(ctx context.Context, it *model.Item) error
	ByOwner(ctx context.Context, ownerID int64) ([]model.Item, error)
	SearchAvailable(ctx context.Context, text string) ([]model.Item, error)
}

type Users interface {
	ByID(ctx context.Context, id int64) (*model.User, error)
}

type Requests interface {
	ByID(ctx context.Context, id int64) (*model.ItemRequest, error)
}

type Comments interface {
	Insert(ctx context.Context, itemID, authorID int64, text string, created time.Time) (*Comment, error)
	ByItem(ctx context.Context, itemID int64) ([]Comment, error)
	ByItems(ctx context.Context, itemIDs []int64) ([]Comment, error)
}

type Bookings interface {
	HasFinishedBooking(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
	LastForItem(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error)
	NextForItem(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error)
	ApprovedByItems(ctx context.Context, itemIDs []int64) ([]model.Booking, error)
}

type Service interface {
	Create(ctx context.Context, ownerID int64, it model.Item) (*model.Item, error)
	Update(ctx context.Context, userID, itemID int64, patch model.ItemPatch) (*model.Item, error)
	GetByID(ctx context.Context, userID, itemID int64) (*View, error)
	ByOwner(ctx context.Context, ownerID int64) ([]View, error)
	Search(ctx context.Context, text string) ([]model.Item, error)

	// CreateComment is gated on a finished approved booking by the author.
	CreateComment(ctx context.Context, authorID, itemID int64, text string) (*Comment, error)
}

// ----- Service implementation -----

type service struct {
	r        Repo
	users    Users
	requests Requests
	comments Comments
	bookings Bookings
}

func New(r Repo, users Users, requests Requests, comments Comments, bookings Bookings) Service {
	return &service{r: r, users: users, requests: requests, comments: comments, bookings: bookings}
}

func notFoundOr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return makeErr(ErrNotFound)
	}
	return err
}

func (s *service) Create(ctx context.Context, ownerID int64, it model.Item) (*model.Item, error) {
	if _, err := s.users.ByID(ctx, ownerID); err != nil {
		return nil, notFoundOr(err)
	}
	if it.RequestID != nil {
		if _, err := s.requests.ByID(ctx, *it.RequestID); err != nil {
			return nil, notFoundOr(err)
		}
	}
	it.OwnerID = ownerID
	if err := s.r.Create(ctx, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

func (s *service) Update(ctx context.Context, userID, itemID int64, patch model.ItemPatch) (*model.Item, error) {
	if _, err := s.users.ByID(ctx, userID); err != nil {
		return nil, notFoundOr(err)
	}
	it, err := s.r.ByID(ctx, itemID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if it.OwnerID != userID {
		return nil, makeErr(ErrForbidden)
	}
	if patch.Name != nil {
		it.Name = *patch.Name
	}
	if patch.Description != nil {
		it.Description = *patch.Description
	}
	if patch.Available != nil {
		it.Available = *patch.Available
	}
	if err := s.r.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) GetByID(ctx context.Context, userID, itemID int64) (*View, error) {
	it, err := s.r.ByID(ctx, itemID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	comments, err := s.comments.ByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	view := &View{Item: *it, Comments: emptyIfNil(comments)}

	// Calendar hints are the owner's business only.
	if userID == it.OwnerID {
		now := time.Now()
		last, err := s.bookings.LastForItem(ctx, itemID, now)
		if err != nil {
			return nil, err
		}
		next, err := s.bookings.NextForItem(ctx, itemID, now)
		if err != nil {
			return nil, err
		}
		view.LastBooking = toShort(last)
		view.NextBooking = toShort(next)
	}
	return view, nil
}

func (s *service) ByOwner(ctx context.Context, ownerID int64) ([]View, error) {
	if _, err := s.users.ByID(ctx, ownerID); err != nil {
		return nil, notFoundOr(err)
	}
	items, err := s.r.ByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []View{}, nil
	}

	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	comments, err := s.comments.ByItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookings.ApprovedByItems(ctx, ids)
	if err != nil {
		return nil, err
	}

	commentsByItem := make(map[int64][]Comment)
	for _, c := range comments {
		commentsByItem[c.ItemID] = append(commentsByItem[c.ItemID], c)
	}
	bookingsByItem := make(map[int64][]model.Booking)
	for _, b := range bookings {
		bookingsByItem[b.ItemID] = append(bookingsByItem[b.ItemID], b)
	}

	now := time.Now()
	views := make([]View, 0, len(items))
	for _, it := range items {
		v := View{Item: it, Comments: emptyIfNil(commentsByItem[it.ID])}
		v.LastBooking, v.NextBooking = lastAndNext(bookingsByItem[it.ID], now)
		views = append(views, v)
	}
	return views, nil
}

func (s *service) Search(ctx context.Context, text string) ([]model.Item, error) {
	if strings.TrimSpace(text) == "" {
		return []model.Item{}, nil
	}
	items, err := s.r.SearchAvailable(ctx, text)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

func (s *service) CreateComment(ctx context.Context, authorID, itemID int64, text string) (*Comment, error) {
	if _, err := s.users.ByID(ctx, authorID); err != nil {
		return nil, notFoundOr(err)
	}
	if _, err := s.r.ByID(ctx, itemID); err != nil {
		return nil, notFoundOr(err)
	}

	now := time.Now()
	ok, err := s.bookings.HasFinishedBooking(ctx, authorID, itemID, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, makeErr(ErrNotEligible)
	}
	return s.comments.Insert(ctx, itemID, authorID, text, now)
}

func toShort(b *model.Booking) *BookingShort {
	if b == nil {
		return nil
	}
	return &BookingShort{ID: b.ID, Start: b.Start, End: b.End}
}

// lastAndNext picks the latest finished and the earliest upcoming booking.
func lastAndNext(bookings []model.Booking, now time.Time) (last, next *BookingShort) {
	for i := range bookings {
		b := bookings[i]
		short := &BookingShort{ID: b.ID, Start: b.Start, End: b.End}
		switch {
		case b.End.Before(now):
			if last == nil || b.End.After(last.End) {
				last = short
			}
		case b.Start.After(now):
			if next == nil || b.Start.Before(next.Start) {
				next = short
			}
		}
	}
	return last, next
}

func emptyIfNil(comments []Comment) []Comment {
	if comments == nil {
		return []Comment{}
	}
	return comments
}
