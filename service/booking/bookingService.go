package booking

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ds-skoropad/java-shareit/model"
	bookingrepo "github.com/ds-skoropad/java-shareit/repository/booking"
)

// errors used by controllers

type ErrCode string

const (
	ErrNotFound       ErrCode = "NOT_FOUND"
	ErrInvalidRange   ErrCode = "INVALID_RANGE"
	ErrNotAvailable   ErrCode = "NOT_AVAILABLE"
	ErrSelfBooking    ErrCode = "SELF_BOOKING"
	ErrTimeConflict   ErrCode = "TIME_CONFLICT"
	ErrForbidden      ErrCode = "FORBIDDEN"
	ErrAlreadyDecided ErrCode = "ALREADY_DECIDED"
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

// Row = repository shape
type Row = bookingrepo.Row

type Repo interface {
	Insert(ctx context.Context, tx pgx.Tx, b *model.Booking) error
	ViewByID(ctx context.Context, id int64) (*Row, error)
	LockItem(ctx context.Context, tx pgx.Tx, itemID int64) error
	LiveByItem(ctx context.Context, tx pgx.Tx, itemID int64) ([]model.Booking, error)
	ForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*bookingrepo.Decision, error)
	SetStatus(ctx context.Context, tx pgx.Tx, id int64, status model.BookingStatus) error
	ByBooker(ctx context.Context, bookerID int64, state model.BookingState, now time.Time) ([]Row, error)
	ByOwner(ctx context.Context, ownerID int64, state model.BookingState, now time.Time) ([]Row, error)
}

type Items interface {
	ByID(ctx context.Context, id int64) (*model.Item, error)
}

type Users interface {
	ByID(ctx context.Context, id int64) (*model.User, error)
}

type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Service interface {
	// Create books the item for [start, end) with status WAITING.
	Create(ctx context.Context, requesterID, itemID int64, start, end time.Time) (*Row, error)

	// Decide approves or rejects a WAITING booking. Owner only, once.
	Decide(ctx context.Context, actorID, bookingID int64, approve bool) (*Row, error)

	// GetByID returns one booking to its booker or the item's owner.
	GetByID(ctx context.Context, requesterID, bookingID int64) (*Row, error)

	ByBooker(ctx context.Context, bookerID int64, state model.BookingState) ([]Row, error)
	ByOwner(ctx context.Context, ownerID int64, state model.BookingState) ([]Row, error)
}

// ----- Service implementation -----

type service struct {
	db    TxBeginner
	r     Repo
	items Items
	users Users
}

func New(db TxBeginner, r Repo, items Items, users Users) Service {
	return &service{db: db, r: r, items: items, users: users}
}

// overlaps tests two half-open intervals [aStart, aEnd) and [bStart, bEnd).
// Touching boundaries do not overlap.
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

func hasConflict(live []model.Booking, start, end time.Time) bool {
	for _, b := range live {
		if overlaps(start, end, b.Start, b.End) {
			return true
		}
	}
	return false
}

func (s *service) Create(ctx context.Context, requesterID, itemID int64, start, end time.Time) (_ *Row, err error) {
	if !start.Before(end) {
		return nil, makeErr(ErrInvalidRange)
	}

	item, err := s.items.ByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	if _, err = s.users.ByID(ctx, requesterID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	if !item.Available {
		return nil, makeErr(ErrNotAvailable)
	}
	if requesterID == item.OwnerID {
		return nil, makeErr(ErrSelfBooking)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	// Serialize check-then-insert per item so two overlapping requests
	// cannot both pass the conflict check.
	if err = s.r.LockItem(ctx, tx, itemID); err != nil {
		return nil, err
	}
	live, err := s.r.LiveByItem(ctx, tx, itemID)
	if err != nil {
		return nil, err
	}
	if hasConflict(live, start, end) {
		return nil, makeErr(ErrTimeConflict)
	}

	b := &model.Booking{
		ItemID:   itemID,
		BookerID: requesterID,
		Start:    start,
		End:      end,
		Status:   model.StatusWaiting,
	}
	if err = s.r.Insert(ctx, tx, b); err != nil {
		return nil, err
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}

	return s.r.ViewByID(ctx, b.ID)
}

func (s *service) Decide(ctx context.Context, actorID, bookingID int64, approve bool) (_ *Row, err error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	d, err := s.r.ForUpdate(ctx, tx, bookingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	if actorID != d.ItemOwnerID {
		return nil, makeErr(ErrForbidden)
	}
	if d.Status != model.StatusWaiting {
		return nil, makeErr(ErrAlreadyDecided)
	}

	status := model.StatusRejected
	if approve {
		status = model.StatusApproved
	}
	if err = s.r.SetStatus(ctx, tx, bookingID, status); err != nil {
		return nil, err
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}

	return s.r.ViewByID(ctx, bookingID)
}

func (s *service) GetByID(ctx context.Context, requesterID, bookingID int64) (*Row, error) {
	if _, err := s.users.ByID(ctx, requesterID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	row, err := s.r.ViewByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	// Visible to the booker and the item's owner, nobody else.
	if requesterID != row.BookerID && requesterID != row.ItemOwnerID {
		return nil, makeErr(ErrForbidden)
	}
	return row, nil
}

func (s *service) ByBooker(ctx context.Context, bookerID int64, state model.BookingState) ([]Row, error) {
	if _, err := s.users.ByID(ctx, bookerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	return s.r.ByBooker(ctx, bookerID, state, time.Now())
}

func (s *service) ByOwner(ctx context.Context, ownerID int64, state model.BookingState) ([]Row, error) {
	if _, err := s.users.ByID(ctx, ownerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	return s.r.ByOwner(ctx, ownerID, state, time.Now())
}
