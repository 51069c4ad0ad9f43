package bookingrepo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ds-skoropad/java-shareit/model"
	"github.com/ds-skoropad/java-shareit/util/database"
)

// Row is a booking joined with its item and booker, the shape every
// read path returns.
type Row struct {
	ID          int64               `json:"id"`
	Start       time.Time           `json:"start"`
	End         time.Time           `json:"end"`
	Status      model.BookingStatus `json:"status"`
	ItemID      int64               `json:"itemId"`
	ItemName    string              `json:"itemName"`
	ItemOwnerID int64               `json:"itemOwnerId"`
	BookerID    int64               `json:"bookerId"`
	BookerName  string              `json:"bookerName"`
	BookerEmail string              `json:"bookerEmail"`
}

// Decision is the minimal slice of a booking needed to decide it.
type Decision struct {
	ID          int64
	Status      model.BookingStatus
	ItemOwnerID int64
}

type Repo interface {
	Insert(ctx context.Context, tx pgx.Tx, b *model.Booking) error
	ViewByID(ctx context.Context, id int64) (*Row, error)

	// LockItem serializes concurrent create attempts on one item for the
	// lifetime of the transaction.
	LockItem(ctx context.Context, tx pgx.Tx, itemID int64) error
	LiveByItem(ctx context.Context, tx pgx.Tx, itemID int64) ([]model.Booking, error)

	ForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*Decision, error)
	SetStatus(ctx context.Context, tx pgx.Tx, id int64, status model.BookingStatus) error

	ByBooker(ctx context.Context, bookerID int64, state model.BookingState, now time.Time) ([]Row, error)
	ByOwner(ctx context.Context, ownerID int64, state model.BookingState, now time.Time) ([]Row, error)

	HasFinishedBooking(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
	LastForItem(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error)
	NextForItem(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error)
	ApprovedByItems(ctx context.Context, itemIDs []int64) ([]model.Booking, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

func (r *repo) Insert(ctx context.Context, tx pgx.Tx, b *model.Booking) error {
	return tx.QueryRow(ctx, `
		INSERT INTO bookings(item_id, booker_id, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		b.ItemID, b.BookerID, b.Start, b.End, b.Status,
	).Scan(&b.ID)
}

const viewQuery = `
	SELECT b.id, b.start_date, b.end_date, b.status,
	       i.id, i.name, i.owner_id,
	       u.id, u.name, u.email
	FROM bookings b
	JOIN items i ON i.id = b.item_id
	JOIN users u ON u.id = b.booker_id`

func (r *repo) ViewByID(ctx context.Context, id int64) (*Row, error) {
	row := &Row{}
	err := r.db.Pool.QueryRow(ctx, viewQuery+` WHERE b.id = $1`, id).Scan(
		&row.ID, &row.Start, &row.End, &row.Status,
		&row.ItemID, &row.ItemName, &row.ItemOwnerID,
		&row.BookerID, &row.BookerName, &row.BookerEmail,
	)
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (r *repo) LockItem(ctx context.Context, tx pgx.Tx, itemID int64) error {
	_, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, itemID)
	return err
}

func (r *repo) LiveByItem(ctx context.Context, tx pgx.Tx, itemID int64) ([]model.Booking, error) {
	rows, err := tx.Query(ctx, `
		SELECT id, item_id, booker_id, start_date, end_date, status
		FROM bookings
		WHERE item_id = $1
		AND status IN ('WAITING', 'APPROVED')`,
		itemID)
	if err != nil {
		return nil, err
	}
	return scanBookings(rows)
}

func (r *repo) ForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*Decision, error) {
	d := &Decision{}
	err := tx.QueryRow(ctx, `
		SELECT b.id, b.status, i.owner_id
		FROM bookings b
		JOIN items i ON i.id = b.item_id
		WHERE b.id = $1
		FOR UPDATE OF b`,
		id,
	).Scan(&d.ID, &d.Status, &d.ItemOwnerID)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *repo) SetStatus(ctx context.Context, tx pgx.Tx, id int64, status model.BookingStatus) error {
	_, err := tx.Exec(ctx, `
		UPDATE bookings
		SET status = $2
		WHERE id = $1`,
		id, status)
	return err
}

func (r *repo) ByBooker(ctx context.Context, bookerID int64, state model.BookingState, now time.Time) ([]Row, error) {
	return r.list(ctx, `b.booker_id = $1`, bookerID, state, now)
}

func (r *repo) ByOwner(ctx context.Context, ownerID int64, state model.BookingState, now time.Time) ([]Row, error) {
	return r.list(ctx, `i.owner_id = $1`, ownerID, state, now)
}

func (r *repo) list(ctx context.Context, who string, id int64, state model.BookingState, now time.Time) ([]Row, error) {
	cond, arg := stateCond(state, now)
	q := viewQuery + ` WHERE ` + who + cond + ` ORDER BY b.start_date DESC`
	args := []any{id}
	if arg != nil {
		args = append(args, arg)
	}

	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var row Row
		if err := rows.Scan(
			&row.ID, &row.Start, &row.End, &row.Status,
			&row.ItemID, &row.ItemName, &row.ItemOwnerID,
			&row.BookerID, &row.BookerName, &row.BookerEmail,
		); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// stateCond translates a list filter into a SQL condition. The returned
// condition references $2 when arg is non-nil. CURRENT is start <= now < end.
func stateCond(state model.BookingState, now time.Time) (cond string, arg any) {
	switch state {
	case model.StateAll:
		return "", nil
	case model.StateCurrent:
		return ` AND b.start_date <= $2 AND b.end_date > $2`, now
	case model.StatePast:
		return ` AND b.end_date < $2`, now
	case model.StateFuture:
		return ` AND b.start_date > $2`, now
	case model.StateWaiting:
		return ` AND b.status = $2`, model.StatusWaiting
	case model.StateRejected:
		return ` AND b.status = $2`, model.StatusRejected
	default:
		// Callers parse the filter first; an unmatched value lists nothing.
		return ` AND false`, nil
	}
}

// HasFinishedBooking reports whether the booker has an approved booking on
// the item that already ended. This is the comment-eligibility check.
func (r *repo) HasFinishedBooking(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	var ok bool
	err := r.db.Pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM bookings
			WHERE booker_id = $1
			AND item_id = $2
			AND status = 'APPROVED'
			AND end_date < $3
		)`,
		bookerID, itemID, now,
	).Scan(&ok)
	return ok, err
}

func (r *repo) LastForItem(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error) {
	return r.one(ctx, `
		SELECT id, item_id, booker_id, start_date, end_date, status
		FROM bookings
		WHERE item_id = $1
		AND status = 'APPROVED'
		AND end_date < $2
		ORDER BY end_date DESC
		LIMIT 1`,
		itemID, now)
}

func (r *repo) NextForItem(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error) {
	return r.one(ctx, `
		SELECT id, item_id, booker_id, start_date, end_date, status
		FROM bookings
		WHERE item_id = $1
		AND status = 'APPROVED'
		AND start_date > $2
		ORDER BY start_date ASC
		LIMIT 1`,
		itemID, now)
}

// one returns nil, nil when no row matches.
func (r *repo) one(ctx context.Context, q string, args ...any) (*model.Booking, error) {
	b := &model.Booking{}
	err := r.db.Pool.QueryRow(ctx, q, args...).Scan(
		&b.ID, &b.ItemID, &b.BookerID, &b.Start, &b.End, &b.Status)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *repo) ApprovedByItems(ctx context.Context, itemIDs []int64) ([]model.Booking, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, item_id, booker_id, start_date, end_date, status
		FROM bookings
		WHERE item_id = ANY($1)
		AND status = 'APPROVED'`,
		itemIDs)
	if err != nil {
		return nil, err
	}
	return scanBookings(rows)
}

func scanBookings(rows pgx.Rows) ([]model.Booking, error) {
	defer rows.Close()
	var out []model.Booking
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.ItemID, &b.BookerID, &b.Start, &b.End, &b.Status); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
