package commentrepo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ds-skoropad/java-shareit/util/database"
)

// Row is a comment joined with its author's display name.
type Row struct {
	ID         int64     `json:"id"`
	ItemID     int64     `json:"itemId"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

type Repo interface {
	Insert(ctx context.Context, itemID, authorID int64, text string, created time.Time) (*Row, error)
	ByItem(ctx context.Context, itemID int64) ([]Row, error)
	ByItems(ctx context.Context, itemIDs []int64) ([]Row, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

func (r *repo) Insert(ctx context.Context, itemID, authorID int64, text string, created time.Time) (*Row, error) {
	row := &Row{ItemID: itemID, Text: text, Created: created}
	err := r.db.Pool.QueryRow(ctx, `
		WITH ins AS (
			INSERT INTO comments(item_id, author_id, text, created)
			VALUES ($1, $2, $3, $4)
			RETURNING id, author_id
		)
		SELECT ins.id, u.name
		FROM ins
		JOIN users u ON u.id = ins.author_id`,
		itemID, authorID, text, created,
	).Scan(&row.ID, &row.AuthorName)
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (r *repo) ByItem(ctx context.Context, itemID int64) ([]Row, error) {
	return r.query(ctx, `WHERE c.item_id = $1`, itemID)
}

func (r *repo) ByItems(ctx context.Context, itemIDs []int64) ([]Row, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	return r.query(ctx, `WHERE c.item_id = ANY($1)`, itemIDs)
}

func (r *repo) query(ctx context.Context, where string, arg any) ([]Row, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT c.id, c.item_id, c.text, u.name, c.created
		FROM comments c
		JOIN users u ON u.id = c.author_id
		`+where+`
		ORDER BY c.created`,
		arg)
	if err != nil {
		return nil, err
	}
	return scanRows(rows)
}

func scanRows(rows pgx.Rows) ([]Row, error) {
	defer rows.Close()
	var out []Row
	for rows.Next() {
		var c Row
		if err := rows.Scan(&c.ID, &c.ItemID, &c.Text, &c.AuthorName, &c.Created); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
