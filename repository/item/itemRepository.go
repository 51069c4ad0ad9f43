package itemrepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/ds-skoropad/java-shareit/model"
	"github.com/ds-skoropad/java-shareit/util/database"
)

type Repo interface {
	Create(ctx context.Context, it *model.Item) error
	ByID(ctx context.Context, id int64) (*model.Item, error)
	Update(ctx context.Context, it *model.Item) error
	ByOwner(ctx context.Context, ownerID int64) ([]model.Item, error)
	SearchAvailable(ctx context.Context, text string) ([]model.Item, error)
	ByRequests(ctx context.Context, requestIDs []int64) ([]model.Item, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

const itemCols = `id, name, description, is_available, owner_id, request_id`

func (r *repo) Create(ctx context.Context, it *model.Item) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO items(name, description, is_available, owner_id, request_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		it.Name, it.Description, it.Available, it.OwnerID, it.RequestID,
	).Scan(&it.ID)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Item, error) {
	it := &model.Item{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT `+itemCols+`
		FROM items
		WHERE id = $1`,
		id,
	).Scan(&it.ID, &it.Name, &it.Description, &it.Available, &it.OwnerID, &it.RequestID)
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (r *repo) Update(ctx context.Context, it *model.Item) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE items
		SET name = $2, description = $3, is_available = $4
		WHERE id = $1`,
		it.ID, it.Name, it.Description, it.Available)
	return err
}

func (r *repo) ByOwner(ctx context.Context, ownerID int64) ([]model.Item, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT `+itemCols+`
		FROM items
		WHERE owner_id = $1
		ORDER BY id`,
		ownerID)
	if err != nil {
		return nil, err
	}
	return scanItems(rows)
}

// SearchAvailable matches name or description case-insensitively.
// Only available items are listed.
func (r *repo) SearchAvailable(ctx context.Context, text string) ([]model.Item, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT `+itemCols+`
		FROM items
		WHERE is_available
		AND (name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
		ORDER BY id`,
		text)
	if err != nil {
		return nil, err
	}
	return scanItems(rows)
}

func (r *repo) ByRequests(ctx context.Context, requestIDs []int64) ([]model.Item, error) {
	if len(requestIDs) == 0 {
		return nil, nil
	}
	rows, err := r.db.Pool.Query(ctx, `
		SELECT `+itemCols+`
		FROM items
		WHERE request_id = ANY($1)
		ORDER BY id`,
		requestIDs)
	if err != nil {
		return nil, err
	}
	return scanItems(rows)
}

func scanItems(rows pgx.Rows) ([]model.Item, error) {
	defer rows.Close()
	var out []model.Item
	for rows.Next() {
		var it model.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.Available, &it.OwnerID, &it.RequestID); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
