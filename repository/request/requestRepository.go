package requestrepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/ds-skoropad/java-shareit/model"
	"github.com/ds-skoropad/java-shareit/util/database"
)

type Repo interface {
	Create(ctx context.Context, req *model.ItemRequest) error
	ByID(ctx context.Context, id int64) (*model.ItemRequest, error)
	ByRequestor(ctx context.Context, userID int64) ([]model.ItemRequest, error)
	ByOthers(ctx context.Context, userID int64) ([]model.ItemRequest, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, req *model.ItemRequest) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO requests(description, requestor_id, created)
		VALUES ($1, $2, $3)
		RETURNING id`,
		req.Description, req.RequestorID, req.Created,
	).Scan(&req.ID)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.ItemRequest, error) {
	req := &model.ItemRequest{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, description, requestor_id, created
		FROM requests
		WHERE id = $1`,
		id,
	).Scan(&req.ID, &req.Description, &req.RequestorID, &req.Created)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *repo) ByRequestor(ctx context.Context, userID int64) ([]model.ItemRequest, error) {
	return r.query(ctx, `WHERE requestor_id = $1`, userID)
}

func (r *repo) ByOthers(ctx context.Context, userID int64) ([]model.ItemRequest, error) {
	return r.query(ctx, `WHERE requestor_id <> $1`, userID)
}

func (r *repo) query(ctx context.Context, where string, arg any) ([]model.ItemRequest, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, description, requestor_id, created
		FROM requests
		`+where+`
		ORDER BY created DESC`,
		arg)
	if err != nil {
		return nil, err
	}
	return scanRequests(rows)
}

func scanRequests(rows pgx.Rows) ([]model.ItemRequest, error) {
	defer rows.Close()
	var out []model.ItemRequest
	for rows.Next() {
		var req model.ItemRequest
		if err := rows.Scan(&req.ID, &req.Description, &req.RequestorID, &req.Created); err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}
