package request

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ds-skoropad/java-shareit/model"
)

type ErrCode string

const ErrNotFound ErrCode = "NOT_FOUND"

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

// FulfillingItem is an item offered in answer to a request.
type FulfillingItem struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	OwnerID int64  `json:"ownerId"`
}

// View is a request with the items offered for it.
type View struct {
	model.ItemRequest
	Items []FulfillingItem `json:"items"`
}

type Repo interface {
	Create(ctx context.Context, req *model.ItemRequest) error
	ByID(ctx context.Context, id int64) (*model.ItemRequest, error)
	ByRequestor(ctx context.Context, userID int64) ([]model.ItemRequest, error)
	ByOthers(ctx context.Context, userID int64) ([]model.ItemRequest, error)
}

type Users interface {
	ByID(ctx context.Context, id int64) (*model.User, error)
}

type Items interface {
	ByRequests(ctx context.Context, requestIDs []int64) ([]model.Item, error)
}

type Service interface {
	Create(ctx context.Context, userID int64, description string) (*View, error)
	GetByID(ctx context.Context, userID, requestID int64) (*View, error)
	ByRequestor(ctx context.Context, userID int64) ([]View, error)
	ByOthers(ctx context.Context, userID int64) ([]View, error)
}

type service struct {
	r     Repo
	users Users
	items Items
}

func New(r Repo, users Users, items Items) Service {
	return &service{r: r, users: users, items: items}
}

func (s *service) checkUser(ctx context.Context, userID int64) error {
	if _, err := s.users.ByID(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return makeErr(ErrNotFound)
		}
		return err
	}
	return nil
}

func (s *service) Create(ctx context.Context, userID int64, description string) (*View, error) {
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}
	req := &model.ItemRequest{
		Description: description,
		RequestorID: userID,
		Created:     time.Now(),
	}
	if err := s.r.Create(ctx, req); err != nil {
		return nil, err
	}
	return &View{ItemRequest: *req, Items: []FulfillingItem{}}, nil
}

func (s *service) GetByID(ctx context.Context, userID, requestID int64) (*View, error) {
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}
	req, err := s.r.ByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	views, err := s.withItems(ctx, []model.ItemRequest{*req})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *service) ByRequestor(ctx context.Context, userID int64) ([]View, error) {
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}
	reqs, err := s.r.ByRequestor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, reqs)
}

func (s *service) ByOthers(ctx context.Context, userID int64) ([]View, error) {
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}
	reqs, err := s.r.ByOthers(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, reqs)
}

func (s *service) withItems(ctx context.Context, reqs []model.ItemRequest) ([]View, error) {
	views := make([]View, 0, len(reqs))
	if len(reqs) == 0 {
		return views, nil
	}

	ids := make([]int64, 0, len(reqs))
	for _, req := range reqs {
		ids = append(ids, req.ID)
	}
	items, err := s.items.ByRequests(ctx, ids)
	if err != nil {
		return nil, err
	}

	byRequest := make(map[int64][]FulfillingItem)
	for _, it := range items {
		if it.RequestID == nil {
			continue
		}
		byRequest[*it.RequestID] = append(byRequest[*it.RequestID],
			FulfillingItem{ID: it.ID, Name: it.Name, OwnerID: it.OwnerID})
	}
	for _, req := range reqs {
		fulfilling := byRequest[req.ID]
		if fulfilling == nil {
			fulfilling = []FulfillingItem{}
		}
		views = append(views, View{ItemRequest: req, Items: fulfilling})
	}
	return views, nil
}
