package requestsvc

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"shareit/model"
	requestrepo "shareit/repository/request"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrRequestNotFound = errors.New("request not found")
)

type Repo = requestrepo.Repo

type Service interface {
	Create(ctx context.Context, userID int64, req model.RequestCreateReq) (*model.RequestResponse, error)
	// GetOwn lists the caller's requests, newest first, with the items
	// listed in answer to each.
	GetOwn(ctx context.Context, userID int64) ([]model.RequestResponse, error)
	// GetAll lists other users' requests, newest first.
	GetAll(ctx context.Context, userID int64) ([]model.RequestResponse, error)
	Get(ctx context.Context, requestID, userID int64) (*model.RequestResponse, error)
}

type service struct {
	r   Repo
	now func() time.Time
}

func New(r Repo) Service { return &service{r: r, now: time.Now} }

func (s *service) Create(ctx context.Context, userID int64, req model.RequestCreateReq) (*model.RequestResponse, error) {
	exists, err := s.r.UserExists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	ir := &model.ItemRequest{
		Description: req.Description,
		RequesterID: userID,
		Created:     s.now(),
	}
	if err := s.r.Insert(ctx, ir); err != nil {
		return nil, err
	}
	return toResponse(*ir, nil), nil
}

func (s *service) GetOwn(ctx context.Context, userID int64) ([]model.RequestResponse, error) {
	return s.listFor(ctx, userID, s.r.ListByRequester)
}

func (s *service) GetAll(ctx context.Context, userID int64) ([]model.RequestResponse, error) {
	return s.listFor(ctx, userID, s.r.ListOthers)
}

func (s *service) listFor(ctx context.Context, userID int64,
	list func(ctx context.Context, userID int64) ([]model.ItemRequest, error)) ([]model.RequestResponse, error) {

	exists, err := s.r.UserExists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	requests, err := list(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(requests) == 0 {
		return []model.RequestResponse{}, nil
	}

	ids := make([]int64, 0, len(requests))
	for _, r := range requests {
		ids = append(ids, r.ID)
	}
	items, err := s.r.ItemsByRequests(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]model.RequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, *toResponse(r, items[r.ID]))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, requestID, userID int64) (*model.RequestResponse, error) {
	exists, err := s.r.UserExists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	req, err := s.r.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	items, err := s.r.ItemsByRequests(ctx, []int64{req.ID})
	if err != nil {
		return nil, err
	}
	return toResponse(*req, items[req.ID]), nil
}

func toResponse(r model.ItemRequest, items []model.Item) *model.RequestResponse {
	if items == nil {
		items = []model.Item{}
	}
	return &model.RequestResponse{
		ID:          r.ID,
		Description: r.Description,
		Created:     model.NewDateTime(r.Created),
		Items:       items,
	}
}
