package itemsvc

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"shareit/model"
	itemrepo "shareit/repository/item"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrItemNotFound    = errors.New("item not found")
	ErrRequestNotFound = errors.New("request not found")
	ErrNotOwner        = errors.New("item does not belong to this user")
	ErrNoBooking       = errors.New("user has no finished approved booking on this item")
)

type Repo = itemrepo.Repo

type Service interface {
	Create(ctx context.Context, ownerID int64, req model.ItemCreateReq) (*model.Item, error)
	// Patch overwrites only the fields present in the request. Only the
	// owner may edit.
	Patch(ctx context.Context, itemID, callerID int64, req model.ItemPatchReq) (*model.Item, error)
	// GetAll returns the caller's items as owner views, with last/next
	// booking markers resolved in one grouped query.
	GetAll(ctx context.Context, ownerID int64) ([]model.ItemView, error)
	// Get returns one item. The booking markers are attached only when
	// the viewer owns the item; viewerID 0 means anonymous.
	Get(ctx context.Context, itemID, viewerID int64) (*model.ItemView, error)
	Search(ctx context.Context, text string) ([]model.Item, error)
	// CreateComment enforces the verified-renter gate: the author needs
	// an APPROVED booking on the item that has already ended.
	CreateComment(ctx context.Context, authorID, itemID int64, req model.CommentCreateReq) (*model.CommentResponse, error)
}

type service struct {
	r   Repo
	now func() time.Time
}

func New(r Repo) Service { return &service{r: r, now: time.Now} }

func NewWithClock(r Repo, now func() time.Time) Service {
	return &service{r: r, now: now}
}

func (s *service) Create(ctx context.Context, ownerID int64, req model.ItemCreateReq) (*model.Item, error) {
	exists, err := s.r.UserExists(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	if req.RequestID != nil {
		ok, err := s.r.RequestExists(ctx, *req.RequestID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrRequestNotFound
		}
	}

	it := &model.Item{
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
		OwnerID:     ownerID,
		RequestID:   req.RequestID,
	}
	if err := s.r.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) Patch(ctx context.Context, itemID, callerID int64, req model.ItemPatchReq) (*model.Item, error) {
	exists, err := s.r.UserExists(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	it, err := s.r.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	if it.OwnerID != callerID {
		return nil, ErrNotOwner
	}

	if req.Name != nil {
		it.Name = *req.Name
	}
	if req.Description != nil {
		it.Description = *req.Description
	}
	if req.Available != nil {
		it.Available = *req.Available
	}

	if err := s.r.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) GetAll(ctx context.Context, ownerID int64) ([]model.ItemView, error) {
	exists, err := s.r.UserExists(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	items, err := s.r.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []model.ItemView{}, nil
	}

	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}

	comments, err := s.r.ListComments(ctx, ids)
	if err != nil {
		return nil, err
	}
	markers, err := s.r.LastNextBookings(ctx, ids, s.now())
	if err != nil {
		return nil, err
	}

	out := make([]model.ItemView, 0, len(items))
	for _, it := range items {
		view := toView(it, comments[it.ID])
		if ln, ok := markers[it.ID]; ok {
			view.LastBooking = toDateTime(ln.Last)
			view.NextBooking = toDateTime(ln.Next)
		}
		out = append(out, view)
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, itemID, viewerID int64) (*model.ItemView, error) {
	it, err := s.r.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	comments, err := s.r.ListComments(ctx, []int64{it.ID})
	if err != nil {
		return nil, err
	}
	view := toView(*it, comments[it.ID])

	if viewerID == it.OwnerID {
		markers, err := s.r.LastNextBookings(ctx, []int64{it.ID}, s.now())
		if err != nil {
			return nil, err
		}
		if ln, ok := markers[it.ID]; ok {
			view.LastBooking = toDateTime(ln.Last)
			view.NextBooking = toDateTime(ln.Next)
		}
	}
	return &view, nil
}

func (s *service) Search(ctx context.Context, text string) ([]model.Item, error) {
	if strings.TrimSpace(text) == "" {
		return []model.Item{}, nil
	}
	items, err := s.r.Search(ctx, text)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

func (s *service) CreateComment(ctx context.Context, authorID, itemID int64, req model.CommentCreateReq) (*model.CommentResponse, error) {
	exists, err := s.r.UserExists(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	if _, err := s.r.GetByID(ctx, itemID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	now := s.now()
	ok, err := s.r.HasFinishedApprovedBooking(ctx, authorID, itemID, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoBooking
	}

	c := &model.Comment{
		Text:     req.Text,
		AuthorID: authorID,
		ItemID:   itemID,
		Created:  now,
	}
	if err := s.r.InsertComment(ctx, c); err != nil {
		return nil, err
	}

	name, err := s.r.AuthorName(ctx, authorID)
	if err != nil {
		return nil, err
	}
	return &model.CommentResponse{
		ID:         c.ID,
		Text:       c.Text,
		AuthorName: name,
		Created:    model.NewDateTime(c.Created),
	}, nil
}

func toView(it model.Item, comments []model.CommentResponse) model.ItemView {
	if comments == nil {
		comments = []model.CommentResponse{}
	}
	return model.ItemView{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		Comments:    comments,
	}
}

func toDateTime(t *time.Time) *model.DateTime {
	if t == nil {
		return nil
	}
	dt := model.NewDateTime(*t)
	return &dt
}
