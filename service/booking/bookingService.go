package bookingsvc

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"shareit/model"
	bookingrepo "shareit/repository/booking"
)

// errors used by controllers

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrItemNotFound    = errors.New("item not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrUnavailable     = errors.New("item is not available for booking")
	ErrDates           = errors.New("start date must be before end date")
	ErrOverlap         = errors.New("item is already booked for the selected period")
	ErrNotOwner        = errors.New("caller is not the owner of the item")
	ErrNotWaiting      = errors.New("booking is not in WAITING status")
	ErrOwnsNothing     = errors.New("caller owns no items")
)

// Beginner starts a transaction. *pgxpool.Pool satisfies it.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Repo = bookingrepo.Repo

type Service interface {
	// Create inserts a WAITING booking after the overlap check. Both run
	// in one transaction under an item row lock, so two concurrent
	// requests for the same item cannot both pass the check.
	Create(ctx context.Context, bookerID int64, req model.BookingCreateReq) (*model.BookingResponse, error)

	// SetApproved moves a WAITING booking to APPROVED or REJECTED. Only
	// the item owner may call it, and only once per booking.
	SetApproved(ctx context.Context, bookingID, callerID int64, approved bool) (*model.BookingResponse, error)

	// Get returns a booking visible to its booker or the item owner.
	Get(ctx context.Context, bookingID, callerID int64) (*model.BookingResponse, error)

	ListByBooker(ctx context.Context, userID int64, state model.BookingState) ([]model.BookingResponse, error)
	ListByOwner(ctx context.Context, userID int64, state model.BookingState) ([]model.BookingResponse, error)
}

type service struct {
	db  Beginner
	r   Repo
	now func() time.Time
}

func New(db Beginner, r Repo) Service {
	return &service{db: db, r: r, now: time.Now}
}

// NewWithClock is used by tests that need a fixed wall clock.
func NewWithClock(db Beginner, r Repo, now func() time.Time) Service {
	return &service{db: db, r: r, now: now}
}

func (s *service) Create(ctx context.Context, bookerID int64, req model.BookingCreateReq) (_ *model.BookingResponse, err error) {
	exists, err := s.r.UserExists(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	start := req.Start.Time
	end := req.End.Time
	if !start.Before(end) {
		return nil, ErrDates
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

	item, err := s.r.GetItemForUpdate(ctx, tx, req.ItemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	if !item.Available {
		return nil, ErrUnavailable
	}

	overlaps, err := s.r.HasOverlapping(ctx, tx, item.ID, start, end)
	if err != nil {
		return nil, err
	}
	if overlaps {
		return nil, ErrOverlap
	}

	row, err := s.r.Insert(ctx, tx, &model.Booking{
		Start:    start,
		End:      end,
		ItemID:   item.ID,
		BookerID: bookerID,
		Status:   model.BookingWaiting,
	})
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	return toResponse(row), nil
}

func (s *service) SetApproved(ctx context.Context, bookingID, callerID int64, approved bool) (_ *model.BookingResponse, err error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	row, err := s.r.GetForUpdate(ctx, tx, bookingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if row.OwnerID != callerID {
		return nil, ErrNotOwner
	}
	if row.Status != model.BookingWaiting {
		return nil, ErrNotWaiting
	}

	status := model.BookingRejected
	if approved {
		status = model.BookingApproved
	}
	if err = s.r.UpdateStatus(ctx, tx, bookingID, status); err != nil {
		return nil, err
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}

	row.Status = status
	return toResponse(row), nil
}

func (s *service) Get(ctx context.Context, bookingID, callerID int64) (*model.BookingResponse, error) {
	row, err := s.r.GetByIDForUser(ctx, bookingID, callerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return toResponse(row), nil
}

func (s *service) ListByBooker(ctx context.Context, userID int64, state model.BookingState) ([]model.BookingResponse, error) {
	exists, err := s.r.UserExists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	rows, err := s.r.ListByBooker(ctx, userID, state, s.now())
	if err != nil {
		return nil, err
	}
	return toResponses(rows), nil
}

func (s *service) ListByOwner(ctx context.Context, userID int64, state model.BookingState) ([]model.BookingResponse, error) {
	exists, err := s.r.UserExists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	owns, err := s.r.OwnsAnyItem(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !owns {
		return nil, ErrOwnsNothing
	}

	rows, err := s.r.ListByOwner(ctx, userID, state, s.now())
	if err != nil {
		return nil, err
	}
	return toResponses(rows), nil
}

func toResponse(row *bookingrepo.Row) *model.BookingResponse {
	return &model.BookingResponse{
		ID:     row.ID,
		Start:  model.NewDateTime(row.Start),
		End:    model.NewDateTime(row.End),
		Status: row.Status,
		Booker: model.UserShort{ID: row.BookerID, Name: row.BookerName},
		Item:   model.ItemShort{ID: row.ItemID, Name: row.ItemName},
	}
}

func toResponses(rows []bookingrepo.Row) []model.BookingResponse {
	out := make([]model.BookingResponse, 0, len(rows))
	for i := range rows {
		out = append(out, *toResponse(&rows[i]))
	}
	return out
}
