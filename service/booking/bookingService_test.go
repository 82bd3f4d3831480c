package bookingsvc_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"shareit/model"
	bookingrepo "shareit/repository/booking"
	bookingsvc "shareit/service/booking"
)

// fakeTx satisfies pgx.Tx; only Commit/Rollback are ever called by the
// service, everything else would panic through the embedded nil.
type fakeTx struct{ pgx.Tx }

func (fakeTx) Commit(ctx context.Context) error   { return nil }
func (fakeTx) Rollback(ctx context.Context) error { return nil }

type fakeDB struct{}

func (fakeDB) Begin(ctx context.Context) (pgx.Tx, error) { return fakeTx{}, nil }

type repoMock struct {
	userExistsFn     func(ctx context.Context, userID int64) (bool, error)
	ownsAnyItemFn    func(ctx context.Context, userID int64) (bool, error)
	getItemFn        func(ctx context.Context, tx pgx.Tx, itemID int64) (*model.Item, error)
	hasOverlappingFn func(ctx context.Context, tx pgx.Tx, itemID int64, start, end time.Time) (bool, error)
	insertFn         func(ctx context.Context, tx pgx.Tx, b *model.Booking) (*bookingrepo.Row, error)
	getForUpdateFn   func(ctx context.Context, tx pgx.Tx, bookingID int64) (*bookingrepo.Row, error)
	updateStatusFn   func(ctx context.Context, tx pgx.Tx, bookingID int64, status model.BookingStatus) error
	getByIDForUserFn func(ctx context.Context, bookingID, userID int64) (*bookingrepo.Row, error)
	listByBookerFn   func(ctx context.Context, userID int64, state model.BookingState, now time.Time) ([]bookingrepo.Row, error)
	listByOwnerFn    func(ctx context.Context, userID int64, state model.BookingState, now time.Time) ([]bookingrepo.Row, error)
}

var _ bookingrepo.Repo = (*repoMock)(nil)

func (m *repoMock) UserExists(ctx context.Context, userID int64) (bool, error) {
	if m.userExistsFn == nil {
		return true, nil
	}
	return m.userExistsFn(ctx, userID)
}

func (m *repoMock) OwnsAnyItem(ctx context.Context, userID int64) (bool, error) {
	if m.ownsAnyItemFn == nil {
		return true, nil
	}
	return m.ownsAnyItemFn(ctx, userID)
}

func (m *repoMock) GetItemForUpdate(ctx context.Context, tx pgx.Tx, itemID int64) (*model.Item, error) {
	return m.getItemFn(ctx, tx, itemID)
}

func (m *repoMock) HasOverlapping(ctx context.Context, tx pgx.Tx, itemID int64, start, end time.Time) (bool, error) {
	if m.hasOverlappingFn == nil {
		return false, nil
	}
	return m.hasOverlappingFn(ctx, tx, itemID, start, end)
}

func (m *repoMock) Insert(ctx context.Context, tx pgx.Tx, b *model.Booking) (*bookingrepo.Row, error) {
	return m.insertFn(ctx, tx, b)
}

func (m *repoMock) GetForUpdate(ctx context.Context, tx pgx.Tx, bookingID int64) (*bookingrepo.Row, error) {
	return m.getForUpdateFn(ctx, tx, bookingID)
}

func (m *repoMock) UpdateStatus(ctx context.Context, tx pgx.Tx, bookingID int64, status model.BookingStatus) error {
	if m.updateStatusFn == nil {
		return nil
	}
	return m.updateStatusFn(ctx, tx, bookingID, status)
}

func (m *repoMock) GetByIDForUser(ctx context.Context, bookingID, userID int64) (*bookingrepo.Row, error) {
	return m.getByIDForUserFn(ctx, bookingID, userID)
}

func (m *repoMock) ListByBooker(ctx context.Context, userID int64, state model.BookingState, now time.Time) ([]bookingrepo.Row, error) {
	return m.listByBookerFn(ctx, userID, state, now)
}

func (m *repoMock) ListByOwner(ctx context.Context, userID int64, state model.BookingState, now time.Time) ([]bookingrepo.Row, error) {
	return m.listByOwnerFn(ctx, userID, state, now)
}

func dt(t time.Time) *model.DateTime {
	d := model.NewDateTime(t)
	return &d
}

var base = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func availableItem() *model.Item {
	return &model.Item{ID: 10, Name: "Drill", Description: "Powerful drill", Available: true, OwnerID: 1}
}

func waitingRow() *bookingrepo.Row {
	return &bookingrepo.Row{
		ID: 5, Start: base, End: base.Add(24 * time.Hour),
		Status: model.BookingWaiting,
		ItemID: 10, ItemName: "Drill", OwnerID: 1,
		BookerID: 2, BookerName: "Ben",
	}
}

func TestCreate_Success(t *testing.T) {
	m := &repoMock{
		getItemFn: func(ctx context.Context, tx pgx.Tx, itemID int64) (*model.Item, error) {
			require.Equal(t, int64(10), itemID)
			return availableItem(), nil
		},
		insertFn: func(ctx context.Context, tx pgx.Tx, b *model.Booking) (*bookingrepo.Row, error) {
			require.Equal(t, model.BookingWaiting, b.Status)
			require.Equal(t, int64(2), b.BookerID)
			b.ID = 5
			return waitingRow(), nil
		},
	}
	svc := bookingsvc.New(fakeDB{}, m)

	out, err := svc.Create(context.Background(), 2, model.BookingCreateReq{
		ItemID: 10, Start: dt(base), End: dt(base.Add(24 * time.Hour)),
	})
	require.NoError(t, err)
	require.Equal(t, int64(5), out.ID)
	require.Equal(t, model.BookingWaiting, out.Status)
	require.Equal(t, "Drill", out.Item.Name)
	require.Equal(t, "Ben", out.Booker.Name)
}

func TestCreate_UserNotFound(t *testing.T) {
	m := &repoMock{
		userExistsFn: func(ctx context.Context, userID int64) (bool, error) { return false, nil },
	}
	svc := bookingsvc.New(fakeDB{}, m)

	_, err := svc.Create(context.Background(), 99, model.BookingCreateReq{
		ItemID: 10, Start: dt(base), End: dt(base.Add(time.Hour)),
	})
	require.ErrorIs(t, err, bookingsvc.ErrUserNotFound)
}

func TestCreate_ItemNotFound(t *testing.T) {
	m := &repoMock{
		getItemFn: func(ctx context.Context, tx pgx.Tx, itemID int64) (*model.Item, error) {
			return nil, pgx.ErrNoRows
		},
	}
	svc := bookingsvc.New(fakeDB{}, m)

	_, err := svc.Create(context.Background(), 2, model.BookingCreateReq{
		ItemID: 404, Start: dt(base), End: dt(base.Add(time.Hour)),
	})
	require.ErrorIs(t, err, bookingsvc.ErrItemNotFound)
}

func TestCreate_Unavailable(t *testing.T) {
	m := &repoMock{
		getItemFn: func(ctx context.Context, tx pgx.Tx, itemID int64) (*model.Item, error) {
			it := availableItem()
			it.Available = false
			return it, nil
		},
	}
	svc := bookingsvc.New(fakeDB{}, m)

	_, err := svc.Create(context.Background(), 2, model.BookingCreateReq{
		ItemID: 10, Start: dt(base), End: dt(base.Add(time.Hour)),
	})
	require.ErrorIs(t, err, bookingsvc.ErrUnavailable)
}

func TestCreate_InvalidDates(t *testing.T) {
	svc := bookingsvc.New(fakeDB{}, &repoMock{})

	// start after end
	_, err := svc.Create(context.Background(), 2, model.BookingCreateReq{
		ItemID: 10, Start: dt(base.Add(time.Hour)), End: dt(base),
	})
	require.ErrorIs(t, err, bookingsvc.ErrDates)

	// start equals end: the interval is half-open, zero length is invalid
	_, err = svc.Create(context.Background(), 2, model.BookingCreateReq{
		ItemID: 10, Start: dt(base), End: dt(base),
	})
	require.ErrorIs(t, err, bookingsvc.ErrDates)
}

func TestCreate_Overlap(t *testing.T) {
	m := &repoMock{
		getItemFn: func(ctx context.Context, tx pgx.Tx, itemID int64) (*model.Item, error) {
			return availableItem(), nil
		},
		hasOverlappingFn: func(ctx context.Context, tx pgx.Tx, itemID int64, start, end time.Time) (bool, error) {
			return true, nil
		},
	}
	svc := bookingsvc.New(fakeDB{}, m)

	_, err := svc.Create(context.Background(), 2, model.BookingCreateReq{
		ItemID: 10, Start: dt(base), End: dt(base.Add(time.Hour)),
	})
	require.ErrorIs(t, err, bookingsvc.ErrOverlap)
}

func TestSetApproved_Approve(t *testing.T) {
	var updated model.BookingStatus
	m := &repoMock{
		getForUpdateFn: func(ctx context.Context, tx pgx.Tx, bookingID int64) (*bookingrepo.Row, error) {
			return waitingRow(), nil
		},
		updateStatusFn: func(ctx context.Context, tx pgx.Tx, bookingID int64, status model.BookingStatus) error {
			updated = status
			return nil
		},
	}
	svc := bookingsvc.New(fakeDB{}, m)

	out, err := svc.SetApproved(context.Background(), 5, 1, true)
	require.NoError(t, err)
	require.Equal(t, model.BookingApproved, out.Status)
	require.Equal(t, model.BookingApproved, updated)
}

func TestSetApproved_Reject(t *testing.T) {
	m := &repoMock{
		getForUpdateFn: func(ctx context.Context, tx pgx.Tx, bookingID int64) (*bookingrepo.Row, error) {
			return waitingRow(), nil
		},
	}
	svc := bookingsvc.New(fakeDB{}, m)

	out, err := svc.SetApproved(context.Background(), 5, 1, false)
	require.NoError(t, err)
	require.Equal(t, model.BookingRejected, out.Status)
}

func TestSetApproved_NotOwner(t *testing.T) {
	m := &repoMock{
		getForUpdateFn: func(ctx context.Context, tx pgx.Tx, bookingID int64) (*bookingrepo.Row, error) {
			return waitingRow(), nil
		},
	}
	svc := bookingsvc.New(fakeDB{}, m)

	// caller 2 is the booker, not the item owner
	_, err := svc.SetApproved(context.Background(), 5, 2, true)
	require.ErrorIs(t, err, bookingsvc.ErrNotOwner)
}

func TestSetApproved_OnlyOnce(t *testing.T) {
	row := waitingRow()
	row.Status = model.BookingApproved
	m := &repoMock{
		getForUpdateFn: func(ctx context.Context, tx pgx.Tx, bookingID int64) (*bookingrepo.Row, error) {
			return row, nil
		},
	}
	svc := bookingsvc.New(fakeDB{}, m)

	_, err := svc.SetApproved(context.Background(), 5, 1, false)
	require.ErrorIs(t, err, bookingsvc.ErrNotWaiting)
}

func TestSetApproved_NotFound(t *testing.T) {
	m := &repoMock{
		getForUpdateFn: func(ctx context.Context, tx pgx.Tx, bookingID int64) (*bookingrepo.Row, error) {
			return nil, pgx.ErrNoRows
		},
	}
	svc := bookingsvc.New(fakeDB{}, m)

	_, err := svc.SetApproved(context.Background(), 404, 1, true)
	require.ErrorIs(t, err, bookingsvc.ErrBookingNotFound)
}

func TestGet_NotFoundForStranger(t *testing.T) {
	m := &repoMock{
		getByIDForUserFn: func(ctx context.Context, bookingID, userID int64) (*bookingrepo.Row, error) {
			return nil, pgx.ErrNoRows
		},
	}
	svc := bookingsvc.New(fakeDB{}, m)

	_, err := svc.Get(context.Background(), 5, 77)
	require.ErrorIs(t, err, bookingsvc.ErrBookingNotFound)
}

func TestListByBooker_PassesStateAndClock(t *testing.T) {
	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	var gotState model.BookingState
	var gotNow time.Time
	m := &repoMock{
		listByBookerFn: func(ctx context.Context, userID int64, state model.BookingState, n time.Time) ([]bookingrepo.Row, error) {
			gotState = state
			gotNow = n
			return []bookingrepo.Row{*waitingRow()}, nil
		},
	}
	svc := bookingsvc.NewWithClock(fakeDB{}, m, func() time.Time { return now })

	out, err := svc.ListByBooker(context.Background(), 2, model.StateCurrent)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, model.StateCurrent, gotState)
	require.Equal(t, now, gotNow)
}

func TestListByBooker_UserNotFound(t *testing.T) {
	m := &repoMock{
		userExistsFn: func(ctx context.Context, userID int64) (bool, error) { return false, nil },
	}
	svc := bookingsvc.New(fakeDB{}, m)

	_, err := svc.ListByBooker(context.Background(), 99, model.StateAll)
	require.ErrorIs(t, err, bookingsvc.ErrUserNotFound)
}

func TestListByOwner_OwnsNothing(t *testing.T) {
	m := &repoMock{
		ownsAnyItemFn: func(ctx context.Context, userID int64) (bool, error) { return false, nil },
	}
	svc := bookingsvc.New(fakeDB{}, m)

	_, err := svc.ListByOwner(context.Background(), 2, model.StateAll)
	require.ErrorIs(t, err, bookingsvc.ErrOwnsNothing)
}
