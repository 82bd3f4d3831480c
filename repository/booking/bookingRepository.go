// repository/booking/bookingRepository.go
package bookingrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"shareit/model"
	"shareit/util/database"
)

// Row is a booking with the denormalized item and booker snapshots the
// response format carries.
type Row struct {
	ID         int64
	Start      time.Time
	End        time.Time
	Status     model.BookingStatus
	ItemID     int64
	ItemName   string
	OwnerID    int64
	BookerID   int64
	BookerName string
}

type Repo interface {
	UserExists(ctx context.Context, userID int64) (bool, error)
	OwnsAnyItem(ctx context.Context, userID int64) (bool, error)

	// Transactional path: the item row lock serializes concurrent
	// check-then-act sequences on the same item.
	GetItemForUpdate(ctx context.Context, tx pgx.Tx, itemID int64) (*model.Item, error)
	HasOverlapping(ctx context.Context, tx pgx.Tx, itemID int64, start, end time.Time) (bool, error)
	Insert(ctx context.Context, tx pgx.Tx, b *model.Booking) (*Row, error)

	GetForUpdate(ctx context.Context, tx pgx.Tx, bookingID int64) (*Row, error)
	UpdateStatus(ctx context.Context, tx pgx.Tx, bookingID int64, status model.BookingStatus) error

	GetByIDForUser(ctx context.Context, bookingID, userID int64) (*Row, error)
	ListByBooker(ctx context.Context, userID int64, state model.BookingState, now time.Time) ([]Row, error)
	ListByOwner(ctx context.Context, userID int64, state model.BookingState, now time.Time) ([]Row, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db: db} }

func (r *repo) UserExists(ctx context.Context, userID int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`
	var ok bool
	err := r.db.Pool.QueryRow(ctx, q, userID).Scan(&ok)
	return ok, err
}

func (r *repo) OwnsAnyItem(ctx context.Context, userID int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM items WHERE owner_id = $1)`
	var ok bool
	err := r.db.Pool.QueryRow(ctx, q, userID).Scan(&ok)
	return ok, err
}

func (r *repo) GetItemForUpdate(ctx context.Context, tx pgx.Tx, itemID int64) (*model.Item, error) {
	const q = `
		SELECT id, name, description, available, owner_id, request_id
		FROM items
		WHERE id = $1
		FOR UPDATE`
	var it model.Item
	err := tx.QueryRow(ctx, q, itemID).Scan(
		&it.ID, &it.Name, &it.Description, &it.Available, &it.OwnerID, &it.RequestID,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// HasOverlapping tests half-open interval intersection. REJECTED and
// CANCELED bookings never block a new one.
func (r *repo) HasOverlapping(ctx context.Context, tx pgx.Tx, itemID int64, start, end time.Time) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1
			FROM bookings
			WHERE item_id = $1
			  AND status IN ('WAITING','APPROVED')
			  AND start_date < $3
			  AND end_date > $2
		)`
	var ok bool
	err := tx.QueryRow(ctx, q, itemID, start, end).Scan(&ok)
	return ok, err
}

func (r *repo) Insert(ctx context.Context, tx pgx.Tx, b *model.Booking) (*Row, error) {
	const q = `
		INSERT INTO bookings (start_date, end_date, item_id, booker_id, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := tx.QueryRow(ctx, q, b.Start, b.End, b.ItemID, b.BookerID, b.Status).Scan(&b.ID); err != nil {
		return nil, err
	}

	const snap = `
		SELECT b.id, b.start_date, b.end_date, b.status,
		       i.id, i.name, i.owner_id,
		       u.id, u.name
		FROM bookings b
		JOIN items i ON i.id = b.item_id
		JOIN users u ON u.id = b.booker_id
		WHERE b.id = $1`
	return scanRow(tx.QueryRow(ctx, snap, b.ID))
}

func (r *repo) GetForUpdate(ctx context.Context, tx pgx.Tx, bookingID int64) (*Row, error) {
	// Lock the booking row first, then join the snapshots. Locking through
	// the join would also lock the item and user rows.
	const lock = `SELECT id FROM bookings WHERE id = $1 FOR UPDATE`
	var id int64
	if err := tx.QueryRow(ctx, lock, bookingID).Scan(&id); err != nil {
		return nil, err
	}
	const q = `
		SELECT b.id, b.start_date, b.end_date, b.status,
		       i.id, i.name, i.owner_id,
		       u.id, u.name
		FROM bookings b
		JOIN items i ON i.id = b.item_id
		JOIN users u ON u.id = b.booker_id
		WHERE b.id = $1`
	return scanRow(tx.QueryRow(ctx, q, bookingID))
}

func (r *repo) UpdateStatus(ctx context.Context, tx pgx.Tx, bookingID int64, status model.BookingStatus) error {
	const q = `UPDATE bookings SET status = $2 WHERE id = $1`
	ct, err := tx.Exec(ctx, q, bookingID, status)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errors.New("booking vanished during update")
	}
	return nil
}

func (r *repo) GetByIDForUser(ctx context.Context, bookingID, userID int64) (*Row, error) {
	const q = `
		SELECT b.id, b.start_date, b.end_date, b.status,
		       i.id, i.name, i.owner_id,
		       u.id, u.name
		FROM bookings b
		JOIN items i ON i.id = b.item_id
		JOIN users u ON u.id = b.booker_id
		WHERE b.id = $1 AND (b.booker_id = $2 OR i.owner_id = $2)`
	return scanRow(r.db.Pool.QueryRow(ctx, q, bookingID, userID))
}

func (r *repo) ListByBooker(ctx context.Context, userID int64, state model.BookingState, now time.Time) ([]Row, error) {
	q := `
		SELECT b.id, b.start_date, b.end_date, b.status,
		       i.id, i.name, i.owner_id,
		       u.id, u.name
		FROM bookings b
		JOIN items i ON i.id = b.item_id
		JOIN users u ON u.id = b.booker_id
		WHERE b.booker_id = $1` + stateClause(state) + `
		ORDER BY b.start_date DESC`
	return r.list(ctx, q, userID, state, now)
}

func (r *repo) ListByOwner(ctx context.Context, userID int64, state model.BookingState, now time.Time) ([]Row, error) {
	q := `
		SELECT b.id, b.start_date, b.end_date, b.status,
		       i.id, i.name, i.owner_id,
		       u.id, u.name
		FROM bookings b
		JOIN items i ON i.id = b.item_id
		JOIN users u ON u.id = b.booker_id
		WHERE i.owner_id = $1` + stateClause(state) + `
		ORDER BY b.start_date DESC`
	return r.list(ctx, q, userID, state, now)
}

// stateClause appends the filter for the given state. CURRENT/PAST/FUTURE
// compare against $2 (query-time now), WAITING/REJECTED against $2 as the
// status literal.
func stateClause(state model.BookingState) string {
	switch state {
	case model.StateCurrent:
		return ` AND b.start_date <= $2 AND b.end_date >= $2`
	case model.StatePast:
		return ` AND b.end_date < $2`
	case model.StateFuture:
		return ` AND b.start_date > $2`
	case model.StateWaiting, model.StateRejected:
		return ` AND b.status = $2`
	default:
		return ``
	}
}

func (r *repo) list(ctx context.Context, q string, userID int64, state model.BookingState, now time.Time) ([]Row, error) {
	args := []any{userID}
	switch state {
	case model.StateCurrent, model.StatePast, model.StateFuture:
		args = append(args, now)
	case model.StateWaiting, model.StateRejected:
		args = append(args, string(state))
	}

	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var b Row
		if err := rows.Scan(
			&b.ID, &b.Start, &b.End, &b.Status,
			&b.ItemID, &b.ItemName, &b.OwnerID,
			&b.BookerID, &b.BookerName,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func scanRow(row pgx.Row) (*Row, error) {
	var b Row
	err := row.Scan(
		&b.ID, &b.Start, &b.End, &b.Status,
		&b.ItemID, &b.ItemName, &b.OwnerID,
		&b.BookerID, &b.BookerName,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
