// repository/item/itemRepository.go
package itemrepo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"shareit/model"
	"shareit/util/database"
)

// LastNext carries the owner-view booking markers for one item.
type LastNext struct {
	Last *time.Time
	Next *time.Time
}

type Repo interface {
	UserExists(ctx context.Context, userID int64) (bool, error)
	RequestExists(ctx context.Context, requestID int64) (bool, error)

	Create(ctx context.Context, it *model.Item) error
	GetByID(ctx context.Context, id int64) (*model.Item, error)
	Update(ctx context.Context, it *model.Item) error
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Item, error)
	Search(ctx context.Context, text string) ([]model.Item, error)

	InsertComment(ctx context.Context, c *model.Comment) error
	AuthorName(ctx context.Context, authorID int64) (string, error)
	ListComments(ctx context.Context, itemIDs []int64) (map[int64][]model.CommentResponse, error)
	HasFinishedApprovedBooking(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
	LastNextBookings(ctx context.Context, itemIDs []int64, now time.Time) (map[int64]LastNext, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

func (r *repo) UserExists(ctx context.Context, userID int64) (bool, error) {
	var ok bool
	err := r.db.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&ok)
	return ok, err
}

func (r *repo) RequestExists(ctx context.Context, requestID int64) (bool, error) {
	var ok bool
	err := r.db.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM requests WHERE id = $1)`, requestID).Scan(&ok)
	return ok, err
}

func (r *repo) Create(ctx context.Context, it *model.Item) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO items (name, description, available, owner_id, request_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		it.Name, it.Description, it.Available, it.OwnerID, it.RequestID,
	).Scan(&it.ID)
}

func (r *repo) GetByID(ctx context.Context, id int64) (*model.Item, error) {
	it := &model.Item{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, name, description, available, owner_id, request_id
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
		SET name = $2, description = $3, available = $4
		WHERE id = $1`,
		it.ID, it.Name, it.Description, it.Available)
	return err
}

func (r *repo) ListByOwner(ctx context.Context, ownerID int64) ([]model.Item, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, name, description, available, owner_id, request_id
		FROM items
		WHERE owner_id = $1
		ORDER BY id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanItems(rows)
}

// Search matches name or description case-insensitively. Only available
// items are returned.
func (r *repo) Search(ctx context.Context, text string) ([]model.Item, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, name, description, available, owner_id, request_id
		FROM items
		WHERE available
		  AND (name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
		ORDER BY id`, text)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanItems(rows)
}

func (r *repo) InsertComment(ctx context.Context, c *model.Comment) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO comments (text, author_id, item_id, created)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		c.Text, c.AuthorID, c.ItemID, c.Created,
	).Scan(&c.ID)
}

func (r *repo) AuthorName(ctx context.Context, authorID int64) (string, error) {
	var name string
	err := r.db.Pool.QueryRow(ctx,
		`SELECT name FROM users WHERE id = $1`, authorID).Scan(&name)
	return name, err
}

func (r *repo) ListComments(ctx context.Context, itemIDs []int64) (map[int64][]model.CommentResponse, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT c.item_id, c.id, c.text, u.name, c.created
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.item_id = ANY($1)
		ORDER BY c.created DESC`, itemIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64][]model.CommentResponse)
	for rows.Next() {
		var itemID int64
		var c model.CommentResponse
		var created time.Time
		if err := rows.Scan(&itemID, &c.ID, &c.Text, &c.AuthorName, &created); err != nil {
			return nil, err
		}
		c.Created = model.NewDateTime(created)
		out[itemID] = append(out[itemID], c)
	}
	return out, rows.Err()
}

// HasFinishedApprovedBooking is the verified-renter gate for comments.
func (r *repo) HasFinishedApprovedBooking(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1
			FROM bookings
			WHERE booker_id = $1
			  AND item_id = $2
			  AND status = 'APPROVED'
			  AND end_date <= $3
		)`
	var ok bool
	err := r.db.Pool.QueryRow(ctx, q, bookerID, itemID, now).Scan(&ok)
	return ok, err
}

// LastNextBookings computes, per item, the end of the latest finished
// booking and the start of the earliest future one in a single grouped
// query. REJECTED and CANCELED bookings never show up as markers.
func (r *repo) LastNextBookings(ctx context.Context, itemIDs []int64, now time.Time) (map[int64]LastNext, error) {
	const q = `
		SELECT item_id,
		       MAX(end_date)   FILTER (WHERE end_date < $2)   AS last_end,
		       MIN(start_date) FILTER (WHERE start_date > $2) AS next_start
		FROM bookings
		WHERE item_id = ANY($1)
		  AND status IN ('WAITING', 'APPROVED')
		GROUP BY item_id`
	rows, err := r.db.Pool.Query(ctx, q, itemIDs, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64]LastNext)
	for rows.Next() {
		var itemID int64
		var ln LastNext
		if err := rows.Scan(&itemID, &ln.Last, &ln.Next); err != nil {
			return nil, err
		}
		out[itemID] = ln
	}
	return out, rows.Err()
}

func scanItems(rows pgx.Rows) ([]model.Item, error) {
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
