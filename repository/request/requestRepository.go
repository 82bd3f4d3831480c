// repository/request/requestRepository.go
package requestrepo

import (
	"context"

	"shareit/model"
	"shareit/util/database"
)

type Repo interface {
	UserExists(ctx context.Context, userID int64) (bool, error)
	Insert(ctx context.Context, req *model.ItemRequest) error
	GetByID(ctx context.Context, id int64) (*model.ItemRequest, error)
	ListByRequester(ctx context.Context, userID int64) ([]model.ItemRequest, error)
	ListOthers(ctx context.Context, userID int64) ([]model.ItemRequest, error)
	ItemsByRequests(ctx context.Context, requestIDs []int64) (map[int64][]model.Item, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

func (r *repo) UserExists(ctx context.Context, userID int64) (bool, error) {
	var ok bool
	err := r.db.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&ok)
	return ok, err
}

func (r *repo) Insert(ctx context.Context, req *model.ItemRequest) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO requests (description, requester_id, created)
		VALUES ($1, $2, $3)
		RETURNING id`,
		req.Description, req.RequesterID, req.Created,
	).Scan(&req.ID)
}

func (r *repo) GetByID(ctx context.Context, id int64) (*model.ItemRequest, error) {
	req := &model.ItemRequest{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, description, requester_id, created
		FROM requests
		WHERE id = $1`,
		id,
	).Scan(&req.ID, &req.Description, &req.RequesterID, &req.Created)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *repo) ListByRequester(ctx context.Context, userID int64) ([]model.ItemRequest, error) {
	return r.listWhere(ctx, `WHERE requester_id = $1`, userID)
}

func (r *repo) ListOthers(ctx context.Context, userID int64) ([]model.ItemRequest, error) {
	return r.listWhere(ctx, `WHERE requester_id <> $1`, userID)
}

func (r *repo) listWhere(ctx context.Context, where string, userID int64) ([]model.ItemRequest, error) {
	q := `
		SELECT id, description, requester_id, created
		FROM requests ` + where + `
		ORDER BY created DESC`
	rows, err := r.db.Pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ItemRequest
	for rows.Next() {
		var req model.ItemRequest
		if err := rows.Scan(&req.ID, &req.Description, &req.RequesterID, &req.Created); err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

// ItemsByRequests resolves the weak back-reference from items to the
// requests they answer.
func (r *repo) ItemsByRequests(ctx context.Context, requestIDs []int64) (map[int64][]model.Item, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, name, description, available, owner_id, request_id
		FROM items
		WHERE request_id = ANY($1)
		ORDER BY id`, requestIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64][]model.Item)
	for rows.Next() {
		var it model.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.Available, &it.OwnerID, &it.RequestID); err != nil {
			return nil, err
		}
		if it.RequestID != nil {
			out[*it.RequestID] = append(out[*it.RequestID], it)
		}
	}
	return out, rows.Err()
}
