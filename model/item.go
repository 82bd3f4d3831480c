// model/item.go
package model

type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"-"`
	RequestID   *int64 `json:"requestId,omitempty"`
}

// ItemCreateReq represents the listing payload
// swagger:model ItemCreateReq
type ItemCreateReq struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Available   *bool  `json:"available" validate:"required"`
	RequestID   *int64 `json:"requestId,omitempty" validate:"omitempty,gt=0"`
}

// ItemPatchReq carries a partial edit: nil fields stay unchanged.
type ItemPatchReq struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Description *string `json:"description,omitempty" validate:"omitempty,min=1"`
	Available   *bool   `json:"available,omitempty"`
}

// ItemShort is the denormalized snapshot embedded in booking responses.
type ItemShort struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ItemView is the single-item representation: comments always attached,
// lastBooking/nextBooking present only when the viewer owns the item.
type ItemView struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Available   bool              `json:"available"`
	Comments    []CommentResponse `json:"comments"`
	LastBooking *DateTime         `json:"lastBooking"`
	NextBooking *DateTime         `json:"nextBooking"`
}
