// model/request.go
package model

import "time"

type ItemRequest struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	RequesterID int64     `json:"-"`
	Created     time.Time `json:"created"`
}

// RequestCreateReq represents the item-request payload
// swagger:model RequestCreateReq
type RequestCreateReq struct {
	Description string `json:"description" validate:"required"`
}

// RequestResponse includes the items listed in answer to the request.
type RequestResponse struct {
	ID          int64    `json:"id"`
	Description string   `json:"description"`
	Created     DateTime `json:"created"`
	Items       []Item   `json:"items"`
}
