// model/comment.go
package model

import "time"

type Comment struct {
	ID       int64     `json:"id"`
	Text     string    `json:"text"`
	AuthorID int64     `json:"-"`
	ItemID   int64     `json:"-"`
	Created  time.Time `json:"created"`
}

// CommentCreateReq represents the comment payload
// swagger:model CommentCreateReq
type CommentCreateReq struct {
	Text string `json:"text" validate:"required"`
}

type CommentResponse struct {
	ID         int64    `json:"id"`
	Text       string   `json:"text"`
	AuthorName string   `json:"authorName"`
	Created    DateTime `json:"created"`
}
