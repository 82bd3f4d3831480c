// model/user.go
package model

type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserCreateReq represents the signup payload
// swagger:model UserCreateReq
type UserCreateReq struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// UserPatchReq carries a partial edit: nil fields stay unchanged.
type UserPatchReq struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}

// UserShort is the denormalized snapshot embedded in booking responses.
type UserShort struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
