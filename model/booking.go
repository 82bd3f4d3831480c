// model/booking.go
package model

import (
	"fmt"
	"time"
)

type BookingStatus string

const (
	BookingWaiting  BookingStatus = "WAITING"
	BookingApproved BookingStatus = "APPROVED"
	BookingRejected BookingStatus = "REJECTED"
	BookingCanceled BookingStatus = "CANCELED"
)

type Booking struct {
	ID       int64         `json:"id"`
	Start    time.Time     `json:"start"`
	End      time.Time     `json:"end"`
	ItemID   int64         `json:"itemId"`
	BookerID int64         `json:"bookerId"`
	Status   BookingStatus `json:"status"`
}

// BookingState is the closed set of list filters. An unknown value is a
// client error, not a fallback to ALL.
type BookingState string

const (
	StateAll      BookingState = "ALL"
	StateCurrent  BookingState = "CURRENT"
	StatePast     BookingState = "PAST"
	StateFuture   BookingState = "FUTURE"
	StateWaiting  BookingState = "WAITING"
	StateRejected BookingState = "REJECTED"
)

// ParseBookingState maps a query value to a state filter. Empty input
// defaults to ALL.
func ParseBookingState(s string) (BookingState, error) {
	switch BookingState(s) {
	case "":
		return StateAll, nil
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return BookingState(s), nil
	default:
		return "", fmt.Errorf("unknown state: %s", s)
	}
}

// BookingCreateReq represents the booking payload
// swagger:model BookingCreateReq
type BookingCreateReq struct {
	ItemID int64     `json:"itemId" validate:"required,gt=0"`
	Start  *DateTime `json:"start" validate:"required"`
	End    *DateTime `json:"end" validate:"required"`
}

type BookingResponse struct {
	ID     int64         `json:"id"`
	Start  DateTime      `json:"start"`
	End    DateTime      `json:"end"`
	Status BookingStatus `json:"status"`
	Booker UserShort     `json:"booker"`
	Item   ItemShort     `json:"item"`
}
