package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type BookingStatus string

const (
	StatusWaiting  BookingStatus = "WAITING"
	StatusApproved BookingStatus = "APPROVED"
	StatusRejected BookingStatus = "REJECTED"
	StatusCanceled BookingStatus = "CANCELED"
)

type Booking struct {
	ID       int64         `json:"id"`
	ItemID   int64         `json:"itemId"`
	BookerID int64         `json:"bookerId"`
	Start    time.Time     `json:"start"`
	End      time.Time     `json:"end"`
	Status   BookingStatus `json:"status"`
}

// BookingState is the query filter for booking lists. It is not a status:
// CURRENT, PAST and FUTURE are evaluated against the clock.
type BookingState string

const (
	StateAll      BookingState = "ALL"
	StateCurrent  BookingState = "CURRENT"
	StatePast     BookingState = "PAST"
	StateFuture   BookingState = "FUTURE"
	StateWaiting  BookingState = "WAITING"
	StateRejected BookingState = "REJECTED"
)

var ErrUnknownState = errors.New("unknown state")

// ParseBookingState rejects anything outside the closed filter set.
// An unrecognized value is an error, never a fallback to ALL.
func ParseBookingState(s string) (BookingState, error) {
	switch st := BookingState(strings.ToUpper(s)); st {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return st, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownState, s)
	}
}
