package booking

import (
	"context"
	"fmt"
)

// Identity is the signed-in user as seen by the booking flow.
type Identity struct {
	UserID   uint
	Username string
	Email    string
}

// IdentityProvider exposes the session to the controller: a read-only
// accessor plus an explicit logout. Implementations live with the API client;
// the controller never owns session state.
type IdentityProvider interface {
	Current() (Identity, bool)
	Logout()
}

// RoomSnapshot is the bookable view of a room the form renders: price per
// night, capacity and the human label.
type RoomSnapshot struct {
	ID         uint    `json:"ID"`
	RoomNumber string  `json:"roomNumber"`
	PriceBase  float64 `json:"priceBase"`
	Capacity   int     `json:"capacity"`
}

// CreateResult is what the server hands back for a freshly created pending
// reservation.
type CreateResult struct {
	ID               uint    `json:"id"`
	ConfirmationCode string  `json:"confirmation_code"`
	Total            float64 `json:"total"`
}

// API is the slice of the backend the booking flow needs.
type API interface {
	RoomSnapshot(ctx context.Context, roomID uint) (RoomSnapshot, error)
	CreateRoomReservation(ctx context.Context, d Draft) (CreateResult, error)
	VerifyRoomReservation(ctx context.Context, reservationID uint, code string) error
	ResendRoomOTP(ctx context.Context, reservationID uint) error
}

// RequestError is a server-reported failure. FieldErrors is populated when
// the server could pin the problem to specific inputs (e.g. a date conflict).
type RequestError struct {
	StatusCode  int
	Message     string
	FieldErrors map[string]string
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("server error (%d)", e.StatusCode)
}
