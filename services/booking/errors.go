package booking

import (
	"errors"
	"fmt"

	"roomly/models"
)

// ErrRoomNotFound signals that the referenced room does not exist.
var ErrRoomNotFound = errors.New("room not found")

// ErrBookingNotFound signals that the referenced booking does not exist.
var ErrBookingNotFound = errors.New("booking not found")

// ErrNotAuthorized signals that the acting user lacks rights on the booking.
var ErrNotAuthorized = errors.New("not authorized")

// ErrNotPending signals an approval transition on a booking that is not
// awaiting approval.
var ErrNotPending = errors.New("booking not found or not in pending status")

// ValidationError rejects malformed input before it reaches storage.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

// ConflictError signals that the requested slot is already occupied.
type ConflictError struct {
	RoomID string
	Date   string
	Start  int
	End    int
}

func (e ConflictError) Error() string {
	return fmt.Sprintf("room %s is not available on %s between %s and %s",
		e.RoomID, e.Date, models.FormatClock(e.Start), models.FormatClock(e.End))
}
