package bookingRepo

import (
	"context"
	"errors"
	"time"

	"roomly/models"
)

// ErrSlotTaken is returned by CreateWithConflictCheck when an active booking
// already overlaps the requested interval.
var ErrSlotTaken = errors.New("slot already booked")

// ErrNotPending is returned by ApproveIfPending/RejectIfPending when the
// booking does not exist or is not awaiting approval.
var ErrNotPending = errors.New("booking not found or not pending")

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	// GetByID retrieves a booking by its unique ID; nil when absent.
	GetByID(id string) (*models.Booking, error)
	// GetActiveByRoomAndDate retrieves upcoming, non-rejected bookings for a
	// room on a given date. Input for the conflict check.
	GetActiveByRoomAndDate(roomID, date string) ([]models.Booking, error)
	// GetByRoom retrieves bookings for a room within a date range, optionally
	// filtered by lifecycle status.
	GetByRoom(roomID, startDate, endDate, status string) ([]models.Booking, error)
	// GetByUser retrieves bookings where the user is organizer or participant.
	GetByUser(userID, startDate, endDate, status string) ([]models.Booking, error)
	// GetPending retrieves bookings awaiting manager approval.
	GetPending(skip, limit int64) ([]models.Booking, error)
	// CountPending counts bookings awaiting manager approval.
	CountPending() (int64, error)
	// CreateWithConflictCheck inserts the booking inside a transaction that
	// re-verifies no active overlapping booking exists. The authoritative
	// no-double-booking guard; returns ErrSlotTaken on conflict.
	CreateWithConflictCheck(ctx context.Context, booking *models.Booking) error
	// UpdateWithConflictCheck replaces the booking inside a transaction that
	// re-verifies no other active booking overlaps its interval. Used for
	// interval-changing updates; returns ErrSlotTaken on conflict.
	UpdateWithConflictCheck(ctx context.Context, booking *models.Booking) error
	// Update replaces a booking document without re-checking the interval.
	Update(booking *models.Booking) error
	// UpdateStatus sets only the lifecycle status of a booking.
	UpdateStatus(id, status string) error
	// ApproveIfPending atomically approves a booking only while pending.
	ApproveIfPending(id, managerID string, at time.Time) (*models.Booking, error)
	// RejectIfPending atomically rejects a booking only while pending.
	RejectIfPending(id, managerID, reason string, at time.Time) (*models.Booking, error)
	// Delete physically removes a booking and its participant associations.
	Delete(id string) error
	// CompleteEnded transitions upcoming bookings whose interval has passed
	// to completed; returns the number of bookings transitioned.
	CompleteEnded(now time.Time) (int64, error)
}
