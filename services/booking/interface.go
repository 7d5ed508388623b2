package booking

import (
	"time"

	bookingRepo "roomly/database/repository/booking"
	roomRepo "roomly/database/repository/room"
	"roomly/models"
)

// DefaultWindowDays is the query window applied when no date range is given.
const DefaultWindowDays = 21

// MaxRejectionReasonLen bounds the free-text reason on a rejection.
const MaxRejectionReasonLen = 500

// CreateBookingInput carries everything needed to create a booking.
type CreateBookingInput struct {
	RoomID         string
	OrganizerID    string
	Date           string // "YYYY-MM-DD"
	Start          int    // minutes from midnight
	End            int
	ParticipantIDs []string
}

// UpdateBookingInput carries the mutable booking fields; nil means unchanged.
type UpdateBookingInput struct {
	Date           *string
	Start          *int
	End            *int
	ParticipantIDs *[]string
}

// DateRange is an inclusive date window.
type DateRange struct {
	Start string
	End   string
}

// DefaultDateRange returns today through today+21 days.
func DefaultDateRange(now time.Time) DateRange {
	return DateRange{
		Start: now.Format(models.DateLayout),
		End:   now.AddDate(0, 0, DefaultWindowDays).Format(models.DateLayout),
	}
}

// BookingService owns the booking lifecycle: slot availability, creation,
// mutation, the manager approval workflow, and read queries.
type BookingService interface {
	CheckAvailability(roomID, date string, start, end int) (bool, error)
	CreateBooking(input CreateBookingInput) (*models.Booking, error)
	GetBooking(id, actorID string) (*models.Booking, error)
	UpdateBooking(id, actorID string, input UpdateBookingInput) (*models.Booking, error)
	CancelBooking(id, actorID string) error
	DeleteBooking(id, actorID string) error
	ApproveBooking(id, managerID string) (*models.Booking, error)
	RejectBooking(id, managerID, reason string) (*models.Booking, error)
	UserBookings(userID string, rng DateRange, status string) ([]models.Booking, error)
	RoomBookings(roomID string, rng DateRange, status string) ([]models.Booking, error)
	PendingBookings(skip, limit int64) ([]models.Booking, int64, error)
}

// DefaultBookingService is the production booking lifecycle manager.
type DefaultBookingService struct {
	Rooms    roomRepo.RoomRepository
	Bookings bookingRepo.BookingRepository
}
