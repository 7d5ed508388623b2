package booking

import (
	"time"

	"roomly/models"
)

// UserBookings returns bookings where the user is organizer or participant
// within the range; a zero range defaults to today through today+21 days.
func (s *DefaultBookingService) UserBookings(userID string, rng DateRange, status string) ([]models.Booking, error) {
	rng = normalizeRange(rng)
	return s.Bookings.GetByUser(userID, rng.Start, rng.End, status)
}

// RoomBookings returns a room's bookings within the range.
func (s *DefaultBookingService) RoomBookings(roomID string, rng DateRange, status string) ([]models.Booking, error) {
	room, err := s.Rooms.GetByID(roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}
	rng = normalizeRange(rng)
	return s.Bookings.GetByRoom(roomID, rng.Start, rng.End, status)
}

// PendingBookings returns the manager approval queue plus its total size.
func (s *DefaultBookingService) PendingBookings(skip, limit int64) ([]models.Booking, int64, error) {
	bookings, err := s.Bookings.GetPending(skip, limit)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.Bookings.CountPending()
	if err != nil {
		return nil, 0, err
	}
	return bookings, count, nil
}

func normalizeRange(rng DateRange) DateRange {
	if rng.Start == "" || rng.End == "" {
		def := DefaultDateRange(time.Now())
		if rng.Start == "" {
			rng.Start = def.Start
		}
		if rng.End == "" {
			rng.End = def.End
		}
	}
	return rng
}
