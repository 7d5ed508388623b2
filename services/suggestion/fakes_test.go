package suggestion

import (
	"context"
	"errors"
	"fmt"

	"roomly/models"
	"roomly/services/ai"
	"roomly/services/booking"
)

// stubAI replays canned responses (or errors) in call order.
type stubAI struct {
	replies []string
	errs    []error
	calls   int
	prompts []string
}

func (s *stubAI) GenerateJSON(_ context.Context, _, user string) (string, error) {
	i := s.calls
	s.calls++
	s.prompts = append(s.prompts, user)
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if i < len(s.replies) {
		return s.replies[i], nil
	}
	return "", errors.New("stubAI: no reply configured")
}

// failAI always fails; used to force the deterministic fallback path.
type failAI struct{}

func (failAI) GenerateJSON(context.Context, string, string) (string, error) {
	return "", errors.New("model unavailable")
}

// stubRooms is a fixed room catalog preserving listing order.
type stubRooms struct {
	rooms []models.Room
}

func (s *stubRooms) GetByID(id string) (*models.Room, error) {
	for i := range s.rooms {
		if s.rooms[i].ID == id {
			r := s.rooms[i]
			return &r, nil
		}
	}
	return nil, nil
}

func (s *stubRooms) GetAll() ([]models.Room, error) { return s.rooms, nil }

func (s *stubRooms) GetAvailable() ([]models.Room, error) {
	out := make([]models.Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		if r.Available {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubRooms) Create(*models.Room) error { return nil }
func (s *stubRooms) Update(*models.Room) error { return nil }
func (s *stubRooms) Delete(string) error       { return nil }

type slot struct {
	roomID string
	date   string
	start  int
	end    int
}

// stubBookings implements booking.BookingService over a static busy-slot set.
// CreateBooking records the booking and marks its slot busy, so later items
// in a batch observe earlier ones.
type stubBookings struct {
	busy     []slot
	existing []models.Booking
	created  []booking.CreateBookingInput
	seq      int
}

func (s *stubBookings) CheckAvailability(roomID, date string, start, end int) (bool, error) {
	for _, b := range s.busy {
		if b.roomID == roomID && b.date == date && b.start < end && start < b.end {
			return false, nil
		}
	}
	return true, nil
}

func (s *stubBookings) CreateBooking(input booking.CreateBookingInput) (*models.Booking, error) {
	free, _ := s.CheckAvailability(input.RoomID, input.Date, input.Start, input.End)
	if !free {
		return nil, booking.ConflictError{
			RoomID: input.RoomID, Date: input.Date, Start: input.Start, End: input.End,
		}
	}
	s.busy = append(s.busy, slot{input.RoomID, input.Date, input.Start, input.End})
	s.created = append(s.created, input)
	s.seq++
	return &models.Booking{
		ID:          fmt.Sprintf("bk-%d", s.seq),
		RoomID:      input.RoomID,
		OrganizerID: input.OrganizerID,
		Date:        input.Date,
		Start:       input.Start,
		End:         input.End,
	}, nil
}

func (s *stubBookings) GetBooking(string, string) (*models.Booking, error) { return nil, nil }
func (s *stubBookings) UpdateBooking(string, string, booking.UpdateBookingInput) (*models.Booking, error) {
	return nil, nil
}
func (s *stubBookings) CancelBooking(string, string) error { return nil }
func (s *stubBookings) DeleteBooking(string, string) error { return nil }
func (s *stubBookings) ApproveBooking(string, string) (*models.Booking, error) {
	return nil, nil
}
func (s *stubBookings) RejectBooking(string, string, string) (*models.Booking, error) {
	return nil, nil
}
func (s *stubBookings) UserBookings(string, booking.DateRange, string) ([]models.Booking, error) {
	return s.existing, nil
}
func (s *stubBookings) RoomBookings(string, booking.DateRange, string) ([]models.Booking, error) {
	return nil, nil
}
func (s *stubBookings) PendingBookings(int64, int64) ([]models.Booking, int64, error) {
	return nil, 0, nil
}

func room(id string, capacity int, amenities ...string) models.Room {
	return models.Room{
		ID:        id,
		Name:      "Room " + id,
		Capacity:  capacity,
		Amenities: amenities,
		Available: true,
	}
}

func newSuggestionService(client ai.Client, rooms []models.Room, bookings *stubBookings) *DefaultSuggestionService {
	return &DefaultSuggestionService{
		AI:       client,
		Rooms:    &stubRooms{rooms: rooms},
		Bookings: bookings,
	}
}
