package booking

import (
	"context"
	"sort"
	"time"

	bookingRepo "roomly/database/repository/booking"
	"roomly/models"
)

// memRoomRepo is an in-memory room repository keeping insertion order.
type memRoomRepo struct {
	rooms []models.Room
}

func (m *memRoomRepo) GetByID(id string) (*models.Room, error) {
	for i := range m.rooms {
		if m.rooms[i].ID == id {
			r := m.rooms[i]
			return &r, nil
		}
	}
	return nil, nil
}

func (m *memRoomRepo) GetAll() ([]models.Room, error) {
	return append([]models.Room(nil), m.rooms...), nil
}

func (m *memRoomRepo) GetAvailable() ([]models.Room, error) {
	out := make([]models.Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		if r.Available {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRoomRepo) Create(room *models.Room) error {
	m.rooms = append(m.rooms, *room)
	return nil
}

func (m *memRoomRepo) Update(room *models.Room) error {
	for i := range m.rooms {
		if m.rooms[i].ID == room.ID {
			m.rooms[i] = *room
		}
	}
	return nil
}

func (m *memRoomRepo) Delete(id string) error {
	for i := range m.rooms {
		if m.rooms[i].ID == id {
			m.rooms = append(m.rooms[:i], m.rooms[i+1:]...)
			return nil
		}
	}
	return nil
}

// memBookingRepo mirrors the Mongo repository's semantics in memory,
// including the transactional conflict guard.
type memBookingRepo struct {
	bookings map[string]*models.Booking
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (m *memBookingRepo) GetByID(id string) (*models.Booking, error) {
	if b, ok := m.bookings[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, nil
}

func (m *memBookingRepo) GetActiveByRoomAndDate(roomID, date string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range m.bookings {
		if b.RoomID == roomID && b.Date == date && b.Active() {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *memBookingRepo) GetByRoom(roomID, startDate, endDate, status string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range m.bookings {
		if b.RoomID != roomID || b.Date < startDate || b.Date > endDate {
			continue
		}
		if status != "" && b.Status != status {
			continue
		}
		out = append(out, *b)
	}
	sortBookings(out)
	return out, nil
}

func (m *memBookingRepo) GetByUser(userID, startDate, endDate, status string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range m.bookings {
		if b.Date < startDate || b.Date > endDate {
			continue
		}
		if status != "" && b.Status != status {
			continue
		}
		if b.OrganizerID != userID && !contains(b.ParticipantIDs, userID) {
			continue
		}
		out = append(out, *b)
	}
	sortBookings(out)
	return out, nil
}

func (m *memBookingRepo) GetPending(skip, limit int64) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range m.bookings {
		if b.ApprovalStatus == models.ApprovalPending {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if skip >= int64(len(out)) {
		return nil, nil
	}
	out = out[skip:]
	if limit > 0 && limit < int64(len(out)) {
		out = out[:limit]
	}
	return out, nil
}

func (m *memBookingRepo) CountPending() (int64, error) {
	var n int64
	for _, b := range m.bookings {
		if b.ApprovalStatus == models.ApprovalPending {
			n++
		}
	}
	return n, nil
}

func (m *memBookingRepo) CreateWithConflictCheck(_ context.Context, booking *models.Booking) error {
	for _, b := range m.bookings {
		if b.RoomID == booking.RoomID && b.Date == booking.Date && b.Active() &&
			b.Overlaps(booking.Start, booking.End) {
			return bookingRepo.ErrSlotTaken
		}
	}
	cp := *booking
	m.bookings[booking.ID] = &cp
	return nil
}

func (m *memBookingRepo) UpdateWithConflictCheck(_ context.Context, booking *models.Booking) error {
	for _, b := range m.bookings {
		if b.ID != booking.ID && b.RoomID == booking.RoomID && b.Date == booking.Date &&
			b.Active() && b.Overlaps(booking.Start, booking.End) {
			return bookingRepo.ErrSlotTaken
		}
	}
	cp := *booking
	cp.UpdatedAt = time.Now()
	m.bookings[booking.ID] = &cp
	return nil
}

func (m *memBookingRepo) Update(booking *models.Booking) error {
	cp := *booking
	cp.UpdatedAt = time.Now()
	m.bookings[booking.ID] = &cp
	return nil
}

func (m *memBookingRepo) UpdateStatus(id, status string) error {
	if b, ok := m.bookings[id]; ok {
		b.Status = status
	}
	return nil
}

func (m *memBookingRepo) ApproveIfPending(id, managerID string, at time.Time) (*models.Booking, error) {
	b, ok := m.bookings[id]
	if !ok || b.ApprovalStatus != models.ApprovalPending {
		return nil, bookingRepo.ErrNotPending
	}
	b.ApprovalStatus = models.ApprovalApproved
	b.ApprovedByID = managerID
	b.ApprovedAt = &at
	cp := *b
	return &cp, nil
}

func (m *memBookingRepo) RejectIfPending(id, managerID, reason string, at time.Time) (*models.Booking, error) {
	b, ok := m.bookings[id]
	if !ok || b.ApprovalStatus != models.ApprovalPending {
		return nil, bookingRepo.ErrNotPending
	}
	b.ApprovalStatus = models.ApprovalRejected
	b.ApprovedByID = managerID
	b.RejectionReason = reason
	b.ApprovedAt = &at
	cp := *b
	return &cp, nil
}

func (m *memBookingRepo) Delete(id string) error {
	delete(m.bookings, id)
	return nil
}

func (m *memBookingRepo) CompleteEnded(now time.Time) (int64, error) {
	today := now.Format(models.DateLayout)
	minutes := now.Hour()*60 + now.Minute()
	var n int64
	for _, b := range m.bookings {
		if b.Status != models.StatusUpcoming {
			continue
		}
		if b.Date < today || (b.Date == today && b.End <= minutes) {
			b.Status = models.StatusCompleted
			n++
		}
	}
	return n, nil
}

func sortBookings(bookings []models.Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		if bookings[i].Date != bookings[j].Date {
			return bookings[i].Date < bookings[j].Date
		}
		return bookings[i].Start < bookings[j].Start
	})
}

func newTestService(rooms ...models.Room) (*DefaultBookingService, *memBookingRepo) {
	repo := newMemBookingRepo()
	return &DefaultBookingService{
		Rooms:    &memRoomRepo{rooms: rooms},
		Bookings: repo,
	}, repo
}

func testRoom(id string, capacity int) models.Room {
	return models.Room{
		ID:        id,
		Name:      "Room " + id,
		Capacity:  capacity,
		Available: true,
	}
}
