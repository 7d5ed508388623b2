package booking

import "fmt"

// CheckAvailability reports whether a room is free for the given slot. It
// scans the room's active bookings for the date and applies the half-open
// overlap rule; abutting intervals do not conflict. No side effects.
func (s *DefaultBookingService) CheckAvailability(roomID, date string, start, end int) (bool, error) {
	return s.slotFree(roomID, date, start, end, "")
}

// slotFree is the advisory conflict check. excludeID skips a booking's own
// prior occupancy so interval updates do not collide with themselves. The
// persistence layer enforces the same invariant transactionally on create.
func (s *DefaultBookingService) slotFree(roomID, date string, start, end int, excludeID string) (bool, error) {
	active, err := s.Bookings.GetActiveByRoomAndDate(roomID, date)
	if err != nil {
		return false, fmt.Errorf("failed to load bookings for room %s: %w", roomID, err)
	}
	for _, b := range active {
		if b.ID == excludeID {
			continue
		}
		if b.Overlaps(start, end) {
			return false, nil
		}
	}
	return true, nil
}
