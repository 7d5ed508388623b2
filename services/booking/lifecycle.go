package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingRepo "roomly/database/repository/booking"
	"roomly/models"
	"roomly/utils"
)

// CreateBooking validates the interval, verifies the room, runs the advisory
// conflict check and commits through the transactional repository guard. New
// bookings start upcoming with approval pending.
func (s *DefaultBookingService) CreateBooking(input CreateBookingInput) (*models.Booking, error) {
	logger := utils.GetLogger()

	if input.End <= input.Start {
		return nil, ValidationError{Reason: "end time must be after start time"}
	}
	if _, err := models.ParseDate(input.Date); err != nil {
		return nil, ValidationError{Reason: err.Error()}
	}

	room, err := s.Rooms.GetByID(input.RoomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}

	// Early-fail check; the transaction below remains the authoritative guard.
	free, err := s.slotFree(input.RoomID, input.Date, input.Start, input.End, "")
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, ConflictError{RoomID: input.RoomID, Date: input.Date, Start: input.Start, End: input.End}
	}

	now := time.Now()
	booking := &models.Booking{
		ID:             uuid.New().String(),
		RoomID:         input.RoomID,
		OrganizerID:    input.OrganizerID,
		Date:           input.Date,
		Start:          input.Start,
		End:            input.End,
		Status:         models.StatusUpcoming,
		ApprovalStatus: models.ApprovalPending,
		ParticipantIDs: sanitizeParticipants(input.ParticipantIDs, input.OrganizerID),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Bookings.CreateWithConflictCheck(ctx, booking); err != nil {
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			return nil, ConflictError{RoomID: input.RoomID, Date: input.Date, Start: input.Start, End: input.End}
		}
		return nil, err
	}

	logger.Info("booking created",
		zap.String("bookingID", booking.ID),
		zap.String("roomID", booking.RoomID),
		zap.String("date", booking.Date))
	return booking, nil
}

// GetBooking returns the booking if the actor is its organizer or a participant.
func (s *DefaultBookingService) GetBooking(id, actorID string) (*models.Booking, error) {
	booking, err := s.Bookings.GetByID(id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if booking.OrganizerID != actorID && !contains(booking.ParticipantIDs, actorID) {
		return nil, ErrNotAuthorized
	}
	return booking, nil
}

// UpdateBooking applies the supplied fields. Only the organizer may update;
// interval changes re-run the conflict check excluding the booking itself.
func (s *DefaultBookingService) UpdateBooking(id, actorID string, input UpdateBookingInput) (*models.Booking, error) {
	booking, err := s.Bookings.GetByID(id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if booking.OrganizerID != actorID {
		return nil, ErrNotAuthorized
	}

	date, start, end := booking.Date, booking.Start, booking.End
	if input.Date != nil {
		if _, err := models.ParseDate(*input.Date); err != nil {
			return nil, ValidationError{Reason: err.Error()}
		}
		date = *input.Date
	}
	if input.Start != nil {
		start = *input.Start
	}
	if input.End != nil {
		end = *input.End
	}
	if end <= start {
		return nil, ValidationError{Reason: "end time must be after start time"}
	}

	intervalChanged := date != booking.Date || start != booking.Start || end != booking.End
	if intervalChanged {
		// Early-fail check; the transaction below remains the authoritative guard.
		free, err := s.slotFree(booking.RoomID, date, start, end, booking.ID)
		if err != nil {
			return nil, err
		}
		if !free {
			return nil, ConflictError{RoomID: booking.RoomID, Date: date, Start: start, End: end}
		}
	}

	booking.Date, booking.Start, booking.End = date, start, end
	if input.ParticipantIDs != nil {
		booking.ParticipantIDs = sanitizeParticipants(*input.ParticipantIDs, booking.OrganizerID)
	}

	if intervalChanged {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Bookings.UpdateWithConflictCheck(ctx, booking); err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				return nil, ConflictError{RoomID: booking.RoomID, Date: date, Start: start, End: end}
			}
			return nil, err
		}
		return booking, nil
	}

	if err := s.Bookings.Update(booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// CancelBooking marks the booking cancelled; the row is preserved and its
// interval no longer blocks the room.
func (s *DefaultBookingService) CancelBooking(id, actorID string) error {
	booking, err := s.Bookings.GetByID(id)
	if err != nil {
		return err
	}
	if booking == nil {
		return ErrBookingNotFound
	}
	if booking.OrganizerID != actorID {
		return ErrNotAuthorized
	}
	return s.Bookings.UpdateStatus(id, models.StatusCancelled)
}

// DeleteBooking physically removes the booking and its participant associations.
func (s *DefaultBookingService) DeleteBooking(id, actorID string) error {
	booking, err := s.Bookings.GetByID(id)
	if err != nil {
		return err
	}
	if booking == nil {
		return ErrBookingNotFound
	}
	if booking.OrganizerID != actorID {
		return ErrNotAuthorized
	}
	return s.Bookings.Delete(id)
}

// sanitizeParticipants dedupes the participant set and drops the organizer.
func sanitizeParticipants(ids []string, organizerID string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" || id == organizerID || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
