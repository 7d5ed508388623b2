package suggestion

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"roomly/models"
	"roomly/services/booking"
	"roomly/utils"
)

// ConfirmBulk re-validates and books each confirmed (room, interval) pair
// independently. The world may have changed since suggestion time, so each
// item runs the full create path including the conflict check; failures are
// recorded per item and never abort the rest of the batch.
func (s *DefaultSuggestionService) ConfirmBulk(
	ctx context.Context,
	userID string,
	req models.BulkConfirmation,
) (*models.BulkConfirmationResult, error) {
	if _, err := models.ParseDate(req.Date); err != nil {
		return nil, booking.ValidationError{Reason: err.Error()}
	}
	if len(req.Bookings) == 0 {
		return nil, booking.ValidationError{Reason: "at least one booking confirmation is required"}
	}

	logger := utils.GetLogger()
	result := &models.BulkConfirmationResult{
		CreatedIDs: []string{},
		Failures:   []models.ConfirmationFailure{},
	}

	for _, item := range req.Bookings {
		created, err := s.confirmOne(userID, req.Date, item)
		if err != nil {
			logger.Info("bulk confirmation item failed",
				zap.String("activity", item.ActivityName), zap.Error(err))
			result.Failures = append(result.Failures, models.ConfirmationFailure{
				Activity: item.ActivityName,
				Reason:   err.Error(),
			})
			continue
		}
		result.CreatedIDs = append(result.CreatedIDs, created.ID)
	}

	result.SuccessCount = len(result.CreatedIDs)
	result.FailureCount = len(result.Failures)
	return result, nil
}

func (s *DefaultSuggestionService) confirmOne(
	userID, date string,
	item models.BookingConfirmation,
) (*models.Booking, error) {
	start, err := models.ParseClock(item.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := models.ParseClock(item.EndTime)
	if err != nil {
		return nil, err
	}

	created, err := s.Bookings.CreateBooking(booking.CreateBookingInput{
		RoomID:         item.RoomID,
		OrganizerID:    userID,
		Date:           date,
		Start:          start,
		End:            end,
		ParticipantIDs: item.ParticipantIDs,
	})
	if err != nil {
		switch err.(type) {
		case booking.ConflictError:
			return nil, fmt.Errorf("room is no longer available for this time slot")
		default:
			return nil, err
		}
	}
	return created, nil
}
