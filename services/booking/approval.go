package booking

import (
	"errors"
	"time"

	"go.uber.org/zap"

	bookingRepo "roomly/database/repository/booking"
	"roomly/models"
	"roomly/utils"
)

// ApproveBooking approves a booking that is still awaiting approval, stamping
// the manager and timestamp. Acting on a non-pending booking fails with
// ErrNotPending and mutates nothing.
func (s *DefaultBookingService) ApproveBooking(id, managerID string) (*models.Booking, error) {
	booking, err := s.Bookings.ApproveIfPending(id, managerID, time.Now())
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotPending) {
			return nil, ErrNotPending
		}
		return nil, err
	}

	utils.GetLogger().Info("booking approved",
		zap.String("bookingID", id),
		zap.String("managerID", managerID))
	return booking, nil
}

// RejectBooking rejects a booking that is still awaiting approval, recording
// an optional bounded reason.
func (s *DefaultBookingService) RejectBooking(id, managerID, reason string) (*models.Booking, error) {
	if len(reason) > MaxRejectionReasonLen {
		return nil, ValidationError{Reason: "rejection reason too long"}
	}

	booking, err := s.Bookings.RejectIfPending(id, managerID, reason, time.Now())
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotPending) {
			return nil, ErrNotPending
		}
		return nil, err
	}

	utils.GetLogger().Info("booking rejected",
		zap.String("bookingID", id),
		zap.String("managerID", managerID))
	return booking, nil
}
