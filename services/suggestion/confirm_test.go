package suggestion

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomly/models"
	"roomly/services/booking"
)

func TestConfirmBulk(t *testing.T) {
	bookings := &stubBookings{}
	svc := newSuggestionService(failAI{}, nil, bookings)

	result, err := svc.ConfirmBulk(context.Background(), "alice", models.BulkConfirmation{
		Date: "2026-09-15",
		Bookings: []models.BookingConfirmation{
			{ActivityName: "Sync", RoomID: "a", StartTime: "09:00", EndTime: "10:00"},
			{ActivityName: "Review", RoomID: "b", StartTime: "11:00", EndTime: "12:00"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 0, result.FailureCount)
	assert.Len(t, result.CreatedIDs, 2)

	require.Len(t, bookings.created, 2)
	assert.Equal(t, "alice", bookings.created[0].OrganizerID)
	assert.Equal(t, "2026-09-15", bookings.created[0].Date)
	assert.Equal(t, 9*60, bookings.created[0].Start)
}

func TestConfirmBulkPartialFailure(t *testing.T) {
	// Room "a" is already busy during the second item's slot.
	bookings := &stubBookings{busy: []slot{{"a", "2026-09-15", 11 * 60, 12 * 60}}}
	svc := newSuggestionService(failAI{}, nil, bookings)

	result, err := svc.ConfirmBulk(context.Background(), "alice", models.BulkConfirmation{
		Date: "2026-09-15",
		Bookings: []models.BookingConfirmation{
			{ActivityName: "Sync", RoomID: "a", StartTime: "09:00", EndTime: "10:00"},
			{ActivityName: "Review", RoomID: "a", StartTime: "11:00", EndTime: "12:00"},
			{ActivityName: "Retro", RoomID: "b", StartTime: "14:00", EndTime: "15:00"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 1, result.FailureCount)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "Review", result.Failures[0].Activity)
	assert.Equal(t, "room is no longer available for this time slot", result.Failures[0].Reason)
}

func TestConfirmBulkItemsCollideWithinBatch(t *testing.T) {
	bookings := &stubBookings{}
	svc := newSuggestionService(failAI{}, nil, bookings)

	result, err := svc.ConfirmBulk(context.Background(), "alice", models.BulkConfirmation{
		Date: "2026-09-15",
		Bookings: []models.BookingConfirmation{
			{ActivityName: "First", RoomID: "a", StartTime: "09:00", EndTime: "10:00"},
			{ActivityName: "Second", RoomID: "a", StartTime: "09:30", EndTime: "10:30"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 1, result.FailureCount)
	assert.Equal(t, "Second", result.Failures[0].Activity)
}

func TestConfirmBulkInvalidTimes(t *testing.T) {
	svc := newSuggestionService(failAI{}, nil, &stubBookings{})

	result, err := svc.ConfirmBulk(context.Background(), "alice", models.BulkConfirmation{
		Date: "2026-09-15",
		Bookings: []models.BookingConfirmation{
			{ActivityName: "Bad", RoomID: "a", StartTime: "9am", EndTime: "10:00"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.SuccessCount)
	assert.Equal(t, 1, result.FailureCount)
}

func TestConfirmBulkValidation(t *testing.T) {
	svc := newSuggestionService(failAI{}, nil, &stubBookings{})
	var verr booking.ValidationError

	_, err := svc.ConfirmBulk(context.Background(), "alice", models.BulkConfirmation{
		Date: "bad date",
		Bookings: []models.BookingConfirmation{
			{ActivityName: "Sync", RoomID: "a", StartTime: "09:00", EndTime: "10:00"},
		},
	})
	assert.ErrorAs(t, err, &verr)

	_, err = svc.ConfirmBulk(context.Background(), "alice", models.BulkConfirmation{
		Date: "2026-09-15",
	})
	assert.ErrorAs(t, err, &verr)
}
