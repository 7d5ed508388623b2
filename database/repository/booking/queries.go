package bookingRepo

import (
	"time"

	"roomly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetByRoom retrieves bookings for a room within a date range.
func (r *MongoBookingRepo) GetByRoom(roomID, startDate, endDate, status string) ([]models.Booking, error) {
	filter := bson.M{
		"room_id": roomID,
		"date":    bson.M{"$gte": startDate, "$lte": endDate},
	}
	if status != "" {
		filter["status"] = status
	}
	return r.find(filter, sortByDateAndStart())
}

// GetByUser retrieves bookings where the user is the organizer or a participant.
func (r *MongoBookingRepo) GetByUser(userID, startDate, endDate, status string) ([]models.Booking, error) {
	filter := bson.M{
		"date": bson.M{"$gte": startDate, "$lte": endDate},
		"$or": bson.A{
			bson.M{"organizer_id": userID},
			bson.M{"participant_ids": userID},
		},
	}
	if status != "" {
		filter["status"] = status
	}
	return r.find(filter, sortByDateAndStart())
}

// GetPending retrieves bookings awaiting manager approval, oldest first.
func (r *MongoBookingRepo) GetPending(skip, limit int64) ([]models.Booking, error) {
	filter := bson.M{
		"approval_status": models.ApprovalPending,
		"status":          models.StatusUpcoming,
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetSkip(skip).
		SetLimit(limit)
	return r.find(filter, opts)
}

// CountPending counts bookings awaiting manager approval.
func (r *MongoBookingRepo) CountPending() (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"approval_status": models.ApprovalPending,
		"status":          models.StatusUpcoming,
	}
	return r.coll.CountDocuments(ctx, filter)
}

func sortByDateAndStart() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start", Value: 1}})
}
