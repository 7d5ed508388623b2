package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"roomly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateWithConflictCheck inserts the booking inside a session transaction
// that first re-counts active overlapping bookings. The application-level
// availability check is advisory; this is the authoritative guard, so two
// racing creates for overlapping slots cannot both commit.
func (r *MongoBookingRepo) CreateWithConflictCheck(ctx context.Context, booking *models.Booking) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		filter := activeFilter()
		filter["room_id"] = booking.RoomID
		filter["date"] = booking.Date
		// Half-open overlap: existing.start < new.end AND existing.end > new.start.
		filter["start"] = bson.M{"$lt": booking.End}
		filter["end"] = bson.M{"$gt": booking.Start}

		count, err := r.coll.CountDocuments(sc, filter)
		if err != nil {
			return fmt.Errorf("overlap count failed: %w", err)
		}
		if count > 0 {
			return ErrSlotTaken
		}

		if _, err := r.coll.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if err == ErrSlotTaken {
			return ErrSlotTaken
		}
		return fmt.Errorf("booking transaction failed: %w", err)
	}
	return nil
}

// UpdateWithConflictCheck replaces the booking inside a session transaction
// that first re-counts active bookings other than the booking itself
// overlapping its (possibly new) interval. Interval-changing updates go
// through here so a racing create or update on the same room and date cannot
// commit a second occupant for the slot.
func (r *MongoBookingRepo) UpdateWithConflictCheck(ctx context.Context, booking *models.Booking) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		filter := activeFilter()
		filter["id"] = bson.M{"$ne": booking.ID}
		filter["room_id"] = booking.RoomID
		filter["date"] = booking.Date
		filter["start"] = bson.M{"$lt": booking.End}
		filter["end"] = bson.M{"$gt": booking.Start}

		count, err := r.coll.CountDocuments(sc, filter)
		if err != nil {
			return fmt.Errorf("overlap count failed: %w", err)
		}
		if count > 0 {
			return ErrSlotTaken
		}

		booking.UpdatedAt = time.Now()
		res, err := r.coll.UpdateOne(sc, bson.M{"id": booking.ID}, bson.M{"$set": booking})
		if err != nil {
			return fmt.Errorf("update booking failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return fmt.Errorf("booking %s not found", booking.ID)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if err == ErrSlotTaken {
			return ErrSlotTaken
		}
		return fmt.Errorf("booking transaction failed: %w", err)
	}
	return nil
}

// ApproveIfPending approves the booking only while its approval status is
// still pending, stamping the approver and timestamp in the same operation.
func (r *MongoBookingRepo) ApproveIfPending(id, managerID string, at time.Time) (*models.Booking, error) {
	update := bson.M{"$set": bson.M{
		"approval_status": models.ApprovalApproved,
		"approved_by_id":  managerID,
		"approved_at":     at,
		"updated_at":      at,
	}}
	return r.transitionIfPending(id, update)
}

// RejectIfPending rejects the booking only while its approval status is
// still pending, recording the optional reason.
func (r *MongoBookingRepo) RejectIfPending(id, managerID, reason string, at time.Time) (*models.Booking, error) {
	update := bson.M{"$set": bson.M{
		"approval_status":  models.ApprovalRejected,
		"approved_by_id":   managerID,
		"approved_at":      at,
		"rejection_reason": reason,
		"updated_at":       at,
	}}
	return r.transitionIfPending(id, update)
}

func (r *MongoBookingRepo) transitionIfPending(id string, update bson.M) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "approval_status": models.ApprovalPending}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var booking models.Booking
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotPending
	}
	if err != nil {
		return nil, fmt.Errorf("error transitioning booking %s: %w", id, err)
	}
	return &booking, nil
}

// CompleteEnded marks upcoming bookings whose end has passed as completed.
func (r *MongoBookingRepo) CompleteEnded(now time.Time) (int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	today := now.Format(models.DateLayout)
	minutes := now.Hour()*60 + now.Minute()

	filter := bson.M{
		"status": models.StatusUpcoming,
		"$or": bson.A{
			bson.M{"date": bson.M{"$lt": today}},
			bson.M{"date": today, "end": bson.M{"$lte": minutes}},
		},
	}
	update := bson.M{"$set": bson.M{"status": models.StatusCompleted, "updated_at": now}}

	res, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("error completing ended bookings: %w", err)
	}
	return res.ModifiedCount, nil
}
