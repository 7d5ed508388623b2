package models

import "time"

// Booking lifecycle statuses.
const (
	StatusUpcoming  = "upcoming"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Manager approval statuses, independent of the lifecycle status.
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

// Booking represents a room reservation record.
type Booking struct {
	ID              string     `bson:"id" json:"id"`
	RoomID          string     `bson:"room_id" json:"room_id"`
	OrganizerID     string     `bson:"organizer_id" json:"organizer_id"`
	Date            string     `bson:"date" json:"date"`   // "YYYY-MM-DD"
	Start           int        `bson:"start" json:"start"` // minutes from midnight
	End             int        `bson:"end" json:"end"`     // minutes from midnight, strictly after Start
	Status          string     `bson:"status" json:"status"`
	ApprovalStatus  string     `bson:"approval_status" json:"approval_status"`
	ApprovedByID    string     `bson:"approved_by_id,omitempty" json:"approved_by_id,omitempty"`
	ApprovedAt      *time.Time `bson:"approved_at,omitempty" json:"approved_at,omitempty"`
	RejectionReason string     `bson:"rejection_reason,omitempty" json:"rejection_reason,omitempty"`
	ParticipantIDs  []string   `bson:"participant_ids" json:"participant_ids"` // excludes the organizer
	CreatedAt       time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `bson:"updated_at" json:"updated_at"`
}

// Active reports whether the booking occupies its slot: an upcoming booking
// that has not been rejected still blocks the room while approval is pending.
func (b Booking) Active() bool {
	if b.Status != StatusUpcoming {
		return false
	}
	return b.ApprovalStatus == ApprovalPending || b.ApprovalStatus == ApprovalApproved
}

// Overlaps applies the half-open interval test: touching boundaries do not conflict.
func (b Booking) Overlaps(start, end int) bool {
	return b.Start < end && start < b.End
}
