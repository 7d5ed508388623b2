package models

// Ranking sources distinguish nominal model output from degraded operation.
const (
	RankingSourceModel    = "model"
	RankingSourceFallback = "fallback"
)

// Activity is one time-bounded entry of a suggestion request, either supplied
// explicitly by the caller or extracted from a free-form prompt.
type Activity struct {
	Name              string   `json:"name"`
	Start             int      `json:"-"` // minutes from midnight
	End               int      `json:"-"`
	StartTime         string   `json:"start_time"` // "HH:MM"
	EndTime           string   `json:"end_time"`
	Participants      int      `json:"participants_count"` // defaults to 1
	RequiredAmenities []string `json:"required_amenities"`
	Preferences       string   `json:"preferences,omitempty"`
}

// SuggestionRequest asks for room proposals, in prompt mode or explicit mode.
type SuggestionRequest struct {
	Prompt             string     `json:"prompt,omitempty"`
	Date               string     `json:"booking_date,omitempty"` // "YYYY-MM-DD", authoritative when set
	Activities         []Activity `json:"activities,omitempty"`
	GeneralPreferences string     `json:"general_preferences,omitempty"`
}

// RoomSuggestion is a ranked room proposal for one activity.
type RoomSuggestion struct {
	RoomID     string   `json:"room_id"`
	RoomName   string   `json:"room_name"`
	Capacity   int      `json:"capacity"`
	Amenities  []string `json:"amenities"`
	Confidence float64  `json:"confidence_score"` // in [0,1]
	Reasoning  string   `json:"reasoning"`
}

// ActivitySuggestion pairs an activity with its best room and alternatives.
type ActivitySuggestion struct {
	ActivityName  string           `json:"activity_name"`
	StartTime     string           `json:"start_time"`
	EndTime       string           `json:"end_time"`
	Participants  int              `json:"participants_count"`
	SuggestedRoom RoomSuggestion   `json:"suggested_room"`
	Alternatives  []RoomSuggestion `json:"alternative_rooms"`
	RankingSource string           `json:"ranking_source"`
}

// SuggestionResponse is the assembled result for a whole request.
type SuggestionResponse struct {
	Date        string               `json:"booking_date"`
	Suggestions []ActivitySuggestion `json:"suggestions"`
	Notes       string               `json:"overall_notes,omitempty"`
}

// BookingConfirmation is one (room, interval) pair chosen from suggestions.
type BookingConfirmation struct {
	RoomID         string   `json:"room_id"`
	ActivityName   string   `json:"activity_name"`
	StartTime      string   `json:"start_time"`
	EndTime        string   `json:"end_time"`
	ParticipantIDs []string `json:"participant_ids,omitempty"`
}

// BulkConfirmation confirms several suggested bookings at once.
type BulkConfirmation struct {
	Date     string                `json:"booking_date"`
	Bookings []BookingConfirmation `json:"bookings"`
}

// ConfirmationFailure reports one item that could not be booked.
type ConfirmationFailure struct {
	Activity string `json:"activity"`
	Reason   string `json:"error"`
}

// BulkConfirmationResult reports per-item outcomes; the batch keeps whatever succeeded.
type BulkConfirmationResult struct {
	CreatedIDs   []string              `json:"created_bookings"`
	Failures     []ConfirmationFailure `json:"failed_bookings"`
	SuccessCount int                   `json:"success_count"`
	FailureCount int                   `json:"failure_count"`
}
