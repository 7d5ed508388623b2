package suggestion

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"roomly/models"
	"roomly/services/booking"
	"roomly/utils"
)

// promptParseResult is the strict schema expected from the interpreter model.
// Any deviation is treated as an external-service failure, never a crash.
type promptParseResult struct {
	BookingDate          string           `json:"booking_date"`
	Activities           []promptActivity `json:"activities"`
	ExtractedPreferences string           `json:"extracted_preferences"`
}

type promptActivity struct {
	Name              string   `json:"name"`
	StartTime         string   `json:"start_time"`
	EndTime           string   `json:"end_time"`
	ParticipantsCount int      `json:"participants_count"`
	RequiredAmenities []string `json:"required_amenities"`
	Preferences       string   `json:"preferences"`
}

// interpretPrompt converts a free-form request into structured activities via
// the external model. A caller-supplied date is authoritative over anything
// the model inferred; activities with missing or unparseable fields are
// skipped individually with a recorded warning.
func (s *DefaultSuggestionService) interpretPrompt(
	ctx context.Context,
	userID string,
	req models.SuggestionRequest,
) (date string, activities []models.Activity, preferences string, warnings []string, err error) {
	logger := utils.GetLogger()

	// Near-term bookings give the model scheduling context; failure to load
	// them degrades the prompt, not the request.
	existing, loadErr := s.Bookings.UserBookings(userID, booking.DateRange{}, models.StatusUpcoming)
	if loadErr != nil {
		logger.Warn("failed to load user bookings for prompt context", zap.Error(loadErr))
	}

	callCtx, cancel := context.WithTimeout(ctx, s.aiTimeout())
	defer cancel()

	raw, aiErr := s.AI.GenerateJSON(callCtx, interpreterSystemPrompt,
		buildInterpreterPrompt(req.Prompt, req.Date, req.GeneralPreferences, existing))
	if aiErr != nil {
		return "", nil, "", nil, ExternalServiceError{Op: "prompt interpretation", Err: aiErr}
	}

	var parsed promptParseResult
	if decodeErr := json.Unmarshal([]byte(raw), &parsed); decodeErr != nil {
		return "", nil, "", nil, ExternalServiceError{Op: "prompt interpretation", Err: decodeErr}
	}

	// The explicit date wins; the model's inference is only a fallback.
	switch {
	case req.Date != "":
		date = req.Date
	case parsed.BookingDate != "" && parsed.BookingDate != "null":
		if _, parseErr := models.ParseDate(parsed.BookingDate); parseErr != nil {
			return "", nil, "", nil, ErrNoDate
		}
		date = parsed.BookingDate
	default:
		return "", nil, "", nil, ErrNoDate
	}

	for _, entry := range parsed.Activities {
		activity, convErr := convertActivity(entry)
		if convErr != nil {
			warnings = append(warnings, fmt.Sprintf("Skipped invalid activity: %v", convErr))
			continue
		}
		activities = append(activities, activity)
	}
	if len(activities) == 0 {
		return "", nil, "", warnings, ErrNoActivities
	}

	preferences = req.GeneralPreferences
	if preferences == "" {
		preferences = parsed.ExtractedPreferences
	}
	return date, activities, preferences, warnings, nil
}

// convertActivity validates one model-produced entry. Missing names or time
// boundaries are never synthesized; the entry is rejected instead.
func convertActivity(entry promptActivity) (models.Activity, error) {
	if entry.Name == "" {
		return models.Activity{}, fmt.Errorf("missing activity name")
	}
	if entry.StartTime == "" || entry.EndTime == "" {
		return models.Activity{}, fmt.Errorf("activity %q is missing a time boundary", entry.Name)
	}
	start, err := models.ParseClock(entry.StartTime)
	if err != nil {
		return models.Activity{}, fmt.Errorf("activity %q: %v", entry.Name, err)
	}
	end, err := models.ParseClock(entry.EndTime)
	if err != nil {
		return models.Activity{}, fmt.Errorf("activity %q: %v", entry.Name, err)
	}
	if end <= start {
		return models.Activity{}, fmt.Errorf("activity %q: end time must be after start time", entry.Name)
	}

	participants := entry.ParticipantsCount
	if participants <= 0 {
		participants = 1
	}
	return models.Activity{
		Name:              entry.Name,
		Start:             start,
		End:               end,
		StartTime:         models.FormatClock(start),
		EndTime:           models.FormatClock(end),
		Participants:      participants,
		RequiredAmenities: entry.RequiredAmenities,
		Preferences:       entry.Preferences,
	}, nil
}
