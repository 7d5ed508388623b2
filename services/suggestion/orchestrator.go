package suggestion

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"roomly/models"
	"roomly/services/booking"
	"roomly/utils"
)

// Suggest drives the full pipeline: interpret (or normalize) the request,
// build the live available-room set per activity, apply the hard constraint
// filter, rank with the advisor, and assemble the response. One activity's
// failure never aborts the others; a request with zero satisfiable activities
// fails with the aggregated warnings.
func (s *DefaultSuggestionService) Suggest(
	ctx context.Context,
	userID string,
	req models.SuggestionRequest,
) (*models.SuggestionResponse, error) {
	logger := utils.GetLogger()

	var (
		date        string
		activities  []models.Activity
		preferences string
		warnings    []string
	)

	if len(req.Activities) == 0 {
		if strings.TrimSpace(req.Prompt) == "" {
			return nil, booking.ValidationError{Reason: "either a prompt or explicit activities are required"}
		}
		var err error
		date, activities, preferences, warnings, err = s.interpretPrompt(ctx, userID, req)
		if err != nil {
			return nil, err
		}
	} else {
		if req.Date == "" {
			return nil, ErrNoDate
		}
		if _, err := models.ParseDate(req.Date); err != nil {
			return nil, booking.ValidationError{Reason: err.Error()}
		}
		date = req.Date
		preferences = req.GeneralPreferences
		for _, a := range req.Activities {
			normalized, err := normalizeExplicitActivity(a)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("Skipped invalid activity: %v", err))
				continue
			}
			activities = append(activities, normalized)
		}
		if len(activities) == 0 {
			return nil, ErrNoActivities
		}
	}

	var suggestions []models.ActivitySuggestion
	for _, activity := range activities {
		available, err := s.availableRoomsForSlot(date, activity.Start, activity.End)
		if err != nil {
			logger.Error("failed to compute available rooms",
				zap.String("activity", activity.Name), zap.Error(err))
			warnings = append(warnings, fmt.Sprintf("Could not check availability for '%s'.", activity.Name))
			continue
		}
		if len(available) == 0 {
			warnings = append(warnings, fmt.Sprintf(
				"No available rooms for '%s' on %s between %s-%s. All rooms are either booked or unavailable for this time slot.",
				activity.Name, date, activity.StartTime, activity.EndTime))
			continue
		}

		candidates, warning := filterByConstraints(activity, available)
		if warning != "" {
			warnings = append(warnings, warning)
			continue
		}

		ranked := s.adviseRoom(ctx, activity, candidates, preferences)
		if !ranked.OK {
			warnings = append(warnings, fmt.Sprintf("Could not find a suitable room for '%s'.", activity.Name))
			continue
		}

		suggestions = append(suggestions, models.ActivitySuggestion{
			ActivityName:  activity.Name,
			StartTime:     activity.StartTime,
			EndTime:       activity.EndTime,
			Participants:  activity.Participants,
			SuggestedRoom: ranked.Primary,
			Alternatives:  ranked.Alternatives,
			RankingSource: ranked.Source,
		})
	}

	if len(suggestions) == 0 {
		if len(warnings) == 0 {
			warnings = append(warnings, "No activities could be satisfied.")
		}
		return nil, UnsatisfiableError{Warnings: warnings}
	}

	return &models.SuggestionResponse{
		Date:        date,
		Suggestions: suggestions,
		Notes:       strings.Join(warnings, " | "),
	}, nil
}

// availableRoomsForSlot returns the administratively enabled rooms that are
// free for the interval, preserving the repository's listing order.
func (s *DefaultSuggestionService) availableRoomsForSlot(date string, start, end int) ([]models.Room, error) {
	rooms, err := s.Rooms.GetAvailable()
	if err != nil {
		return nil, err
	}
	free := make([]models.Room, 0, len(rooms))
	for _, room := range rooms {
		ok, err := s.Bookings.CheckAvailability(room.ID, date, start, end)
		if err != nil {
			return nil, err
		}
		if ok {
			free = append(free, room)
		}
	}
	return free, nil
}

func normalizeExplicitActivity(a models.Activity) (models.Activity, error) {
	if a.Name == "" {
		return models.Activity{}, fmt.Errorf("missing activity name")
	}
	if a.StartTime == "" || a.EndTime == "" {
		return models.Activity{}, fmt.Errorf("activity %q is missing a time boundary", a.Name)
	}
	start, err := models.ParseClock(a.StartTime)
	if err != nil {
		return models.Activity{}, fmt.Errorf("activity %q: %v", a.Name, err)
	}
	end, err := models.ParseClock(a.EndTime)
	if err != nil {
		return models.Activity{}, fmt.Errorf("activity %q: %v", a.Name, err)
	}
	if end <= start {
		return models.Activity{}, fmt.Errorf("activity %q: end time must be after start time", a.Name)
	}
	a.Start, a.End = start, end
	a.StartTime, a.EndTime = models.FormatClock(start), models.FormatClock(end)
	if a.Participants <= 0 {
		a.Participants = 1
	}
	return a, nil
}
