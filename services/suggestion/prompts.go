package suggestion

import (
	"encoding/json"
	"fmt"
	"strings"

	"roomly/models"
)

const interpreterSystemPrompt = `You are an intelligent event planning assistant. Your task is to parse natural language descriptions of events into structured activity data.

IMPORTANT RULES:
1. If no participant count is mentioned, assume 1 person (DEFAULT)
2. Extract date information if present
3. Extract time slots for each activity
4. Identify required amenities from the description
5. Each activity should be a separate booking

You must respond with valid JSON only, following this exact structure:
{
    "booking_date": "YYYY-MM-DD or null if not specified",
    "activities": [
        {
            "name": "Activity name",
            "start_time": "HH:MM",
            "end_time": "HH:MM",
            "participants_count": 1,
            "required_amenities": ["amenity1", "amenity2"],
            "preferences": "any specific preferences"
        }
    ],
    "extracted_preferences": "general preferences extracted from prompt"
}`

const advisorSystemPrompt = `You are an intelligent room booking assistant. Your task is to analyze activities and suggest the most appropriate meeting rooms based on:
1. Capacity requirements (room must fit all participants)
2. Required amenities/equipment
3. Activity type and characteristics
4. User preferences
5. Overall suitability

IMPORTANT: All rooms provided to you are ALREADY VERIFIED as available for the requested time slot.
You only need to select the BEST room based on the activity requirements and characteristics.

DEFAULT: If participants count is 1, any room size is acceptable, but prefer smaller rooms for efficiency.

You must respond with valid JSON only, following this exact structure:
{
    "suggested_room_id": "<room id>",
    "confidence_score": 0.9,
    "reasoning": "<explanation why this room is best>",
    "alternative_room_ids": ["<room id>", "<room id>"]
}`

func buildInterpreterPrompt(prompt, date, preferences string, existing []models.Booking) string {
	var sb strings.Builder
	sb.WriteString("Parse the following event request into structured activities.\n\n")
	sb.WriteString("USER REQUEST:\n")
	sb.WriteString(prompt)
	sb.WriteString("\n\nCONTEXT:\n- Default participants: 1 person (unless explicitly stated otherwise)\n")
	if date != "" {
		fmt.Fprintf(&sb, "- Provided date: %s\n", date)
	} else {
		sb.WriteString("- Provided date: Not provided\n")
	}
	if preferences != "" {
		fmt.Fprintf(&sb, "- Additional preferences: %s\n", preferences)
	} else {
		sb.WriteString("- Additional preferences: None\n")
	}
	if len(existing) > 0 {
		sb.WriteString("- The user's existing upcoming bookings (avoid overlapping them):\n")
		for _, b := range existing {
			fmt.Fprintf(&sb, "  - %s %s-%s\n", b.Date, models.FormatClock(b.Start), models.FormatClock(b.End))
		}
	}
	sb.WriteString("\nExtract all activities with their time slots, participant counts (default to 1), and requirements.\n")
	sb.WriteString("If the user mentions \"we\", \"team\", or \"group\" without specifying a number, estimate a reasonable count.\n")
	sb.WriteString("If it's a single person activity (like \"I need a room\"), use 1 participant.\n\n")
	sb.WriteString("Respond with JSON only.")
	return sb.String()
}

func buildAdvisorPrompt(activity models.Activity, rooms []models.Room, preferences string) string {
	type roomInfo struct {
		ID          string   `json:"id"`
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Capacity    int      `json:"capacity"`
		Amenities   []string `json:"amenities"`
	}
	infos := make([]roomInfo, 0, len(rooms))
	for _, r := range rooms {
		desc := r.Description
		if desc == "" {
			desc = "No description"
		}
		infos = append(infos, roomInfo{
			ID:          r.ID,
			Name:        r.Name,
			Description: desc,
			Capacity:    r.Capacity,
			Amenities:   r.Amenities,
		})
	}
	roomsJSON, _ := json.MarshalIndent(infos, "", "  ")

	activityCtx := map[string]any{
		"name":               activity.Name,
		"start_time":         models.FormatClock(activity.Start),
		"end_time":           models.FormatClock(activity.End),
		"participants_count": activity.Participants,
		"required_amenities": activity.RequiredAmenities,
		"preferences":        activity.Preferences,
	}
	activityJSON, _ := json.MarshalIndent(activityCtx, "", "  ")

	if preferences == "" {
		preferences = "None"
	}

	var sb strings.Builder
	sb.WriteString("Given the following activity and available rooms, suggest the best room.\n\n")
	fmt.Fprintf(&sb, "ACTIVITY DETAILS:\n%s\n\n", activityJSON)
	fmt.Fprintf(&sb, "GENERAL PREFERENCES: %s\n\n", preferences)
	fmt.Fprintf(&sb, "AVAILABLE ROOMS (All verified as available for the time slot):\n%s\n\n", roomsJSON)
	sb.WriteString("Analyze and suggest the best room. Consider:\n")
	sb.WriteString("- Room capacity must be >= participants count (default is 1 person)\n")
	sb.WriteString("- Required amenities must be present\n")
	sb.WriteString("- Activity type matches room characteristics\n")
	sb.WriteString("- For single person bookings, prefer smaller, efficient spaces\n\n")
	sb.WriteString("Respond with JSON only.")
	return sb.String()
}
