package suggestion

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomly/models"
)

const interpreterReply = `{
	"booking_date": "2026-09-15",
	"activities": [
		{"name": "Team sync", "start_time": "09:00", "end_time": "10:00", "participants_count": 6, "required_amenities": ["projector"]},
		{"name": "1:1", "start_time": "10:30", "end_time": "11:00", "participants_count": 2}
	],
	"extracted_preferences": "quiet floor"
}`

func TestInterpretPrompt(t *testing.T) {
	client := &stubAI{replies: []string{interpreterReply}}
	svc := newSuggestionService(client, nil, &stubBookings{})

	date, activities, preferences, warnings, err := svc.interpretPrompt(
		context.Background(), "alice",
		models.SuggestionRequest{Prompt: "book a sync and a 1:1 next Tuesday"})
	require.NoError(t, err)
	assert.Equal(t, "2026-09-15", date)
	assert.Empty(t, warnings)
	assert.Equal(t, "quiet floor", preferences)

	require.Len(t, activities, 2)
	assert.Equal(t, "Team sync", activities[0].Name)
	assert.Equal(t, 9*60, activities[0].Start)
	assert.Equal(t, 10*60, activities[0].End)
	assert.Equal(t, 6, activities[0].Participants)
	assert.Equal(t, []string{"projector"}, activities[0].RequiredAmenities)
	assert.Equal(t, 2, activities[1].Participants)
}

func TestInterpretPromptExplicitDateWins(t *testing.T) {
	client := &stubAI{replies: []string{interpreterReply}}
	svc := newSuggestionService(client, nil, &stubBookings{})

	date, _, _, _, err := svc.interpretPrompt(
		context.Background(), "alice",
		models.SuggestionRequest{Prompt: "book something", Date: "2026-09-20"})
	require.NoError(t, err)
	assert.Equal(t, "2026-09-20", date)
}

func TestInterpretPromptNoDate(t *testing.T) {
	client := &stubAI{replies: []string{`{
		"booking_date": "null",
		"activities": [{"name": "Sync", "start_time": "09:00", "end_time": "10:00"}]
	}`}}
	svc := newSuggestionService(client, nil, &stubBookings{})

	_, _, _, _, err := svc.interpretPrompt(
		context.Background(), "alice", models.SuggestionRequest{Prompt: "book a sync"})
	assert.ErrorIs(t, err, ErrNoDate)
}

func TestInterpretPromptSkipsInvalidActivities(t *testing.T) {
	client := &stubAI{replies: []string{`{
		"booking_date": "2026-09-15",
		"activities": [
			{"name": "", "start_time": "09:00", "end_time": "10:00"},
			{"name": "No end", "start_time": "09:00"},
			{"name": "Bad clock", "start_time": "9am", "end_time": "10:00"},
			{"name": "Backwards", "start_time": "11:00", "end_time": "10:00"},
			{"name": "Good", "start_time": "13:00", "end_time": "14:00"}
		]
	}`}}
	svc := newSuggestionService(client, nil, &stubBookings{})

	_, activities, _, warnings, err := svc.interpretPrompt(
		context.Background(), "alice", models.SuggestionRequest{Prompt: "plan my day"})
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, "Good", activities[0].Name)
	assert.Len(t, warnings, 4)
}

func TestInterpretPromptAllActivitiesInvalid(t *testing.T) {
	client := &stubAI{replies: []string{`{
		"booking_date": "2026-09-15",
		"activities": [{"name": "Broken", "start_time": "late", "end_time": "later"}]
	}`}}
	svc := newSuggestionService(client, nil, &stubBookings{})

	_, _, _, _, err := svc.interpretPrompt(
		context.Background(), "alice", models.SuggestionRequest{Prompt: "plan my day"})
	assert.ErrorIs(t, err, ErrNoActivities)
}

func TestInterpretPromptModelFailure(t *testing.T) {
	svc := newSuggestionService(failAI{}, nil, &stubBookings{})

	_, _, _, _, err := svc.interpretPrompt(
		context.Background(), "alice", models.SuggestionRequest{Prompt: "book a sync"})
	var extErr ExternalServiceError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, "prompt interpretation", extErr.Op)
}

func TestInterpretPromptMalformedReply(t *testing.T) {
	client := &stubAI{replies: []string{`certainly! here is your JSON:`}}
	svc := newSuggestionService(client, nil, &stubBookings{})

	_, _, _, _, err := svc.interpretPrompt(
		context.Background(), "alice", models.SuggestionRequest{Prompt: "book a sync"})
	var extErr ExternalServiceError
	assert.ErrorAs(t, err, &extErr)
}

func TestInterpretPromptRequestPreferencesWin(t *testing.T) {
	client := &stubAI{replies: []string{interpreterReply}}
	svc := newSuggestionService(client, nil, &stubBookings{})

	_, _, preferences, _, err := svc.interpretPrompt(
		context.Background(), "alice",
		models.SuggestionRequest{Prompt: "book", GeneralPreferences: "ground floor"})
	require.NoError(t, err)
	assert.Equal(t, "ground floor", preferences)
}
