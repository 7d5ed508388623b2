package suggestion

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomly/models"
)

func TestAdviseRoomModelPath(t *testing.T) {
	candidates := []models.Room{room("a", 4), room("b", 8), room("c", 12)}
	client := &stubAI{replies: []string{
		`{"suggested_room_id":"b","confidence_score":0.92,"reasoning":"Best fit for the group.","alternative_room_ids":["c","a"]}`,
	}}
	svc := newSuggestionService(client, candidates, &stubBookings{})

	got := svc.adviseRoom(context.Background(), models.Activity{Name: "Sync", Participants: 6}, candidates, "")
	require.True(t, got.OK)
	assert.Equal(t, models.RankingSourceModel, got.Source)
	assert.Equal(t, "b", got.Primary.RoomID)
	assert.InDelta(t, 0.92, got.Primary.Confidence, 1e-9)
	assert.Equal(t, "Best fit for the group.", got.Primary.Reasoning)

	require.Len(t, got.Alternatives, 2)
	assert.Equal(t, "c", got.Alternatives[0].RoomID)
	assert.InDelta(t, 0.82, got.Alternatives[0].Confidence, 1e-9)
}

func TestAdviseRoomClampsConfidence(t *testing.T) {
	candidates := []models.Room{room("a", 4)}
	client := &stubAI{replies: []string{
		`{"suggested_room_id":"a","confidence_score":1.7,"reasoning":"sure"}`,
	}}
	svc := newSuggestionService(client, candidates, &stubBookings{})

	got := svc.adviseRoom(context.Background(), models.Activity{Name: "Sync", Participants: 2}, candidates, "")
	require.True(t, got.OK)
	assert.Equal(t, 1.0, got.Primary.Confidence)
}

func TestAdviseRoomDefaultsMissingConfidence(t *testing.T) {
	candidates := []models.Room{room("a", 4), room("b", 8)}
	client := &stubAI{replies: []string{
		`{"suggested_room_id":"a","reasoning":"good fit","alternative_room_ids":["b"]}`,
	}}
	svc := newSuggestionService(client, candidates, &stubBookings{})

	got := svc.adviseRoom(context.Background(), models.Activity{Name: "Sync", Participants: 2}, candidates, "")
	require.True(t, got.OK)
	assert.Equal(t, models.RankingSourceModel, got.Source)
	assert.InDelta(t, DefaultModelConfidence, got.Primary.Confidence, 1e-9)
	require.Len(t, got.Alternatives, 1)
	assert.InDelta(t, DefaultModelConfidence-AlternativePenalty, got.Alternatives[0].Confidence, 1e-9)
}

func TestAdviseRoomKeepsExplicitZeroConfidence(t *testing.T) {
	candidates := []models.Room{room("a", 4)}
	client := &stubAI{replies: []string{
		`{"suggested_room_id":"a","confidence_score":0,"reasoning":"unsure"}`,
	}}
	svc := newSuggestionService(client, candidates, &stubBookings{})

	got := svc.adviseRoom(context.Background(), models.Activity{Name: "Sync", Participants: 2}, candidates, "")
	require.True(t, got.OK)
	assert.Equal(t, 0.0, got.Primary.Confidence)
}

func TestAdviseRoomFallbackOnModelFailure(t *testing.T) {
	candidates := []models.Room{room("big", 20), room("small", 4), room("mid", 8)}
	svc := newSuggestionService(failAI{}, candidates, &stubBookings{})

	got := svc.adviseRoom(context.Background(), models.Activity{Name: "Sync", Participants: 3}, candidates, "")
	require.True(t, got.OK)
	assert.Equal(t, models.RankingSourceFallback, got.Source)
	// Closest capacity fit wins.
	assert.Equal(t, "small", got.Primary.RoomID)
	assert.Equal(t, FallbackConfidence, got.Primary.Confidence)

	require.Len(t, got.Alternatives, 2)
	assert.Equal(t, "mid", got.Alternatives[0].RoomID)
	assert.Equal(t, "big", got.Alternatives[1].RoomID)
	assert.InDelta(t, 0.6, got.Alternatives[0].Confidence, 1e-9)
}

func TestAdviseRoomFallbackOnMalformedReply(t *testing.T) {
	candidates := []models.Room{room("a", 4), room("b", 8)}
	client := &stubAI{replies: []string{`not json at all`}}
	svc := newSuggestionService(client, candidates, &stubBookings{})

	got := svc.adviseRoom(context.Background(), models.Activity{Name: "Sync", Participants: 2}, candidates, "")
	require.True(t, got.OK)
	assert.Equal(t, models.RankingSourceFallback, got.Source)
}

func TestAdviseRoomFallbackOnUnknownRoom(t *testing.T) {
	candidates := []models.Room{room("a", 4), room("b", 8)}
	client := &stubAI{replies: []string{
		`{"suggested_room_id":"ghost","confidence_score":0.9,"reasoning":"hallucinated"}`,
	}}
	svc := newSuggestionService(client, candidates, &stubBookings{})

	got := svc.adviseRoom(context.Background(), models.Activity{Name: "Sync", Participants: 2}, candidates, "")
	require.True(t, got.OK)
	assert.Equal(t, models.RankingSourceFallback, got.Source)
	assert.Equal(t, "a", got.Primary.RoomID)
}

func TestAdviseRoomNoCandidates(t *testing.T) {
	svc := newSuggestionService(failAI{}, nil, &stubBookings{})

	got := svc.adviseRoom(context.Background(), models.Activity{Name: "Sync"}, nil, "")
	assert.False(t, got.OK)
	assert.Equal(t, "No rooms available for this time slot.", got.Reasoning)
}

func TestFallbackRankTieBreakKeepsListingOrder(t *testing.T) {
	candidates := []models.Room{
		room("first", 6),
		room("second", 6),
		room("third", 6),
	}

	got := fallbackRank(models.Activity{Name: "Sync", Participants: 4}, candidates)
	require.True(t, got.OK)
	assert.Equal(t, "first", got.Primary.RoomID)
	require.Len(t, got.Alternatives, 2)
	assert.Equal(t, "second", got.Alternatives[0].RoomID)
	assert.Equal(t, "third", got.Alternatives[1].RoomID)
}

func TestFallbackRankCapsAlternatives(t *testing.T) {
	candidates := []models.Room{
		room("a", 4), room("b", 6), room("c", 8), room("d", 10), room("e", 12),
	}

	got := fallbackRank(models.Activity{Name: "Sync", Participants: 2}, candidates)
	require.True(t, got.OK)
	assert.Len(t, got.Alternatives, MaxAlternativeRooms)
}

func TestFallbackRankRevertsWhenNothingFits(t *testing.T) {
	// Oversized party: capacity filter empties, ranking still proposes the
	// closest room rather than nothing.
	candidates := []models.Room{room("a", 4), room("b", 8)}

	got := fallbackRank(models.Activity{Name: "All hands", Participants: 50}, candidates)
	require.True(t, got.OK)
	assert.Equal(t, "a", got.Primary.RoomID)
}
