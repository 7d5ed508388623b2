package suggestion

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"roomly/models"
	"roomly/utils"
)

// rankResult carries one ranked selection plus its provenance, so degraded
// (fallback) operation is distinguishable from nominal model output.
type rankResult struct {
	Primary      models.RoomSuggestion
	Alternatives []models.RoomSuggestion
	Source       string
	OK           bool
	Reasoning    string // set when OK is false
}

// advisorReply is the strict schema expected from the ranking model. The
// confidence is a pointer so an omitted score is distinguishable from an
// explicit zero.
type advisorReply struct {
	SuggestedRoomID    string   `json:"suggested_room_id"`
	ConfidenceScore    *float64 `json:"confidence_score"`
	Reasoning          string   `json:"reasoning"`
	AlternativeRoomIDs []string `json:"alternative_room_ids"`
}

// adviseRoom ranks the constraint-filtered candidates for one activity. The
// external model is consulted first; any failure or unusable reply falls back
// to the deterministic closest-fit ranking.
func (s *DefaultSuggestionService) adviseRoom(
	ctx context.Context,
	activity models.Activity,
	candidates []models.Room,
	preferences string,
) rankResult {
	if len(candidates) == 0 {
		return rankResult{
			OK:        false,
			Reasoning: "No rooms available for this time slot.",
		}
	}

	logger := utils.GetLogger()

	callCtx, cancel := context.WithTimeout(ctx, s.aiTimeout())
	defer cancel()

	raw, err := s.AI.GenerateJSON(callCtx, advisorSystemPrompt,
		buildAdvisorPrompt(activity, candidates, preferences))
	if err != nil {
		logger.Warn("room ranking model call failed, using fallback",
			zap.String("activity", activity.Name), zap.Error(err))
		return fallbackRank(activity, candidates)
	}

	var reply advisorReply
	if err := json.Unmarshal([]byte(raw), &reply); err != nil {
		logger.Warn("room ranking model returned unusable output, using fallback",
			zap.String("activity", activity.Name), zap.Error(err))
		return fallbackRank(activity, candidates)
	}

	primary := findRoom(candidates, reply.SuggestedRoomID)
	if primary == nil {
		logger.Warn("room ranking model selected an unknown room, using fallback",
			zap.String("activity", activity.Name), zap.String("roomID", reply.SuggestedRoomID))
		return fallbackRank(activity, candidates)
	}

	confidence := DefaultModelConfidence
	if reply.ConfidenceScore != nil {
		confidence = clamp01(*reply.ConfidenceScore)
	}
	reasoning := reply.Reasoning
	if reasoning == "" {
		reasoning = "Suggested by the ranking model."
	}

	result := rankResult{
		Primary: roomSuggestion(*primary, confidence, reasoning),
		Source:  models.RankingSourceModel,
		OK:      true,
	}
	for _, altID := range reply.AlternativeRoomIDs {
		if len(result.Alternatives) == MaxAlternativeRooms {
			break
		}
		if altID == primary.ID {
			continue
		}
		if alt := findRoom(candidates, altID); alt != nil {
			result.Alternatives = append(result.Alternatives,
				roomSuggestion(*alt, alternativeConfidence(confidence), "Alternative option."))
		}
	}
	return result
}

// fallbackRank is the deterministic capacity-closest-match ranking: filter by
// capacity, then by amenity superset (reverting to the capacity set if that
// empties), sort ascending by capacity and pick the smallest sufficient room.
func fallbackRank(activity models.Activity, candidates []models.Room) rankResult {
	suitable := make([]models.Room, 0, len(candidates))
	for _, r := range candidates {
		if r.Capacity >= activity.Participants {
			suitable = append(suitable, r)
		}
	}
	if len(suitable) == 0 {
		suitable = candidates
	}

	if len(activity.RequiredAmenities) > 0 {
		matched := make([]models.Room, 0, len(suitable))
		for _, r := range suitable {
			if r.HasAmenities(activity.RequiredAmenities) {
				matched = append(matched, r)
			}
		}
		if len(matched) > 0 {
			suitable = matched
		}
	}

	// Stable sort keeps listing order for equal capacities.
	sort.SliceStable(suitable, func(i, j int) bool {
		return suitable[i].Capacity < suitable[j].Capacity
	})

	reasoning := fmt.Sprintf("Selected based on capacity (%d participant(s)) and amenities match.",
		activity.Participants)

	result := rankResult{
		Primary: roomSuggestion(suitable[0], FallbackConfidence, reasoning),
		Source:  models.RankingSourceFallback,
		OK:      true,
	}
	for _, r := range suitable[1:] {
		if len(result.Alternatives) == MaxAlternativeRooms {
			break
		}
		result.Alternatives = append(result.Alternatives,
			roomSuggestion(r, alternativeConfidence(FallbackConfidence), "Alternative option."))
	}
	return result
}

func roomSuggestion(room models.Room, confidence float64, reasoning string) models.RoomSuggestion {
	return models.RoomSuggestion{
		RoomID:     room.ID,
		RoomName:   room.Name,
		Capacity:   room.Capacity,
		Amenities:  room.Amenities,
		Confidence: confidence,
		Reasoning:  reasoning,
	}
}

func alternativeConfidence(primary float64) float64 {
	alt := primary - AlternativePenalty
	if alt < 0 {
		return 0
	}
	return alt
}

func findRoom(rooms []models.Room, id string) *models.Room {
	for i := range rooms {
		if rooms[i].ID == id {
			return &rooms[i]
		}
	}
	return nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
