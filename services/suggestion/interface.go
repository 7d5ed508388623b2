package suggestion

import (
	"context"
	"time"

	roomRepo "roomly/database/repository/room"
	"roomly/models"
	"roomly/services/ai"
	"roomly/services/booking"
)

// Confidence assigned to deterministic fallback rankings, the confidence
// assumed when the ranking model omits its score, and the penalty applied to
// each alternative relative to the primary suggestion.
const (
	FallbackConfidence     = 0.7
	DefaultModelConfidence = 0.8
	AlternativePenalty     = 0.1
	MaxAlternativeRooms    = 3
)

// SuggestionService turns activity requests into ranked room proposals and
// commits user-confirmed selections.
type SuggestionService interface {
	Suggest(ctx context.Context, userID string, req models.SuggestionRequest) (*models.SuggestionResponse, error)
	ConfirmBulk(ctx context.Context, userID string, req models.BulkConfirmation) (*models.BulkConfirmationResult, error)
}

// DefaultSuggestionService drives the interpreter and advisor over the
// booking engine's live availability.
type DefaultSuggestionService struct {
	AI       ai.Client
	Rooms    roomRepo.RoomRepository
	Bookings booking.BookingService
	// AITimeout bounds each external model call.
	AITimeout time.Duration
}

func (s *DefaultSuggestionService) aiTimeout() time.Duration {
	if s.AITimeout > 0 {
		return s.AITimeout
	}
	return 20 * time.Second
}
