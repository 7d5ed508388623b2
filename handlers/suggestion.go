package handlers

import (
	"errors"
	"net/http"

	"roomly/middleware"
	"roomly/models"
	bookingSvc "roomly/services/booking"
	suggestionSvc "roomly/services/suggestion"
	"roomly/utils"

	"github.com/gin-gonic/gin"
)

type SuggestionHandler struct {
	Suggestions suggestionSvc.SuggestionService
}

func NewSuggestionHandler(suggestions suggestionSvc.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{Suggestions: suggestions}
}

// Suggest runs the interpretation and room-ranking pipeline for a free-text
// prompt or an explicit activity list.
func (h *SuggestionHandler) Suggest(c *gin.Context) {
	var req models.SuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid suggestion payload", err.Error())
		return
	}

	resp, err := h.Suggestions.Suggest(c.Request.Context(), c.GetString(middleware.ContextUserID), req)
	if err != nil {
		writeSuggestionError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ConfirmBulk books every confirmed suggestion, reporting per-item failures
// without aborting the batch.
func (h *SuggestionHandler) ConfirmBulk(c *gin.Context) {
	var req models.BulkConfirmation
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid confirmation payload", err.Error())
		return
	}

	result, err := h.Suggestions.ConfirmBulk(c.Request.Context(), c.GetString(middleware.ContextUserID), req)
	if err != nil {
		writeSuggestionError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func writeSuggestionError(c *gin.Context, err error) {
	var validationErr bookingSvc.ValidationError
	var externalErr suggestionSvc.ExternalServiceError
	var unsatErr suggestionSvc.UnsatisfiableError
	switch {
	case errors.Is(err, suggestionSvc.ErrNoDate):
		utils.JSONError(c, http.StatusBadRequest, "A booking date is required", "")
	case errors.Is(err, suggestionSvc.ErrNoActivities):
		utils.JSONError(c, http.StatusBadRequest, "No valid activities to schedule", "")
	case errors.As(err, &validationErr):
		utils.JSONError(c, http.StatusBadRequest, validationErr.Reason, "")
	case errors.As(err, &unsatErr):
		utils.JSONError(c, http.StatusUnprocessableEntity, "No rooms could be suggested", unsatErr.Error())
	case errors.As(err, &externalErr):
		utils.JSONError(c, http.StatusBadGateway, "Suggestion service unavailable", "")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Suggestion operation failed", "")
	}
}
