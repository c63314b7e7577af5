package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/copydesk/internal/interfaces"
)

const defaultFeedbackListLimit = 50

// FeedbackHandler records and lists feedback on generated content
type FeedbackHandler struct {
	generation interfaces.GenerationService
	storage    interfaces.FeedbackStorage
	logger     arbor.ILogger
}

func NewFeedbackHandler(generation interfaces.GenerationService, storage interfaces.FeedbackStorage, logger arbor.ILogger) *FeedbackHandler {
	return &FeedbackHandler{
		generation: generation,
		storage:    storage,
		logger:     logger,
	}
}

// FeedbackCollectionHandler handles /api/feedback
func (h *FeedbackHandler) FeedbackCollectionHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listFeedback(w, r)
	case http.MethodPost:
		h.recordFeedback(w, r)
	default:
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *FeedbackHandler) listFeedback(w http.ResponseWriter, r *http.Request) {
	limit := LimitParam(r, defaultFeedbackListLimit)

	records, err := h.storage.ListFeedback(limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list feedback")
		WriteError(w, http.StatusInternalServerError, "Failed to list feedback")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"feedback": records,
		"count":    len(records),
	})
}

func (h *FeedbackHandler) recordFeedback(w http.ResponseWriter, r *http.Request) {
	var req interfaces.FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.SessionID == "" || req.MessageID == "" {
		WriteError(w, http.StatusBadRequest, "session_id and message_id are required")
		return
	}

	record, err := h.generation.RecordFeedback(r.Context(), &req)
	if err != nil {
		h.logger.Warn().Err(err).
			Str("session_id", req.SessionID).
			Str("message_id", req.MessageID).
			Msg("Failed to record feedback")
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "recorded",
		"feedback_id": record.ID,
		"rating":      record.Rating,
	})
}
