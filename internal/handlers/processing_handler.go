package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/copydesk/internal/common"
	"github.com/ternarybob/copydesk/internal/interfaces"
)

// ProcessingHandler triggers manual embedding backfill runs
type ProcessingHandler struct {
	backfill interfaces.BackfillService
	config   *common.Config
	logger   arbor.ILogger
}

func NewProcessingHandler(backfill interfaces.BackfillService, config *common.Config, logger arbor.ILogger) *ProcessingHandler {
	return &ProcessingHandler{
		backfill: backfill,
		config:   config,
		logger:   logger,
	}
}

type backfillRequest struct {
	Limit int `json:"limit,omitempty"`
}

// BackfillHandler handles POST /api/processing/backfill. Runs
// synchronously and reports how many rows were embedded.
func (h *ProcessingHandler) BackfillHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req backfillRequest
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}
	if req.Limit <= 0 {
		req.Limit = h.config.Processing.Limit
	}

	updated, err := h.backfill.Run(r.Context(), req.Limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("Embedding backfill failed")
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "completed",
		"updated": updated,
	})
}
