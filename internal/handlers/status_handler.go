package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/copydesk/internal/interfaces"
)

// StatusHandler reports application and dependency status
type StatusHandler struct {
	storage   interfaces.StorageManager
	llm       interfaces.LLMService
	embedding interfaces.EmbeddingService
	research  interfaces.ResearchService
	logger    arbor.ILogger
}

func NewStatusHandler(
	storage interfaces.StorageManager,
	llm interfaces.LLMService,
	embedding interfaces.EmbeddingService,
	research interfaces.ResearchService,
	logger arbor.ILogger,
) *StatusHandler {
	return &StatusHandler{
		storage:   storage,
		llm:       llm,
		embedding: embedding,
		research:  research,
		logger:    logger,
	}
}

// GetStatusHandler handles GET /api/status
func (h *StatusHandler) GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	contentCount, err := h.storage.ContentStorage().CountContent()
	if err != nil {
		h.logger.Warn().Err(err).Msg("Failed to count corpus for status")
		contentCount = -1
	}

	services := map[string]bool{
		"llm":        h.llm != nil && h.llm.IsAvailable(),
		"embeddings": h.embedding != nil && h.embedding.IsAvailable(),
		"research":   h.research != nil && h.research.IsAvailable(),
	}

	llmHealthy := false
	if services["llm"] {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()
		llmHealthy = h.llm.HealthCheck(ctx) == nil
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":        "ok",
		"content_count": contentCount,
		"services":      services,
		"llm_healthy":   llmHealthy,
	})
}
