package handlers

import (
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/copydesk/internal/interfaces"
)

const defaultSessionListLimit = 50

// SessionHandler serves chat session browsing endpoints
type SessionHandler struct {
	generation interfaces.GenerationService
	logger     arbor.ILogger
}

func NewSessionHandler(generation interfaces.GenerationService, logger arbor.ILogger) *SessionHandler {
	return &SessionHandler{
		generation: generation,
		logger:     logger,
	}
}

// ListSessionsHandler handles GET /api/sessions
func (h *SessionHandler) ListSessionsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	sessions, err := h.generation.ListSessions(LimitParam(r, defaultSessionListLimit))
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list sessions")
		WriteError(w, http.StatusInternalServerError, "Failed to list sessions")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"sessions": sessions,
		"count":    len(sessions),
	})
}

// SessionRoutesHandler handles GET /api/sessions/{id} and
// GET /api/sessions/{id}/messages
func (h *SessionHandler) SessionRoutesHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	id := PathID(r.URL.Path, "/api/sessions/")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Session ID is required")
		return
	}

	if strings.HasSuffix(r.URL.Path, "/messages") {
		messages, err := h.generation.ListMessages(id)
		if err != nil {
			WriteError(w, http.StatusNotFound, "Session not found")
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"session_id": id,
			"messages":   messages,
			"count":      len(messages),
		})
		return
	}

	session, err := h.generation.GetSession(id)
	if err != nil {
		WriteError(w, http.StatusNotFound, "Session not found")
		return
	}
	WriteJSON(w, http.StatusOK, session)
}
