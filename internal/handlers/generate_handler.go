package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/copydesk/internal/interfaces"
)

// GenerateHandler serves the streaming content generation endpoint
type GenerateHandler struct {
	generation interfaces.GenerationService
	logger     arbor.ILogger
}

func NewGenerateHandler(generation interfaces.GenerationService, logger arbor.ILogger) *GenerateHandler {
	return &GenerateHandler{
		generation: generation,
		logger:     logger,
	}
}

// GenerateStreamHandler handles POST /api/generate. The response is
// plain text streamed as the model produces it; the session identifier
// travels in the X-Session-Id header so the client can continue the
// conversation.
func (h *GenerateHandler) GenerateStreamHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req interfaces.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Message == "" {
		WriteError(w, http.StatusBadRequest, "Message field is required")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteError(w, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	session, err := h.generation.EnsureSession(&req)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.logger.Info().
		Str("session_id", session.ID).
		Str("content_type", req.ContentType).
		Str("platform", string(req.Platform)).
		Msg("Processing generation request")

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
	w.Header().Set("X-Session-Id", session.ID)
	w.WriteHeader(http.StatusOK)

	_, err = h.generation.GenerateStream(r.Context(), &req, func(delta string) {
		w.Write([]byte(delta))
		flusher.Flush()
	})
	if err != nil {
		// The stream already carries a visible error marker; status and
		// headers are long gone
		h.logger.Error().Err(err).Str("session_id", session.ID).Msg("Generation stream failed")
	}
}
