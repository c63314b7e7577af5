package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/copydesk/internal/common"
	"github.com/ternarybob/copydesk/internal/interfaces"
	"github.com/ternarybob/copydesk/internal/models"
)

const defaultContentListLimit = 50

// ContentHandler serves corpus browsing and similarity search
type ContentHandler struct {
	content   interfaces.ContentStorage
	embedding interfaces.EmbeddingService
	config    *common.Config
	logger    arbor.ILogger
}

func NewContentHandler(
	content interfaces.ContentStorage,
	embedding interfaces.EmbeddingService,
	config *common.Config,
	logger arbor.ILogger,
) *ContentHandler {
	return &ContentHandler{
		content:   content,
		embedding: embedding,
		config:    config,
		logger:    logger,
	}
}

// ListContentHandler handles GET /api/content
func (h *ContentHandler) ListContentHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	opts := &interfaces.ContentListOptions{
		Platform: models.Platform(r.URL.Query().Get("platform")),
		Limit:    LimitParam(r, defaultContentListLimit),
	}
	if opts.Platform != "" && !models.ValidPlatform(opts.Platform) {
		WriteError(w, http.StatusBadRequest, "Unknown platform")
		return
	}
	if raw := r.URL.Query().Get("min_virality"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 {
			opts.MinVirality = v
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			opts.Offset = v
		}
	}

	items, err := h.content.ListContent(opts)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list content")
		WriteError(w, http.StatusInternalServerError, "Failed to list content")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
		"count": len(items),
	})
}

// StatsHandler handles GET /api/content/stats
func (h *ContentHandler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	count, err := h.content.CountContent()
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to count content")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"total_items": count,
	})
}

type searchRequest struct {
	Query     string          `json:"query"`
	Platform  models.Platform `json:"platform,omitempty"`
	Limit     int             `json:"limit,omitempty"`
	Threshold float64         `json:"threshold,omitempty"`
}

// SearchHandler handles POST /api/content/search. The query text is
// embedded in query mode and ranked against the corpus by cosine
// similarity.
func (h *ContentHandler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Query == "" {
		WriteError(w, http.StatusBadRequest, "Query field is required")
		return
	}
	if req.Platform != "" && !models.ValidPlatform(req.Platform) {
		WriteError(w, http.StatusBadRequest, "Unknown platform")
		return
	}
	if req.Limit <= 0 {
		req.Limit = h.config.RAG.MaxExamples
	}
	if req.Threshold <= 0 {
		req.Threshold = h.config.RAG.MatchThreshold
	}

	if h.embedding == nil || !h.embedding.IsAvailable() {
		WriteError(w, http.StatusServiceUnavailable, "Embedding service not configured")
		return
	}

	queryVec, err := h.embedding.EmbedOne(r.Context(), req.Query, interfaces.EmbedModeQuery)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to embed search query")
		WriteError(w, http.StatusBadGateway, "Failed to embed query")
		return
	}

	matches, err := h.content.SearchSimilar(queryVec, req.Limit, req.Threshold, req.Platform)
	if err != nil {
		h.logger.Error().Err(err).Msg("Similarity search failed")
		WriteError(w, http.StatusInternalServerError, "Search failed")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"matches": matches,
		"count":   len(matches),
	})
}
