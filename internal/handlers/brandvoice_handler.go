package handlers

import (
	"context"
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/copydesk/internal/common"
	"github.com/ternarybob/copydesk/internal/interfaces"
)

// BrandVoiceHandler serves brand voice profile endpoints
type BrandVoiceHandler struct {
	brandVoice interfaces.BrandVoiceService
	config     *common.Config
	logger     arbor.ILogger
}

func NewBrandVoiceHandler(brandVoice interfaces.BrandVoiceService, config *common.Config, logger arbor.ILogger) *BrandVoiceHandler {
	return &BrandVoiceHandler{
		brandVoice: brandVoice,
		config:     config,
		logger:     logger,
	}
}

// GetProfileHandler handles GET /api/brand-voice
func (h *BrandVoiceHandler) GetProfileHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	profile, err := h.brandVoice.LatestProfile(h.config.Brand.Name)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to load brand voice profile")
		WriteError(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}
	if profile == nil {
		WriteError(w, http.StatusNotFound, "Brand voice not yet analyzed")
		return
	}
	WriteJSON(w, http.StatusOK, profile)
}

// AnalyzeHandler handles POST /api/brand-voice/analyze. Analysis
// scrapes and calls the model, so it runs in the background; poll
// GET /api/brand-voice for the result.
func (h *BrandVoiceHandler) AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	brandName := h.config.Brand.Name

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), h.config.Apify.RequestTimeout*2)
		defer cancel()

		if _, err := h.brandVoice.Analyze(ctx, brandName); err != nil {
			h.logger.Error().Err(err).Str("brand", brandName).Msg("Brand voice analysis failed")
		}
	}()

	WriteStarted(w, map[string]interface{}{
		"brand": brandName,
	})
}
