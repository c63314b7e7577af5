package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/copydesk/internal/common"
	"github.com/ternarybob/copydesk/internal/models"
)

type APIHandler struct {
	logger arbor.ILogger
}

func NewAPIHandler() *APIHandler {
	return &APIHandler{
		logger: common.GetLogger(),
	}
}

// VersionHandler returns version information
func (h *APIHandler) VersionHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
	})
}

// HealthHandler returns health check status
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// PlatformsHandler lists the supported scraping platforms
func (h *APIHandler) PlatformsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	platforms := []models.Platform{models.PlatformInstagram, models.PlatformTikTok, models.PlatformYouTube}
	out := make([]map[string]string, 0, len(platforms))
	for _, p := range platforms {
		out = append(out, map[string]string{
			"value": string(p),
			"label": p.DisplayName(),
		})
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"platforms": out,
	})
}

// ContentTypesHandler lists the supported generation content types
func (h *APIHandler) ContentTypesHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	types := []string{
		models.ContentTypeCaption,
		models.ContentTypeCarousel,
		models.ContentTypeEDM,
		models.ContentTypeReelScript,
	}
	out := make([]map[string]string, 0, len(types))
	for _, ct := range types {
		out = append(out, map[string]string{
			"value": ct,
			"label": models.ContentTypeDisplayName(ct),
		})
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"content_types": out,
	})
}

// NotFoundHandler handles 404 errors with JSON response
func (h *APIHandler) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusNotFound, map[string]interface{}{
		"error":   "Not Found",
		"path":    r.URL.Path,
		"message": "The requested endpoint does not exist",
	})
}
