package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/copydesk/internal/interfaces"
)

const defaultJobListLimit = 20

// ScrapeHandler serves scrape job management endpoints
type ScrapeHandler struct {
	scraping interfaces.ScrapingService
	logger   arbor.ILogger
}

func NewScrapeHandler(scraping interfaces.ScrapingService, logger arbor.ILogger) *ScrapeHandler {
	return &ScrapeHandler{
		scraping: scraping,
		logger:   logger,
	}
}

// JobsCollectionHandler handles /api/scrape/jobs:
// GET lists recent jobs, POST starts a new one.
func (h *ScrapeHandler) JobsCollectionHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listJobs(w, r)
	case http.MethodPost:
		h.startJob(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// JobItemHandler handles GET /api/scrape/jobs/{id}
func (h *ScrapeHandler) JobItemHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	id := PathID(r.URL.Path, "/api/scrape/jobs/")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Job ID is required")
		return
	}

	job, err := h.scraping.GetJob(id)
	if err != nil {
		WriteError(w, http.StatusNotFound, "Job not found")
		return
	}
	WriteJSON(w, http.StatusOK, job)
}

func (h *ScrapeHandler) listJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.scraping.ListJobs(LimitParam(r, defaultJobListLimit))
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list scrape jobs")
		WriteError(w, http.StatusInternalServerError, "Failed to list jobs")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"jobs":  jobs,
		"count": len(jobs),
	})
}

func (h *ScrapeHandler) startJob(w http.ResponseWriter, r *http.Request) {
	var req interfaces.ScrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	job, err := h.scraping.StartJob(r.Context(), &req)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	WriteStarted(w, map[string]interface{}{
		"job_id":   job.ID,
		"platform": job.Platform,
		"job_type": job.JobType,
	})
}
