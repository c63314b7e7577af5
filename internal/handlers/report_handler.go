package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/copydesk/internal/interfaces"
	"github.com/ternarybob/copydesk/internal/models"
)

const defaultReportListLimit = 20

// ReportHandler serves analytics report endpoints
type ReportHandler struct {
	reports interfaces.ReportService
	logger  arbor.ILogger
}

func NewReportHandler(reports interfaces.ReportService, logger arbor.ILogger) *ReportHandler {
	return &ReportHandler{
		reports: reports,
		logger:  logger,
	}
}

type generateReportRequest struct {
	ReportType models.ReportType `json:"report_type"`
	Platform   models.Platform   `json:"platform,omitempty"`
}

// GenerateHandler handles POST /api/reports/generate. Generation calls
// the model over a large prompt, so it runs in the background.
func (h *ReportHandler) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	req := generateReportRequest{ReportType: models.ReportContentAudit}
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	if !models.ValidReportType(req.ReportType) {
		WriteError(w, http.StatusBadRequest, "Unknown report type")
		return
	}
	if req.Platform != "" && !models.ValidPlatform(req.Platform) {
		WriteError(w, http.StatusBadRequest, "Unknown platform")
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		if _, err := h.reports.Generate(ctx, req.ReportType, req.Platform); err != nil {
			h.logger.Error().Err(err).
				Str("report_type", string(req.ReportType)).
				Msg("Report generation failed")
		}
	}()

	WriteStarted(w, map[string]interface{}{
		"report_type": req.ReportType,
	})
}

// ListReportsHandler handles GET /api/reports
func (h *ReportHandler) ListReportsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	reports, err := h.reports.ListReports(LimitParam(r, defaultReportListLimit))
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list reports")
		WriteError(w, http.StatusInternalServerError, "Failed to list reports")
		return
	}

	// listing returns metadata only; full content comes from the item
	// endpoint
	type reportSummary struct {
		ID         string            `json:"id"`
		ReportType models.ReportType `json:"report_type"`
		Title      string            `json:"title"`
		Summary    string            `json:"summary"`
		CreatedAt  time.Time         `json:"created_at"`
	}
	summaries := make([]reportSummary, 0, len(reports))
	for _, report := range reports {
		summaries = append(summaries, reportSummary{
			ID:         report.ID,
			ReportType: report.ReportType,
			Title:      report.Title,
			Summary:    report.Summary,
			CreatedAt:  report.CreatedAt,
		})
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"reports": summaries,
		"count":   len(summaries),
	})
}

// ReportItemHandler handles GET /api/reports/{id}
func (h *ReportHandler) ReportItemHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	id := PathID(r.URL.Path, "/api/reports/")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Report ID is required")
		return
	}

	report, err := h.reports.GetReport(id)
	if err != nil {
		WriteError(w, http.StatusNotFound, "Report not found")
		return
	}
	WriteJSON(w, http.StatusOK, report)
}
