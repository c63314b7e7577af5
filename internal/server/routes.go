package server

import (
	"net/http"
	"strings"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// Content generation (streaming)
	mux.HandleFunc("/api/generate", s.app.GenerateHandler.GenerateStreamHandler)

	// Sessions
	mux.HandleFunc("/api/sessions", s.app.SessionHandler.ListSessionsHandler)
	mux.HandleFunc("/api/sessions/", s.app.SessionHandler.SessionRoutesHandler) // GET /{id}, /{id}/messages

	// Feedback
	mux.HandleFunc("/api/feedback", s.app.FeedbackHandler.FeedbackCollectionHandler) // GET (list), POST (record)

	// Content corpus
	mux.HandleFunc("/api/content", s.app.ContentHandler.ListContentHandler)
	mux.HandleFunc("/api/content/stats", s.app.ContentHandler.StatsHandler)
	mux.HandleFunc("/api/content/search", s.app.ContentHandler.SearchHandler)

	// Scrape jobs
	mux.HandleFunc("/api/scrape/jobs", s.app.ScrapeHandler.JobsCollectionHandler) // GET (list), POST (start)
	mux.HandleFunc("/api/scrape/jobs/", s.app.ScrapeHandler.JobItemHandler)       // GET /{id}

	// Brand voice
	mux.HandleFunc("/api/brand-voice", s.app.BrandVoiceHandler.GetProfileHandler)
	mux.HandleFunc("/api/brand-voice/analyze", s.app.BrandVoiceHandler.AnalyzeHandler)

	// Reports
	mux.HandleFunc("/api/reports", s.app.ReportHandler.ListReportsHandler)
	mux.HandleFunc("/api/reports/generate", s.app.ReportHandler.GenerateHandler)
	mux.HandleFunc("/api/reports/", s.handleReportRoutes) // GET /{id}

	// Processing
	mux.HandleFunc("/api/processing/backfill", s.app.ProcessingHandler.BackfillHandler)

	// System
	mux.HandleFunc("/api/status", s.app.StatusHandler.GetStatusHandler)
	mux.HandleFunc("/api/platforms", s.app.APIHandler.PlatformsHandler)
	mux.HandleFunc("/api/content-types", s.app.APIHandler.ContentTypesHandler)
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.app.APIHandler.NotFoundHandler)

	return mux
}

// handleReportRoutes routes /api/reports/ subpaths, keeping the
// generate endpoint out of the item handler
func (s *Server) handleReportRoutes(w http.ResponseWriter, r *http.Request) {
	if strings.HasSuffix(r.URL.Path, "/generate") {
		s.app.ReportHandler.GenerateHandler(w, r)
		return
	}
	s.app.ReportHandler.ReportItemHandler(w, r)
}
