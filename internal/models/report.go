package models

import "time"

// ReportType identifies one of the supported analytics reports
type ReportType string

const (
	ReportContentAudit       ReportType = "content_audit"
	ReportCompetitorAnalysis ReportType = "competitor_analysis"
	ReportStrategy           ReportType = "strategy"
)

// ValidReportType reports whether t is a known report type
func ValidReportType(t ReportType) bool {
	switch t {
	case ReportContentAudit, ReportCompetitorAnalysis, ReportStrategy:
		return true
	}
	return false
}

// Report is one generated analytics report stored for later retrieval
type Report struct {
	ID          string     `json:"id"` // report_<uuid>
	ReportType  ReportType `json:"report_type"`
	Title       string     `json:"title"`
	Summary     string     `json:"summary"` // First prose lines, capped at 500 chars
	FullContent string     `json:"full_content"`
	CreatedAt   time.Time  `json:"created_at"`
}
