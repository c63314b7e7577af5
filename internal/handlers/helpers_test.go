package handlers

import (
	"net/http/httptest"
	"testing"
)

func TestPathID(t *testing.T) {
	tests := []struct {
		path     string
		prefix   string
		expected string
	}{
		{"/api/scrape/jobs/job_abc", "/api/scrape/jobs/", "job_abc"},
		{"/api/scrape/jobs/", "/api/scrape/jobs/", ""},
		{"/api/sessions/session_1/messages", "/api/sessions/", "session_1"},
		{"/api/reports/report_9", "/api/reports/", "report_9"},
	}

	for _, tt := range tests {
		if got := PathID(tt.path, tt.prefix); got != tt.expected {
			t.Errorf("PathID(%q, %q) = %q, want %q", tt.path, tt.prefix, got, tt.expected)
		}
	}
}

func TestLimitParam(t *testing.T) {
	tests := []struct {
		url      string
		def      int
		expected int
	}{
		{"/api/sessions", 50, 50},
		{"/api/sessions?limit=10", 50, 10},
		{"/api/sessions?limit=0", 50, 50},
		{"/api/sessions?limit=-3", 50, 50},
		{"/api/sessions?limit=abc", 50, 50},
	}

	for _, tt := range tests {
		r := httptest.NewRequest("GET", tt.url, nil)
		if got := LimitParam(r, tt.def); got != tt.expected {
			t.Errorf("LimitParam(%q, %d) = %d, want %d", tt.url, tt.def, got, tt.expected)
		}
	}
}
