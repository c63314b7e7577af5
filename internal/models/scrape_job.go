package models

import (
	"fmt"
	"time"
)

// ScrapeJobStatus represents the state of a scrape job
type ScrapeJobStatus string

const (
	ScrapeJobPending   ScrapeJobStatus = "pending"
	ScrapeJobRunning   ScrapeJobStatus = "running"
	ScrapeJobCompleted ScrapeJobStatus = "completed"
	ScrapeJobFailed    ScrapeJobStatus = "failed"
)

// ScrapeJobType classifies what a scrape job collects
type ScrapeJobType string

const (
	ScrapeJobViralResearch ScrapeJobType = "viral_research"
	ScrapeJobBrandAnalysis ScrapeJobType = "brand_analysis"
	ScrapeJobCompetitor    ScrapeJobType = "competitor"
)

// ScrapeJob tracks one background scraping run through the state machine
// pending -> running -> {completed | failed}. Terminal states have no
// valid outgoing transition.
type ScrapeJob struct {
	ID            string          `json:"id"` // job_<uuid>
	Platform      Platform        `json:"platform"`
	JobType       ScrapeJobType   `json:"job_type"`
	Status        ScrapeJobStatus `json:"status"`
	SearchTerms   []string        `json:"search_terms,omitempty"`
	TargetHandles []string        `json:"target_handles,omitempty"`
	MaxResults    int             `json:"max_results"`
	ResultsCount  int             `json:"results_count"`
	ErrorMessage  string          `json:"error_message,omitempty"`
	StartedAt     *time.Time      `json:"started_at,omitempty"`
	CompletedAt   *time.Time      `json:"completed_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// IsTerminal reports whether the status has no valid outgoing transition
func (s ScrapeJobStatus) IsTerminal() bool {
	return s == ScrapeJobCompleted || s == ScrapeJobFailed
}

// CanTransition reports whether moving from s to next is a valid state
// machine transition.
func (s ScrapeJobStatus) CanTransition(next ScrapeJobStatus) bool {
	switch s {
	case ScrapeJobPending:
		return next == ScrapeJobRunning || next == ScrapeJobFailed
	case ScrapeJobRunning:
		return next == ScrapeJobCompleted || next == ScrapeJobFailed
	}
	return false
}

// Transition moves the job to the next status, stamping the lifecycle
// timestamps. Returns an error for invalid transitions, including any
// attempt to leave a terminal state.
func (j *ScrapeJob) Transition(next ScrapeJobStatus, now time.Time) error {
	if !j.Status.CanTransition(next) {
		return fmt.Errorf("invalid scrape job transition %s -> %s", j.Status, next)
	}
	j.Status = next
	switch next {
	case ScrapeJobRunning:
		j.StartedAt = &now
	case ScrapeJobCompleted, ScrapeJobFailed:
		j.CompletedAt = &now
	}
	return nil
}
