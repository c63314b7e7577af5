package common

import (
	"github.com/google/uuid"
)

// NewContentID generates a unique scraped content ID
// Format: content_<uuid>
func NewContentID() string {
	return "content_" + uuid.New().String()
}

// NewScrapeJobID generates a unique scrape job ID
func NewScrapeJobID() string {
	return "job_" + uuid.New().String()
}

// NewFeedbackID generates a unique feedback record ID
func NewFeedbackID() string {
	return "fb_" + uuid.New().String()
}

// NewSessionID generates a unique chat session ID
func NewSessionID() string {
	return "session_" + uuid.New().String()
}

// NewMessageID generates a unique chat message ID
func NewMessageID() string {
	return "msg_" + uuid.New().String()
}

// NewVoiceProfileID generates a unique brand voice profile ID
func NewVoiceProfileID() string {
	return "voice_" + uuid.New().String()
}

// NewReportID generates a unique report ID
func NewReportID() string {
	return "report_" + uuid.New().String()
}
