package interfaces

import (
	"context"

	"github.com/ternarybob/copydesk/internal/models"
)

// ScrapeRequest describes a scraping job to start
type ScrapeRequest struct {
	JobType  models.ScrapeJobType `json:"job_type" validate:"required"`
	Platform models.Platform      `json:"platform" validate:"required"`
	// Handles are account usernames to scrape. Hashtag targets carry a
	// leading '#'.
	Handles     []string `json:"handles" validate:"required,min=1"`
	SearchTerms []string `json:"search_terms,omitempty"`
	MaxResults  int      `json:"max_results"`
}

// ScrapingService runs scrape jobs against social platforms and
// persists normalized results into the content corpus
type ScrapingService interface {
	// StartJob creates a pending job, launches its run in the
	// background and returns immediately
	StartJob(ctx context.Context, req *ScrapeRequest) (*models.ScrapeJob, error)
	GetJob(id string) (*models.ScrapeJob, error)
	ListJobs(limit int) ([]*models.ScrapeJob, error)

	// FetchProfileContent scrapes a profile's recent posts and returns
	// them normalized without persisting anything
	FetchProfileContent(ctx context.Context, platform models.Platform, handle string, maxResults int) ([]*models.ScrapedContentItem, error)
}

// WebsiteScraper extracts readable markdown from a web page
type WebsiteScraper interface {
	ScrapePage(ctx context.Context, url string) (*models.WebsitePage, error)
}
