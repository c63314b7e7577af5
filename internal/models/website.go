package models

import "time"

// WebsitePage is readable content extracted from a scraped web page
type WebsitePage struct {
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Markdown  string    `json:"markdown"`
	Links     []string  `json:"links,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
}
