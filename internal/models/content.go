package models

import "time"

// Platform identifies the social network a piece of content came from
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformTikTok    Platform = "tiktok"
	PlatformYouTube   Platform = "youtube"
)

// ValidPlatform reports whether p is a known platform identifier
func ValidPlatform(p Platform) bool {
	switch p {
	case PlatformInstagram, PlatformTikTok, PlatformYouTube:
		return true
	}
	return false
}

// DisplayName returns the human-readable platform name
func (p Platform) DisplayName() string {
	switch p {
	case PlatformInstagram:
		return "Instagram"
	case PlatformTikTok:
		return "TikTok"
	case PlatformYouTube:
		return "YouTube"
	}
	return "Unknown"
}

// Content subtype constants for scraped items
const (
	ContentSubtypePost     = "post"
	ContentSubtypeReel     = "reel"
	ContentSubtypeCarousel = "carousel"
	ContentSubtypeVideo    = "video"
	ContentSubtypeShort    = "short"
)

// EngagementMetrics holds the raw engagement counters for a post.
// All counters default to zero; absent platform fields normalize to zero.
type EngagementMetrics struct {
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
	Shares   int `json:"shares"`
	Saves    int `json:"saves"`
	Views    int `json:"views"`
}

// ScrapedContentItem represents one social post or video stored in the
// viral content corpus.
//
// ViralityScore is a pure function of the engagement counters at insert
// time and is never mutated independently of them. Embedding stays nil
// until the backfill pass attaches one.
type ScrapedContentItem struct {
	ID           string            `json:"id"` // content_<uuid>
	Platform     Platform          `json:"platform" badgerhold:"index"`
	SourceURL    string            `json:"source_url"`
	SourceHandle string            `json:"source_handle"`
	ContentText  string            `json:"content_text"`
	ContentType  string            `json:"content_type"` // post, reel, carousel, video, short
	Engagement   EngagementMetrics `json:"engagement"`
	Hashtags     []string          `json:"hashtags,omitempty"`
	Mentions     []string          `json:"mentions,omitempty"`
	MediaURLs    []string          `json:"media_urls,omitempty"`

	ViralityScore float64   `json:"virality_score"`
	Embedding     []float32 `json:"embedding,omitempty"`

	PostedAt    *time.Time `json:"posted_at,omitempty"`
	ScrapeJobID string     `json:"scrape_job_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ContentMatch pairs a corpus item with its similarity to a query vector
type ContentMatch struct {
	Item       *ScrapedContentItem `json:"item"`
	Similarity float64             `json:"similarity"`
}
