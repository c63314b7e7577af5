package interfaces

import (
	"github.com/ternarybob/copydesk/internal/models"
)

// ContentListOptions filters corpus browsing queries
type ContentListOptions struct {
	Platform    models.Platform
	MinVirality float64
	Limit       int
	Offset      int
}

// ContentStorage persists the scraped viral content corpus and serves
// vector similarity search over it. This core never deletes content.
type ContentStorage interface {
	SaveContent(item *models.ScrapedContentItem) error
	GetContent(id string) (*models.ScrapedContentItem, error)
	ListContent(opts *ContentListOptions) ([]*models.ScrapedContentItem, error)

	// ListUnembedded returns content rows with no embedding attached,
	// up to limit. Used by the idempotent backfill pass.
	ListUnembedded(limit int) ([]*models.ScrapedContentItem, error)
	UpdateEmbedding(id string, embedding []float32) error

	// SearchSimilar returns items whose cosine similarity to queryVec is
	// >= matchThreshold, ordered descending, truncated to matchCount.
	// platform, when non-empty, restricts candidates before ranking.
	// An empty corpus yields an empty slice, not an error.
	SearchSimilar(queryVec []float32, matchCount int, matchThreshold float64, platform models.Platform) ([]*models.ContentMatch, error)

	CountContent() (int, error)
}

// FeedbackStorage persists feedback records and serves rating-scoped
// similarity search over them
type FeedbackStorage interface {
	SaveFeedback(record *models.FeedbackRecord) error
	ListFeedback(limit int) ([]*models.FeedbackRecord, error)

	// SearchFeedback applies SearchSimilar ranking semantics restricted
	// to one rating and one content type.
	SearchFeedback(queryVec []float32, contentType string, rating models.FeedbackRating, limit int, matchThreshold float64) ([]*models.FeedbackMatch, error)
}

// BrandVoiceStorage persists brand voice profiles. Historical rows are
// retained for audit; only the latest matters at generation time.
type BrandVoiceStorage interface {
	SaveProfile(profile *models.BrandVoiceProfile) error
	LatestProfile(brandName string) (*models.BrandVoiceProfile, error)
}

// ScrapeJobStorage persists scrape job lifecycle records
type ScrapeJobStorage interface {
	SaveJob(job *models.ScrapeJob) error
	GetJob(id string) (*models.ScrapeJob, error)
	ListJobs(limit int) ([]*models.ScrapeJob, error)

	// UpdateStatus applies a state machine transition and persists it.
	// Invalid transitions (including any exit from a terminal state)
	// return an error without modifying the stored job.
	UpdateStatus(id string, next models.ScrapeJobStatus, resultsCount int, errorMessage string) error
}

// SessionStorage persists chat sessions and their messages
type SessionStorage interface {
	SaveSession(session *models.ChatSession) error
	GetSession(id string) (*models.ChatSession, error)
	ListSessions(limit int) ([]*models.ChatSession, error)
	SaveMessage(message *models.ChatMessage) error
	ListMessages(sessionID string) ([]*models.ChatMessage, error)
}

// ReportStorage persists generated analytics reports
type ReportStorage interface {
	SaveReport(report *models.Report) error
	GetReport(id string) (*models.Report, error)
	ListReports(limit int) ([]*models.Report, error)
}

// StorageManager provides access to all storage interfaces
type StorageManager interface {
	ContentStorage() ContentStorage
	FeedbackStorage() FeedbackStorage
	BrandVoiceStorage() BrandVoiceStorage
	ScrapeJobStorage() ScrapeJobStorage
	SessionStorage() SessionStorage
	ReportStorage() ReportStorage
	Close() error
}
