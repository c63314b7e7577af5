package interfaces

import (
	"context"

	"github.com/ternarybob/copydesk/internal/models"
)

// GenerateRequest is one content generation turn
type GenerateRequest struct {
	SessionID   string          `json:"session_id,omitempty"`
	Message     string          `json:"message" validate:"required"`
	ContentType string          `json:"content_type" validate:"required"`
	Platform    models.Platform `json:"platform,omitempty"`
	// UseResearch requests a current-events lookup before generation
	UseResearch bool         `json:"use_research"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// FeedbackRequest records explicit user feedback on generated content
type FeedbackRequest struct {
	SessionID    string                `json:"session_id" validate:"required"`
	MessageID    string                `json:"message_id" validate:"required"`
	Rating       models.FeedbackRating `json:"rating" validate:"required"`
	FeedbackNote string                `json:"feedback_note,omitempty"`
}

// GenerationService orchestrates retrieval-augmented content generation
type GenerationService interface {
	// GenerateStream runs the full pipeline for one turn: session
	// resolution, conversational feedback detection, optional research,
	// context retrieval, prompt assembly and streaming generation.
	// onDelta receives text fragments as the model produces them. The
	// returned message is the persisted assistant turn.
	GenerateStream(ctx context.Context, req *GenerateRequest, onDelta func(delta string)) (*models.ChatMessage, error)

	// EnsureSession returns the session the request targets, creating
	// and persisting a new one when the request carries no session ID.
	// Transports call this before streaming so the session identifier
	// can be sent ahead of the response body.
	EnsureSession(req *GenerateRequest) (*models.ChatSession, error)

	// RecordFeedback stores explicit thumbs up/down feedback against a
	// prior assistant message
	RecordFeedback(ctx context.Context, req *FeedbackRequest) (*models.FeedbackRecord, error)

	GetSession(id string) (*models.ChatSession, error)
	ListSessions(limit int) ([]*models.ChatSession, error)
	ListMessages(sessionID string) ([]*models.ChatMessage, error)
}

// RagBuilder assembles retrieval context for a generation request
type RagBuilder interface {
	Build(ctx context.Context, req *GenerateRequest) (*models.RagContext, error)
}

// BrandVoiceService derives a reusable voice profile from the brand's
// own published content
type BrandVoiceService interface {
	Analyze(ctx context.Context, brandName string) (*models.BrandVoiceProfile, error)
	LatestProfile(brandName string) (*models.BrandVoiceProfile, error)
}

// ReportService generates analytics reports over the corpus
type ReportService interface {
	Generate(ctx context.Context, reportType models.ReportType, platform models.Platform) (*models.Report, error)
	GetReport(id string) (*models.Report, error)
	ListReports(limit int) ([]*models.Report, error)
}

// BackfillService attaches embeddings to corpus rows that lack them
type BackfillService interface {
	// Run processes up to limit unembedded rows and returns the number
	// updated. Running twice in a row with an unchanged corpus updates
	// zero rows on the second pass.
	Run(ctx context.Context, limit int) (int, error)
}
