package models

import "time"

// Content type constants for generation requests
const (
	ContentTypeCaption    = "caption"
	ContentTypeCarousel   = "carousel"
	ContentTypeEDM        = "edm"
	ContentTypeReelScript = "reel_script"
)

// ValidContentType reports whether ct is a known generation content type
func ValidContentType(ct string) bool {
	switch ct {
	case ContentTypeCaption, ContentTypeCarousel, ContentTypeEDM, ContentTypeReelScript:
		return true
	}
	return false
}

// ContentTypeDisplayName returns the human-readable label for a content type
func ContentTypeDisplayName(ct string) string {
	switch ct {
	case ContentTypeCaption:
		return "Caption"
	case ContentTypeCarousel:
		return "Carousel Post"
	case ContentTypeEDM:
		return "EDM Copy"
	case ContentTypeReelScript:
		return "Reel Script"
	}
	return "Content"
}

// ChatSession groups the messages of one generation conversation
type ChatSession struct {
	ID          string    `json:"id"` // session_<uuid>
	Title       string    `json:"title"`
	ContentType string    `json:"content_type,omitempty"`
	Platform    Platform  `json:"platform,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ChatMessage is one persisted turn of a session. Assistant turns are
// persisted only after a fully successful stream.
type ChatMessage struct {
	ID             string    `json:"id"` // msg_<uuid>
	SessionID      string    `json:"session_id" badgerhold:"index"`
	Role           string    `json:"role"` // user, assistant
	Content        string    `json:"content"`
	ModelUsed      string    `json:"model_used,omitempty"`
	RAGContextUsed bool      `json:"rag_context_used,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
