package models

import "time"

// FeedbackRating is a binary judgment on a generated output
type FeedbackRating string

const (
	RatingPositive FeedbackRating = "positive"
	RatingNegative FeedbackRating = "negative"
)

// ValidRating reports whether r is one of the two allowed rating values
func ValidRating(r FeedbackRating) bool {
	return r == RatingPositive || r == RatingNegative
}

// FeedbackSource distinguishes explicit ratings from signals inferred
// out of conversational follow-ups
type FeedbackSource string

const (
	FeedbackSourceExplicit       FeedbackSource = "explicit"
	FeedbackSourceConversational FeedbackSource = "conversational"
)

// FeedbackRecord captures one piece of explicit or inferred feedback on
// a generated output. Immutable once created.
type FeedbackRecord struct {
	ID               string         `json:"id"` // fb_<uuid>
	ContentType      string         `json:"content_type" badgerhold:"index"`
	Platform         Platform       `json:"platform"`
	UserMessage      string         `json:"user_message"`
	AssistantMessage string         `json:"assistant_message"`
	Rating           FeedbackRating `json:"rating" badgerhold:"index"`
	FeedbackNote     string         `json:"feedback_note,omitempty"`
	Source           FeedbackSource `json:"source"`
	Embedding        []float32      `json:"embedding,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
}

// FeedbackMatch pairs a feedback record with its similarity to a query vector
type FeedbackMatch struct {
	Record     *FeedbackRecord `json:"record"`
	Similarity float64         `json:"similarity"`
}
