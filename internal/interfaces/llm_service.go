package interfaces

import "context"

// Attachment is a user-supplied file carried on a chat turn. Data is
// base64 encoded. Images (jpeg/png/gif/webp) and PDFs become typed
// model blocks; text files (plain/markdown/csv) are decoded and
// inlined into the conversation.
type Attachment struct {
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
	FileName  string `json:"file_name,omitempty"`
}

// LLMMessage is one turn of a conversation sent to the model
type LLMMessage struct {
	Role        string       `json:"role"`
	Content     string       `json:"content"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// LLMService generates text with a hosted language model
type LLMService interface {
	// Chat runs a non-streaming completion and returns the full text
	Chat(ctx context.Context, systemPrompt string, messages []LLMMessage) (string, error)

	// ChatStream runs a streaming completion, invoking onDelta for each
	// text fragment as it arrives, and returns the accumulated text.
	// If the stream is interrupted the text accumulated so far is
	// returned along with the error.
	ChatStream(ctx context.Context, systemPrompt string, messages []LLMMessage, onDelta func(delta string)) (string, error)

	HealthCheck(ctx context.Context) error
	IsAvailable() bool
	Close()
}
