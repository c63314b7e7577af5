package interfaces

import (
	"context"

	"github.com/ternarybob/copydesk/internal/models"
)

// ResearchService fetches current-events context for a generation
// request from a web-grounded answer engine
type ResearchService interface {
	// Research returns a short grounded answer about the user's topic,
	// targeted at the requested content type and platform. When the
	// provider is not configured or the call fails, implementations
	// return empty text and a nil error so generation can proceed
	// without research context.
	Research(ctx context.Context, userMessage, contentType string, platform models.Platform) (string, error)

	IsAvailable() bool
}
