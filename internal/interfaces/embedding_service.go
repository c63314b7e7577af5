package interfaces

import "context"

// EmbedMode selects the asymmetric task type for an embedding request.
// Corpus text is embedded as a document; search text is embedded as a
// query. Mixing the two degrades retrieval quality.
type EmbedMode string

const (
	EmbedModeDocument EmbedMode = "document"
	EmbedModeQuery    EmbedMode = "query"
)

// EmbeddingService converts text into fixed-dimension vectors
type EmbeddingService interface {
	// EmbedOne embeds a single text. Empty or whitespace-only input is
	// rejected before any provider call.
	EmbedOne(ctx context.Context, text string, mode EmbedMode) ([]float32, error)

	// EmbedBatch embeds texts preserving input order. Inputs larger
	// than the provider batch limit are chunked transparently.
	EmbedBatch(ctx context.Context, texts []string, mode EmbedMode) ([][]float32, error)

	// Dimension reports the configured output vector width
	Dimension() int

	IsAvailable() bool
}
