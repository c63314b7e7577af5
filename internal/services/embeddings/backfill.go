package embeddings

import (
	"context"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/copydesk/internal/interfaces"
)

// BackfillService attaches embeddings to content rows that do not have
// one yet. Selection is restricted to rows with a null embedding, so
// repeated runs over an unchanged corpus converge to zero updates.
type BackfillService struct {
	content   interfaces.ContentStorage
	embedding interfaces.EmbeddingService
	logger    arbor.ILogger
}

// NewBackfillService creates a new BackfillService instance
func NewBackfillService(content interfaces.ContentStorage, embedding interfaces.EmbeddingService, logger arbor.ILogger) *BackfillService {
	return &BackfillService{
		content:   content,
		embedding: embedding,
		logger:    logger,
	}
}

// Run processes up to limit unembedded rows and returns the number of
// rows updated. Rows with no usable text are skipped, not failed.
func (s *BackfillService) Run(ctx context.Context, limit int) (int, error) {
	items, err := s.content.ListUnembedded(limit)
	if err != nil {
		return 0, fmt.Errorf("failed to select backfill candidates: %w", err)
	}
	if len(items) == 0 {
		s.logger.Debug().Msg("Embedding backfill found no pending rows")
		return 0, nil
	}

	texts := make([]string, 0, len(items))
	candidates := make([]int, 0, len(items))
	for i, item := range items {
		if strings.TrimSpace(item.ContentText) == "" {
			continue
		}
		texts = append(texts, item.ContentText)
		candidates = append(candidates, i)
	}
	if len(texts) == 0 {
		return 0, nil
	}

	// Corpus rows are embedded as documents; queries use query mode
	vectors, err := s.embedding.EmbedBatch(ctx, texts, interfaces.EmbedModeDocument)
	if err != nil {
		return 0, fmt.Errorf("backfill embedding failed: %w", err)
	}

	updated := 0
	for i, idx := range candidates {
		item := items[idx]
		if err := s.content.UpdateEmbedding(item.ID, vectors[i]); err != nil {
			// A single bad row must not abandon the rest of the batch
			s.logger.Warn().Err(err).Str("content_id", item.ID).Msg("Failed to store embedding")
			continue
		}
		updated++
	}

	s.logger.Info().
		Int("pending", len(items)).
		Int("updated", updated).
		Msg("Embedding backfill completed")

	return updated, nil
}
