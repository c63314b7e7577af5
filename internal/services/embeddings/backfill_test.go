package embeddings

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/copydesk/internal/interfaces"
	"github.com/ternarybob/copydesk/internal/models"
)

// memContentStorage is an in-memory ContentStorage for backfill tests
type memContentStorage struct {
	items []*models.ScrapedContentItem
}

func (m *memContentStorage) SaveContent(item *models.ScrapedContentItem) error {
	m.items = append(m.items, item)
	return nil
}

func (m *memContentStorage) GetContent(id string) (*models.ScrapedContentItem, error) {
	for _, item := range m.items {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, fmt.Errorf("content not found: %s", id)
}

func (m *memContentStorage) ListContent(opts *interfaces.ContentListOptions) ([]*models.ScrapedContentItem, error) {
	return m.items, nil
}

func (m *memContentStorage) ListUnembedded(limit int) ([]*models.ScrapedContentItem, error) {
	var pending []*models.ScrapedContentItem
	for _, item := range m.items {
		if len(item.Embedding) == 0 {
			pending = append(pending, item)
		}
		if limit > 0 && len(pending) == limit {
			break
		}
	}
	return pending, nil
}

func (m *memContentStorage) UpdateEmbedding(id string, embedding []float32) error {
	item, err := m.GetContent(id)
	if err != nil {
		return err
	}
	item.Embedding = embedding
	return nil
}

func (m *memContentStorage) SearchSimilar(queryVec []float32, matchCount int, matchThreshold float64, platform models.Platform) ([]*models.ContentMatch, error) {
	return nil, nil
}

func (m *memContentStorage) CountContent() (int, error) {
	return len(m.items), nil
}

// stubEmbedder counts calls and returns unit vectors
type stubEmbedder struct {
	calls int
}

func (s *stubEmbedder) EmbedOne(ctx context.Context, text string, mode interfaces.EmbedMode) ([]float32, error) {
	vecs, err := s.EmbedBatch(ctx, []string{text}, mode)
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func (s *stubEmbedder) EmbedBatch(ctx context.Context, texts []string, mode interfaces.EmbedMode) ([][]float32, error) {
	s.calls++
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = []float32{1, 0, 0}
	}
	return vectors, nil
}

func (s *stubEmbedder) Dimension() int { return 3 }

func (s *stubEmbedder) IsAvailable() bool { return true }

func TestBackfillIdempotence(t *testing.T) {
	storage := &memContentStorage{}
	for i := 0; i < 5; i++ {
		storage.SaveContent(&models.ScrapedContentItem{
			ID:          fmt.Sprintf("content_%d", i),
			Platform:    models.PlatformInstagram,
			ContentText: fmt.Sprintf("post %d", i),
		})
	}

	embedder := &stubEmbedder{}
	svc := NewBackfillService(storage, embedder, arbor.NewLogger())

	updated, err := svc.Run(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, 5, updated)

	// Second run with no new content updates nothing
	updated, err = svc.Run(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, 0, updated)
	assert.Equal(t, 1, embedder.calls, "second run must not call the embedder")
}

func TestBackfillSkipsEmptyText(t *testing.T) {
	storage := &memContentStorage{}
	storage.SaveContent(&models.ScrapedContentItem{ID: "content_a", ContentText: "real text"})
	storage.SaveContent(&models.ScrapedContentItem{ID: "content_b", ContentText: "   "})

	svc := NewBackfillService(storage, &stubEmbedder{}, arbor.NewLogger())

	updated, err := svc.Run(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	item, err := storage.GetContent("content_b")
	require.NoError(t, err)
	assert.Empty(t, item.Embedding, "blank rows stay unembedded")
}

func TestBackfillHonorsLimit(t *testing.T) {
	storage := &memContentStorage{}
	for i := 0; i < 10; i++ {
		storage.SaveContent(&models.ScrapedContentItem{
			ID:          fmt.Sprintf("content_%d", i),
			ContentText: fmt.Sprintf("post %d", i),
		})
	}

	svc := NewBackfillService(storage, &stubEmbedder{}, arbor.NewLogger())

	updated, err := svc.Run(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, 4, updated)
}
