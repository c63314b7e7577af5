package embeddings

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/copydesk/internal/common"
	"github.com/ternarybob/copydesk/internal/interfaces"
)

// fakeEmbedClient records chunk sizes and returns index-tagged vectors
// so order preservation is observable.
type fakeEmbedClient struct {
	chunkSizes []int
	taskTypes  []string
	dimension  int
	next       int
	failOn     int // 1-based chunk index to fail on, 0 = never
}

func (f *fakeEmbedClient) EmbedContent(ctx context.Context, model string, texts []string, taskType string, dimension int32) ([][]float32, error) {
	f.chunkSizes = append(f.chunkSizes, len(texts))
	f.taskTypes = append(f.taskTypes, taskType)
	if f.failOn > 0 && len(f.chunkSizes) == f.failOn {
		return nil, fmt.Errorf("upstream quota exceeded")
	}

	vectors := make([][]float32, len(texts))
	for i := range texts {
		vec := make([]float32, f.dimension)
		vec[0] = float32(f.next) // Global input index in the first slot
		f.next++
		vectors[i] = vec
	}
	return vectors, nil
}

func newTestService(client embedClient, dimension int) *GeminiService {
	return &GeminiService{
		config: &common.GeminiConfig{
			EmbedModel:     "gemini-embedding-001",
			EmbedDimension: dimension,
		},
		logger:  arbor.NewLogger(),
		client:  client,
		timeout: time.Minute,
	}
}

func TestEmbedBatchChunking(t *testing.T) {
	client := &fakeEmbedClient{dimension: 4}
	svc := newTestService(client, 4)

	texts := make([]string, 300)
	for i := range texts {
		texts[i] = fmt.Sprintf("post %d", i)
	}

	vectors, err := svc.EmbedBatch(context.Background(), texts, interfaces.EmbedModeDocument)
	require.NoError(t, err)

	assert.Equal(t, []int{128, 128, 44}, client.chunkSizes)
	require.Len(t, vectors, 300)

	// Input order must survive chunk reassembly
	for i, vec := range vectors {
		assert.Equal(t, float32(i), vec[0], "vector %d out of order", i)
	}
}

func TestEmbedBatchChunkFailureSurfaces(t *testing.T) {
	client := &fakeEmbedClient{dimension: 4, failOn: 2}
	svc := newTestService(client, 4)

	texts := make([]string, 200)
	for i := range texts {
		texts[i] = fmt.Sprintf("post %d", i)
	}

	_, err := svc.EmbedBatch(context.Background(), texts, interfaces.EmbedModeDocument)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota")
}

func TestEmbedOneRejectsEmptyText(t *testing.T) {
	svc := newTestService(&fakeEmbedClient{dimension: 4}, 4)

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := svc.EmbedOne(context.Background(), text, interfaces.EmbedModeQuery)
		assert.Error(t, err, "text %q should be rejected", text)
	}
}

func TestEmbedModeTaskTypes(t *testing.T) {
	client := &fakeEmbedClient{dimension: 4}
	svc := newTestService(client, 4)

	_, err := svc.EmbedOne(context.Background(), "stored corpus text", interfaces.EmbedModeDocument)
	require.NoError(t, err)
	_, err = svc.EmbedOne(context.Background(), "user search text", interfaces.EmbedModeQuery)
	require.NoError(t, err)

	assert.Equal(t, []string{"RETRIEVAL_DOCUMENT", "RETRIEVAL_QUERY"}, client.taskTypes)
}

func TestEmbedBatchDimensionMismatch(t *testing.T) {
	// Client returns width 4, service expects 8
	svc := newTestService(&fakeEmbedClient{dimension: 4}, 8)

	_, err := svc.EmbedBatch(context.Background(), []string{"a"}, interfaces.EmbedModeDocument)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dimension mismatch")
}

func TestEmbedBatchEmptyInput(t *testing.T) {
	client := &fakeEmbedClient{dimension: 4}
	svc := newTestService(client, 4)

	vectors, err := svc.EmbedBatch(context.Background(), nil, interfaces.EmbedModeDocument)
	require.NoError(t, err)
	assert.Empty(t, vectors)
	assert.Empty(t, client.chunkSizes, "no upstream call for empty input")
}
