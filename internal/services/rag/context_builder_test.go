package rag

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/copydesk/internal/common"
	"github.com/ternarybob/copydesk/internal/interfaces"
	"github.com/ternarybob/copydesk/internal/models"
)

type fakeEmbedder struct {
	fail bool
}

func (f *fakeEmbedder) EmbedOne(ctx context.Context, text string, mode interfaces.EmbedMode) ([]float32, error) {
	if f.fail {
		return nil, fmt.Errorf("embedding provider unavailable")
	}
	return []float32{1, 0, 0}, nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string, mode interfaces.EmbedMode) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vec, err := f.EmbedOne(ctx, texts[i], mode)
		if err != nil {
			return nil, err
		}
		vectors[i] = vec
	}
	return vectors, nil
}

func (f *fakeEmbedder) Dimension() int { return 3 }

func (f *fakeEmbedder) IsAvailable() bool { return !f.fail }

type fakeContentStorage struct {
	matches []*models.ContentMatch
	err     error
}

func (f *fakeContentStorage) SaveContent(*models.ScrapedContentItem) error { return nil }
func (f *fakeContentStorage) GetContent(string) (*models.ScrapedContentItem, error) {
	return nil, fmt.Errorf("not found")
}
func (f *fakeContentStorage) ListContent(*interfaces.ContentListOptions) ([]*models.ScrapedContentItem, error) {
	return nil, nil
}
func (f *fakeContentStorage) ListUnembedded(int) ([]*models.ScrapedContentItem, error) {
	return nil, nil
}
func (f *fakeContentStorage) UpdateEmbedding(string, []float32) error { return nil }
func (f *fakeContentStorage) SearchSimilar([]float32, int, float64, models.Platform) ([]*models.ContentMatch, error) {
	return f.matches, f.err
}
func (f *fakeContentStorage) CountContent() (int, error) { return len(f.matches), nil }

type fakeFeedbackStorage struct {
	positive []*models.FeedbackMatch
	negative []*models.FeedbackMatch
	err      error
}

func (f *fakeFeedbackStorage) SaveFeedback(*models.FeedbackRecord) error { return nil }
func (f *fakeFeedbackStorage) ListFeedback(int) ([]*models.FeedbackRecord, error) {
	return nil, nil
}
func (f *fakeFeedbackStorage) SearchFeedback(_ []float32, _ string, rating models.FeedbackRating, _ int, _ float64) ([]*models.FeedbackMatch, error) {
	if f.err != nil {
		return nil, f.err
	}
	if rating == models.RatingPositive {
		return f.positive, nil
	}
	return f.negative, nil
}

type fakeBrandVoiceStorage struct {
	profile *models.BrandVoiceProfile
	err     error
}

func (f *fakeBrandVoiceStorage) SaveProfile(*models.BrandVoiceProfile) error { return nil }
func (f *fakeBrandVoiceStorage) LatestProfile(string) (*models.BrandVoiceProfile, error) {
	return f.profile, f.err
}

func newBuilder(embedder interfaces.EmbeddingService, content interfaces.ContentStorage, feedback interfaces.FeedbackStorage, voice interfaces.BrandVoiceStorage) *ContextBuilder {
	return NewContextBuilder(embedder, content, feedback, voice, common.NewDefaultConfig(), arbor.NewLogger())
}

func TestBuildWithEmptyCorpus(t *testing.T) {
	builder := newBuilder(&fakeEmbedder{}, &fakeContentStorage{}, &fakeFeedbackStorage{}, &fakeBrandVoiceStorage{})

	ragContext, err := builder.Build(context.Background(), &interfaces.GenerateRequest{
		Message:     "write a caption about hair clubs",
		ContentType: models.ContentTypeCaption,
	})
	require.NoError(t, err)

	assert.Empty(t, ragContext.ViralExamples)
	assert.Nil(t, ragContext.BrandVoice)
	assert.Empty(t, ragContext.PositiveFeedback)
	assert.Empty(t, ragContext.NegativeFeedback)
	assert.False(t, ragContext.HasContext())
	// Nothing failed, so nothing degraded
	assert.Empty(t, ragContext.Degradations)
}

func TestBuildDegradesOnEmbeddingFailure(t *testing.T) {
	builder := newBuilder(&fakeEmbedder{fail: true}, &fakeContentStorage{}, &fakeFeedbackStorage{}, &fakeBrandVoiceStorage{
		profile: &models.BrandVoiceProfile{BrandName: "YourSalonSupport"},
	})

	ragContext, err := builder.Build(context.Background(), &interfaces.GenerateRequest{
		Message:     "write a caption",
		ContentType: models.ContentTypeCaption,
	})
	require.NoError(t, err, "embedding failure must never abort the build")

	assert.Empty(t, ragContext.ViralExamples)
	assert.Empty(t, ragContext.PositiveFeedback)
	// Brand voice does not depend on embeddings and still arrives
	require.NotNil(t, ragContext.BrandVoice)
	assert.Len(t, ragContext.Degradations, 2)
}

func TestBuildDegradesOnSearchFailure(t *testing.T) {
	builder := newBuilder(
		&fakeEmbedder{},
		&fakeContentStorage{err: fmt.Errorf("index unavailable")},
		&fakeFeedbackStorage{err: fmt.Errorf("index unavailable")},
		&fakeBrandVoiceStorage{err: fmt.Errorf("store offline")},
	)

	ragContext, err := builder.Build(context.Background(), &interfaces.GenerateRequest{
		Message:     "write a caption",
		ContentType: models.ContentTypeCaption,
	})
	require.NoError(t, err)

	assert.False(t, ragContext.HasContext())
	// viral + brand voice + positive + negative all degraded
	assert.Len(t, ragContext.Degradations, 4)
}

func TestBuildCollectsAllContext(t *testing.T) {
	builder := newBuilder(
		&fakeEmbedder{},
		&fakeContentStorage{matches: []*models.ContentMatch{
			{Item: &models.ScrapedContentItem{ContentText: "viral"}, Similarity: 0.9},
		}},
		&fakeFeedbackStorage{
			positive: []*models.FeedbackMatch{{Record: &models.FeedbackRecord{Rating: models.RatingPositive}}},
			negative: []*models.FeedbackMatch{{Record: &models.FeedbackRecord{Rating: models.RatingNegative}}},
		},
		&fakeBrandVoiceStorage{profile: &models.BrandVoiceProfile{BrandName: "YourSalonSupport"}},
	)

	ragContext, err := builder.Build(context.Background(), &interfaces.GenerateRequest{
		Message:     "write a caption",
		ContentType: models.ContentTypeCaption,
		Platform:    models.PlatformInstagram,
	})
	require.NoError(t, err)

	assert.Len(t, ragContext.ViralExamples, 1)
	assert.NotNil(t, ragContext.BrandVoice)
	assert.Len(t, ragContext.PositiveFeedback, 1)
	assert.Len(t, ragContext.NegativeFeedback, 1)
	assert.True(t, ragContext.HasContext())
	assert.Empty(t, ragContext.Degradations)
}
