package brandvoice

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

const analysisResponse = `Here is the analysis:
{
    "tone_attributes": {"warm": 0.9, "professional": 0.7},
    "vocabulary_patterns": {
        "power_words": ["grow", "thrive"],
        "industry_jargon": ["balayage"],
        "avoided_words": ["cheap"],
        "signature_phrases": ["Hair Club"]
    },
    "sentence_structure": {
        "avg_word_count": 9,
        "style": "short_punchy",
        "uses_fragments": true,
        "uses_questions": true,
        "uses_commands": false
    },
    "emoji_usage": {"frequency": "minimal", "preferred_emojis": ["✨"], "placement": "end"},
    "hashtag_strategy": {"avg_count": 3, "types": ["branded"], "placement": "end"},
    "cta_patterns": {"styles": ["link in bio"], "frequency": "most_posts"},
    "overall_personality": "Warm and direct with salon owners.",
    "writing_guidelines": "Keep sentences short. Never sound corporate."
}`

type fakeLLM struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeLLM) Chat(ctx context.Context, systemPrompt string, messages []interfaces.LLMMessage) (string, error) {
	if len(messages) > 0 {
		f.prompts = append(f.prompts, messages[len(messages)-1].Content)
	}
	return f.response, f.err
}

func (f *fakeLLM) ChatStream(ctx context.Context, systemPrompt string, messages []interfaces.LLMMessage, onDelta func(string)) (string, error) {
	return f.response, f.err
}
func (f *fakeLLM) HealthCheck(ctx context.Context) error { return nil }
func (f *fakeLLM) IsAvailable() bool                     { return true }
func (f *fakeLLM) Close()                                {}

type fakeEmbedder struct {
	fail bool
}

func (f *fakeEmbedder) EmbedOne(ctx context.Context, text string, mode interfaces.EmbedMode) ([]float32, error) {
	if f.fail {
		return nil, fmt.Errorf("embedding unavailable")
	}
	return []float32{0.1, 0.2}, nil
}
func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string, mode interfaces.EmbedMode) ([][]float32, error) {
	return nil, nil
}
func (f *fakeEmbedder) Dimension() int    { return 2 }
func (f *fakeEmbedder) IsAvailable() bool { return true }

type fakeScraper struct {
	posts []*models.ScrapedContentItem
	err   error
}

func (f *fakeScraper) StartJob(ctx context.Context, req *interfaces.ScrapeRequest) (*models.ScrapeJob, error) {
	return nil, nil
}
func (f *fakeScraper) GetJob(id string) (*models.ScrapeJob, error)      { return nil, nil }
func (f *fakeScraper) ListJobs(limit int) ([]*models.ScrapeJob, error)  { return nil, nil }
func (f *fakeScraper) FetchProfileContent(ctx context.Context, platform models.Platform, handle string, maxResults int) ([]*models.ScrapedContentItem, error) {
	return f.posts, f.err
}

type memVoiceStorage struct {
	profiles []*models.BrandVoiceProfile
}

func (s *memVoiceStorage) SaveProfile(profile *models.BrandVoiceProfile) error {
	s.profiles = append(s.profiles, profile)
	return nil
}

func (s *memVoiceStorage) LatestProfile(brandName string) (*models.BrandVoiceProfile, error) {
	for i := len(s.profiles) - 1; i >= 0; i-- {
		if s.profiles[i].BrandName == brandName {
			return s.profiles[i], nil
		}
	}
	return nil, nil
}

func brandPosts(captions ...string) []*models.ScrapedContentItem {
	posts := make([]*models.ScrapedContentItem, 0, len(captions))
	for _, caption := range captions {
		posts = append(posts, &models.ScrapedContentItem{
			Platform:    models.PlatformInstagram,
			ContentText: caption,
		})
	}
	return posts
}

func newTestService(llmSvc *fakeLLM, embedder *fakeEmbedder, scraper *fakeScraper, storage *memVoiceStorage) *Service {
	return NewService(llmSvc, embedder, scraper, nil, storage,
		common.NewDefaultConfig(), arbor.NewLogger()).(*Service)
}

func TestAnalyzeStoresProfile(t *testing.T) {
	llmSvc := &fakeLLM{response: analysisResponse}
	storage := &memVoiceStorage{}
	scraper := &fakeScraper{posts: brandPosts("Grow your salon.", "Join the Hair Club.")}

	svc := newTestService(llmSvc, &fakeEmbedder{}, scraper, storage)

	profile, err := svc.Analyze(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "YourSalonSupport", profile.BrandName)
	assert.Equal(t, "@yoursalonsupport", profile.BrandHandle)
	assert.Equal(t, 0.9, profile.ToneAttributes["warm"])
	assert.Equal(t, []string{"grow", "thrive"}, profile.Vocabulary.PowerWords)
	assert.Equal(t, "short_punchy", profile.Sentences.Style)
	assert.Equal(t, "Warm and direct with salon owners.", profile.Personality)
	assert.Equal(t, "Warm and direct with salon owners.\n\nKeep sentences short. Never sound corporate.", profile.AnalysisText)
	assert.Equal(t, []float32{0.1, 0.2}, profile.AnalysisEmbedding)
	assert.Equal(t, 2, profile.SourcePostsCount)
	require.Len(t, storage.profiles, 1)

	// captions reach the analysis prompt
	require.Len(t, llmSvc.prompts, 1)
	assert.Contains(t, llmSvc.prompts[0], "Join the Hair Club.")

	latest, err := svc.LatestProfile("")
	require.NoError(t, err)
	assert.Equal(t, profile.ID, latest.ID)
}

func TestAnalyzeSurvivesEmbeddingFailure(t *testing.T) {
	storage := &memVoiceStorage{}
	scraper := &fakeScraper{posts: brandPosts("A caption.")}

	svc := newTestService(&fakeLLM{response: analysisResponse}, &fakeEmbedder{fail: true}, scraper, storage)

	profile, err := svc.Analyze(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, profile.AnalysisEmbedding)
	require.Len(t, storage.profiles, 1)
}

func TestAnalyzeFailsWithoutCaptions(t *testing.T) {
	svc := newTestService(&fakeLLM{response: analysisResponse}, &fakeEmbedder{},
		&fakeScraper{posts: nil}, &memVoiceStorage{})

	_, err := svc.Analyze(context.Background(), "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no captions")
}

func TestAnalyzeFailsOnUnparseableResponse(t *testing.T) {
	svc := newTestService(&fakeLLM{response: "I cannot analyze this."}, &fakeEmbedder{},
		&fakeScraper{posts: brandPosts("A caption.")}, &memVoiceStorage{})

	_, err := svc.Analyze(context.Background(), "")
	assert.Error(t, err)
}

func TestAnalyzeRejectsEmptyAnalysis(t *testing.T) {
	svc := newTestService(&fakeLLM{response: `{"tone_attributes": {"warm": 0.9}}`}, &fakeEmbedder{},
		&fakeScraper{posts: brandPosts("A caption.")}, &memVoiceStorage{})

	_, err := svc.Analyze(context.Background(), "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "incomplete voice analysis")
}

func TestAnalyzeFailsWhenScrapeFails(t *testing.T) {
	svc := newTestService(&fakeLLM{response: analysisResponse}, &fakeEmbedder{},
		&fakeScraper{err: fmt.Errorf("actor run failed")}, &memVoiceStorage{})

	_, err := svc.Analyze(context.Background(), "")
	assert.Error(t, err)
}
