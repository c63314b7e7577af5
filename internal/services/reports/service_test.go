package reports

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/copydesk/internal/common"
	"github.com/ternarybob/copydesk/internal/interfaces"
	"github.com/ternarybob/copydesk/internal/models"
)

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

type fakeContentStorage struct {
	items []*models.ScrapedContentItem
}

func (f *fakeContentStorage) SaveContent(item *models.ScrapedContentItem) error { return nil }
func (f *fakeContentStorage) GetContent(id string) (*models.ScrapedContentItem, error) {
	return nil, nil
}
func (f *fakeContentStorage) ListContent(opts *interfaces.ContentListOptions) ([]*models.ScrapedContentItem, error) {
	if opts.Platform == "" {
		return f.items, nil
	}
	var out []*models.ScrapedContentItem
	for _, item := range f.items {
		if item.Platform == opts.Platform {
			out = append(out, item)
		}
	}
	return out, nil
}
func (f *fakeContentStorage) ListUnembedded(limit int) ([]*models.ScrapedContentItem, error) {
	return nil, nil
}
func (f *fakeContentStorage) UpdateEmbedding(id string, embedding []float32) error { return nil }
func (f *fakeContentStorage) SearchSimilar(queryVec []float32, matchCount int, matchThreshold float64, platform models.Platform) ([]*models.ContentMatch, error) {
	return nil, nil
}
func (f *fakeContentStorage) CountContent() (int, error) { return len(f.items), nil }

type fakeSessionStorage struct {
	sessions []*models.ChatSession
	messages map[string][]*models.ChatMessage
}

func (f *fakeSessionStorage) SaveSession(session *models.ChatSession) error { return nil }
func (f *fakeSessionStorage) GetSession(id string) (*models.ChatSession, error) {
	return nil, nil
}
func (f *fakeSessionStorage) ListSessions(limit int) ([]*models.ChatSession, error) {
	return f.sessions, nil
}
func (f *fakeSessionStorage) SaveMessage(message *models.ChatMessage) error { return nil }
func (f *fakeSessionStorage) ListMessages(sessionID string) ([]*models.ChatMessage, error) {
	return f.messages[sessionID], nil
}

type fakeVoiceStorage struct {
	profile *models.BrandVoiceProfile
}

func (f *fakeVoiceStorage) SaveProfile(profile *models.BrandVoiceProfile) error { return nil }
func (f *fakeVoiceStorage) LatestProfile(brandName string) (*models.BrandVoiceProfile, error) {
	return f.profile, nil
}

type memReportStorage struct {
	reports []*models.Report
}

func (s *memReportStorage) SaveReport(report *models.Report) error {
	s.reports = append(s.reports, report)
	return nil
}

func (s *memReportStorage) GetReport(id string) (*models.Report, error) {
	for _, report := range s.reports {
		if report.ID == id {
			return report, nil
		}
	}
	return nil, fmt.Errorf("report not found: %s", id)
}

func (s *memReportStorage) ListReports(limit int) ([]*models.Report, error) {
	return s.reports, nil
}

const reportMarkdown = `# Content Performance Audit

## Executive Summary

Salon reels outperform static posts three to one.
Educational hooks drive the highest engagement.
Posting cadence matters less than hook quality.

## Viral Content Analysis

Long analysis body here.`

func testCorpus() []*models.ScrapedContentItem {
	return []*models.ScrapedContentItem{
		{
			Platform:      models.PlatformInstagram,
			SourceHandle:  "glowsalon",
			ContentText:   "Viral balayage caption",
			ContentType:   models.ContentSubtypeReel,
			Engagement:    models.EngagementMetrics{Likes: 500, Views: 20000},
			ViralityScore: 0.5,
		},
		{
			Platform:      models.PlatformTikTok,
			SourceHandle:  "hairtok",
			ContentText:   "Viral tiktok text",
			ContentType:   models.ContentSubtypeVideo,
			Engagement:    models.EngagementMetrics{Likes: 900, Views: 90000},
			ViralityScore: 0.4,
		},
	}
}

func newTestService(llmSvc *fakeLLM, store *memReportStorage) *Service {
	sessions := &fakeSessionStorage{
		sessions: []*models.ChatSession{{ID: "session_1", Title: "Captions for May"}},
		messages: map[string][]*models.ChatMessage{
			"session_1": {
				{Role: "user", Content: "Write me a caption", CreatedAt: time.Now()},
				{Role: "assistant", Content: "Your clients deserve better hair days.", CreatedAt: time.Now()},
			},
		},
	}
	voice := &fakeVoiceStorage{profile: &models.BrandVoiceProfile{
		BrandName:   "YourSalonSupport",
		Personality: "Warm and direct.",
	}}

	return NewService(llmSvc, &fakeContentStorage{items: testCorpus()}, sessions, voice,
		store, common.NewDefaultConfig(), arbor.NewLogger()).(*Service)
}

func TestGenerateContentAudit(t *testing.T) {
	llmSvc := &fakeLLM{response: reportMarkdown}
	store := &memReportStorage{}
	svc := newTestService(llmSvc, store)

	report, err := svc.Generate(context.Background(), models.ReportContentAudit, "")
	require.NoError(t, err)

	assert.Equal(t, models.ReportContentAudit, report.ReportType)
	assert.Equal(t, "Content Performance Audit", report.Title)
	assert.Equal(t, reportMarkdown, report.FullContent)
	require.Len(t, store.reports, 1)

	// summary is the first prose lines, headings skipped
	assert.True(t, strings.HasPrefix(report.Summary, "Salon reels outperform"))
	assert.NotContains(t, report.Summary, "#")
	assert.LessOrEqual(t, len(report.Summary), 500)

	// audit prompt carries corpus, generation history and brand voice
	require.Len(t, llmSvc.prompts, 1)
	prompt := llmSvc.prompts[0]
	assert.Contains(t, prompt, "Viral balayage caption")
	assert.Contains(t, prompt, "Your clients deserve better hair days.")
	assert.Contains(t, prompt, "Warm and direct.")
}

func TestGenerateCompetitorAnalysisOmitsBrandVoice(t *testing.T) {
	llmSvc := &fakeLLM{response: reportMarkdown}
	svc := newTestService(llmSvc, &memReportStorage{})

	_, err := svc.Generate(context.Background(), models.ReportCompetitorAnalysis, "")
	require.NoError(t, err)

	prompt := llmSvc.prompts[0]
	assert.Contains(t, prompt, "Viral balayage caption")
	assert.NotContains(t, prompt, "Warm and direct.")
}

func TestGeneratePlatformFilter(t *testing.T) {
	llmSvc := &fakeLLM{response: reportMarkdown}
	svc := newTestService(llmSvc, &memReportStorage{})

	_, err := svc.Generate(context.Background(), models.ReportCompetitorAnalysis, models.PlatformTikTok)
	require.NoError(t, err)

	prompt := llmSvc.prompts[0]
	assert.Contains(t, prompt, "Viral tiktok text")
	assert.NotContains(t, prompt, "Viral balayage caption")
}

func TestGenerateRejectsUnknownType(t *testing.T) {
	svc := newTestService(&fakeLLM{response: reportMarkdown}, &memReportStorage{})

	_, err := svc.Generate(context.Background(), "quarterly_vibes", "")
	assert.Error(t, err)
}

func TestGenerateSurfacesLLMError(t *testing.T) {
	store := &memReportStorage{}
	svc := newTestService(&fakeLLM{err: fmt.Errorf("model overloaded")}, store)

	_, err := svc.Generate(context.Background(), models.ReportStrategy, "")
	assert.Error(t, err)
	assert.Empty(t, store.reports)
}

func TestExtractSummaryEmptyContent(t *testing.T) {
	assert.Equal(t, "", extractSummary(""))
	assert.Equal(t, "", extractSummary("# Only A Heading\n\n## Another"))
}
