package research

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/copydesk/internal/common"
	"github.com/ternarybob/copydesk/internal/models"
)

func testConfig(baseURL, apiKey string) *common.ResearchConfig {
	return &common.ResearchConfig{
		APIKey:         apiKey,
		BaseURL:        baseURL,
		Model:          "sonar",
		RequestTimeout: 5 * time.Second,
		RateLimit:      time.Millisecond,
	}
}

func TestResearchDisabledWithoutKey(t *testing.T) {
	svc := NewPerplexityService(testConfig("http://unused", ""), arbor.NewLogger())

	findings, err := svc.Research(context.Background(), "hair clubs", models.ContentTypeCaption, models.PlatformInstagram)
	require.NoError(t, err)
	assert.Empty(t, findings)
	assert.False(t, svc.IsAvailable())
}

func TestResearchReturnsFindings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"salon memberships are trending"}}],"citations":["https://example.com"]}`))
	}))
	defer server.Close()

	svc := NewPerplexityService(testConfig(server.URL, "test-key"), arbor.NewLogger())

	findings, err := svc.Research(context.Background(), "hair clubs", models.ContentTypeCaption, models.PlatformInstagram)
	require.NoError(t, err)
	assert.Equal(t, "salon memberships are trending", findings)
	assert.True(t, svc.IsAvailable())
}

func TestResearchDegradesOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	svc := NewPerplexityService(testConfig(server.URL, "test-key"), arbor.NewLogger())

	findings, err := svc.Research(context.Background(), "hair clubs", models.ContentTypeCaption, models.PlatformInstagram)
	require.NoError(t, err, "research failures must not surface as errors")
	assert.Empty(t, findings)
}

func TestBuildQueryMentionsTopicAndPlatform(t *testing.T) {
	query := buildQuery("spring color trends", models.ContentTypeReelScript, models.PlatformTikTok)
	assert.Contains(t, query, `"spring color trends"`)
	assert.Contains(t, query, "short-form video/reel")
	assert.Contains(t, query, "tiktok")
}
