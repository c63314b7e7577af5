package research

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/copydesk/internal/common"
	"github.com/ternarybob/copydesk/internal/models"
	"golang.org/x/time/rate"
)

const researchSystemPrompt = "You are a salon and beauty industry research assistant. " +
	"Provide concise, actionable insights. Focus on current trends, " +
	"data points, and what's working on social media right now. " +
	"Keep your response under 400 words."

// PerplexityService implements the ResearchService interface against
// the Perplexity chat completions API. An unset API key disables the
// service; callers get empty findings, never an error.
type PerplexityService struct {
	config     *common.ResearchConfig
	logger     arbor.ILogger
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewPerplexityService creates a new research service instance
func NewPerplexityService(config *common.ResearchConfig, logger arbor.ILogger) *PerplexityService {
	if config.APIKey == "" {
		logger.Info().Msg("Perplexity API key not set, research disabled")
	}

	return &PerplexityService{
		config: config,
		logger: logger,
		httpClient: &http.Client{
			Timeout: config.RequestTimeout,
		},
		limiter: rate.NewLimiter(rate.Every(config.RateLimit), 1),
	}
}

// contentLabel translates a content type into research query wording
func contentLabel(contentType string) string {
	switch contentType {
	case models.ContentTypeCaption:
		return "Instagram caption"
	case models.ContentTypeCarousel:
		return "carousel post"
	case models.ContentTypeEDM:
		return "email marketing"
	case models.ContentTypeReelScript:
		return "short-form video/reel"
	}
	return "social media content"
}

// buildQuery targets the research at the user's topic, content type and
// platform
func buildQuery(userMessage, contentType string, platform models.Platform) string {
	return fmt.Sprintf(
		"What are the latest trends, strategies, and insights about %q in the salon and beauty industry? "+
			"Focus on what's working for %s content on %s right now. "+
			"Include any relevant statistics, viral formats, or engagement patterns.",
		userMessage, contentLabel(contentType), platform,
	)
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Citations []string `json:"citations"`
}

// Research fetches grounded findings for the topic. Every failure path
// degrades to empty findings with a nil error; research is enrichment,
// not a dependency.
func (s *PerplexityService) Research(ctx context.Context, userMessage, contentType string, platform models.Platform) (string, error) {
	if s.config.APIKey == "" {
		return "", nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("Research rate limit wait aborted")
		return "", nil
	}

	payload, err := json.Marshal(chatCompletionRequest{
		Model: s.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: researchSystemPrompt},
			{Role: "user", Content: buildQuery(userMessage, contentType, platform)},
		},
	})
	if err != nil {
		return "", nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to build research request")
		return "", nil
	}
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Perplexity research failed")
		return "", nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		s.logger.Warn().
			Int("status", resp.StatusCode).
			Str("body", string(body)).
			Msg("Perplexity research returned non-OK status")
		return "", nil
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to decode research response")
		return "", nil
	}
	if len(completion.Choices) == 0 {
		return "", nil
	}

	findings := completion.Choices[0].Message.Content
	s.logger.Debug().
		Int("findings_chars", len(findings)).
		Int("citations", len(completion.Citations)).
		Msg("Research completed")

	return findings, nil
}

// IsAvailable reports whether a Perplexity API key is configured
func (s *PerplexityService) IsAvailable() bool {
	return s.config.APIKey != ""
}
