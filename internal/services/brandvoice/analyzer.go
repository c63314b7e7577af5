// Package brandvoice derives a structured voice profile from the
// brand's own published content using an LLM analysis pass.
package brandvoice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/copydesk/internal/common"
	"github.com/ternarybob/copydesk/internal/interfaces"
	"github.com/ternarybob/copydesk/internal/models"
	"github.com/ternarybob/copydesk/internal/services/llm"
)

const (
	// Posts fetched from the brand profile per analysis run
	analysisFetchLimit = 30
	// Captions included in the analysis prompt
	analysisSampleLimit = 20
	// Website copy included in the prompt, in characters
	websiteSampleLimit = 3000

	sampleSeparator = "\n\n---\n\n"
)

// voiceAnalysis mirrors the JSON structure the analysis prompt demands.
type voiceAnalysis struct {
	ToneAttributes     map[string]float64        `json:"tone_attributes" validate:"required"`
	VocabularyPatterns models.VocabularyPatterns `json:"vocabulary_patterns"`
	SentenceStructure  models.SentenceStructure  `json:"sentence_structure"`
	EmojiUsage         models.EmojiUsage         `json:"emoji_usage"`
	HashtagStrategy    models.HashtagStrategy    `json:"hashtag_strategy"`
	CTAPatterns        models.CTAPatterns        `json:"cta_patterns"`
	OverallPersonality string                    `json:"overall_personality" validate:"required"`
	WritingGuidelines  string                    `json:"writing_guidelines" validate:"required"`
}

// Validate checks the parsed analysis using go-playground/validator.
// Models occasionally return the right shape with empty fields; those
// profiles are useless downstream so reject them here.
func (a *voiceAnalysis) Validate() error {
	validate := validator.New()
	return validate.Struct(a)
}

// Service implements interfaces.BrandVoiceService.
type Service struct {
	llm       interfaces.LLMService
	embedding interfaces.EmbeddingService
	scraper   interfaces.ScrapingService
	website   interfaces.WebsiteScraper
	storage   interfaces.BrandVoiceStorage
	config    *common.Config
	logger    arbor.ILogger
}

// NewService creates the brand voice analysis service.
func NewService(
	llmService interfaces.LLMService,
	embedding interfaces.EmbeddingService,
	scraper interfaces.ScrapingService,
	website interfaces.WebsiteScraper,
	storage interfaces.BrandVoiceStorage,
	config *common.Config,
	logger arbor.ILogger,
) interfaces.BrandVoiceService {
	return &Service{
		llm:       llmService,
		embedding: embedding,
		scraper:   scraper,
		website:   website,
		storage:   storage,
		config:    config,
		logger:    logger,
	}
}

// Analyze scrapes the brand's recent Instagram posts, has the model
// extract a structured voice profile from them and stores the result.
// Each run appends a new profile row; LatestProfile picks the newest.
func (s *Service) Analyze(ctx context.Context, brandName string) (*models.BrandVoiceProfile, error) {
	if brandName == "" {
		brandName = s.config.Brand.Name
	}
	handle := s.config.Brand.Handle
	if handle == "" {
		return nil, fmt.Errorf("brand handle not configured")
	}

	s.logger.Info().
		Str("brand", brandName).
		Str("handle", handle).
		Msg("Starting brand voice analysis")

	posts, err := s.scraper.FetchProfileContent(ctx, models.PlatformInstagram, handle, analysisFetchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch brand posts: %w", err)
	}

	captions := make([]string, 0, len(posts))
	for _, post := range posts {
		if post.ContentText != "" {
			captions = append(captions, post.ContentText)
		}
	}
	if len(captions) == 0 {
		return nil, fmt.Errorf("no captions found for @%s", handle)
	}

	samples := captions
	if len(samples) > analysisSampleLimit {
		samples = samples[:analysisSampleLimit]
	}

	// Website copy rounds out the sample set when configured
	if s.website != nil && s.config.Brand.WebsiteURL != "" {
		if page, err := s.website.ScrapePage(ctx, s.config.Brand.WebsiteURL); err != nil {
			s.logger.Warn().Err(err).
				Str("url", s.config.Brand.WebsiteURL).
				Msg("Website scrape failed, analyzing social content only")
		} else if page.Markdown != "" {
			copyText := page.Markdown
			if len(copyText) > websiteSampleLimit {
				copyText = copyText[:websiteSampleLimit]
			}
			samples = append(samples, "Website copy:\n"+copyText)
		}
	}

	prompt := fmt.Sprintf(analysisPromptTemplate,
		fmt.Sprintf("@%s (%s)", handle, brandName),
		strings.Join(samples, sampleSeparator))

	response, err := s.llm.Chat(ctx, "", []interfaces.LLMMessage{
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return nil, fmt.Errorf("brand voice analysis failed: %w", err)
	}

	var analysis voiceAnalysis
	if err := llm.ExtractJSON(response, &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse voice analysis: %w", err)
	}
	if err := analysis.Validate(); err != nil {
		return nil, fmt.Errorf("incomplete voice analysis: %w", err)
	}

	analysisText := strings.TrimSpace(analysis.OverallPersonality + "\n\n" + analysis.WritingGuidelines)

	profile := &models.BrandVoiceProfile{
		ID:               common.NewVoiceProfileID(),
		BrandName:        brandName,
		BrandHandle:      "@" + handle,
		ToneAttributes:   analysis.ToneAttributes,
		Vocabulary:       analysis.VocabularyPatterns,
		Sentences:        analysis.SentenceStructure,
		Emoji:            analysis.EmojiUsage,
		Hashtags:         analysis.HashtagStrategy,
		CTAs:             analysis.CTAPatterns,
		Personality:      analysis.OverallPersonality,
		Guidelines:       analysis.WritingGuidelines,
		AnalysisText:     analysisText,
		SourcePostsCount: len(captions),
		AnalyzedAt:       time.Now(),
	}

	// Retrieval still works from the structured fields if embedding is
	// down, so a failure here only costs similarity lookups
	if analysisText != "" && s.embedding != nil && s.embedding.IsAvailable() {
		if vec, err := s.embedding.EmbedOne(ctx, analysisText, interfaces.EmbedModeDocument); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to embed voice analysis text")
		} else {
			profile.AnalysisEmbedding = vec
		}
	}

	if err := s.storage.SaveProfile(profile); err != nil {
		return nil, fmt.Errorf("failed to store voice profile: %w", err)
	}

	s.logger.Info().
		Str("profile_id", profile.ID).
		Int("source_posts", profile.SourcePostsCount).
		Msg("Brand voice analysis complete")

	return profile, nil
}

// LatestProfile returns the most recently analyzed profile for a brand,
// or nil when none has been stored.
func (s *Service) LatestProfile(brandName string) (*models.BrandVoiceProfile, error) {
	if brandName == "" {
		brandName = s.config.Brand.Name
	}
	return s.storage.LatestProfile(brandName)
}
